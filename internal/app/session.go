package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// session owns the scratch directory for one pipeline run. Intermediate
// files are named by stage so a failed run can be inspected afterwards.
type session struct {
	id  string
	dir string
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func newSession(baseDir string) (*session, error) {
	s := &session{id: time.Now().Format("20060102_150405")}
	s.dir = filepath.Join(baseDir, s.id)
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return s, nil
}

func (s *session) inputPath() string      { return filepath.Join(s.dir, "input.mp4") }
func (s *session) compressedPath() string { return filepath.Join(s.dir, "compressed.mp4") }

func (s *session) clipPath(index int, stage string) string {
	return filepath.Join(s.dir, fmt.Sprintf("clip_%02d_%s.mp4", index, stage))
}

func (s *session) finalVideoPath(title string) string {
	return filepath.Join(s.dir, sanitizeForPath(title)+".mp4")
}

func (s *session) descriptionsName(title string) string {
	return sanitizeForPath(title) + "_descriptions.txt"
}

func sanitizeForPath(s string) string {
	s = strings.ToLower(s)
	s = sanitizeRegex.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		s = "untitled"
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
