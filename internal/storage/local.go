package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes artifacts into a flat output directory.
type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func (s *LocalStorage) EnsureDirectories() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Archive copies the file into the output directory, keeping its base name.
func (s *LocalStorage) Archive(_ context.Context, localPath string) (string, error) {
	if err := s.EnsureDirectories(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.outputDir, filepath.Base(localPath))
	if sameFile(localPath, dst) {
		return dst, nil
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("failed to copy artifact: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close artifact file: %w", err)
	}

	return dst, nil
}

// SaveText writes text content as an artifact and returns its path.
func (s *LocalStorage) SaveText(content, filename string) (string, error) {
	if err := s.EnsureDirectories(); err != nil {
		return "", err
	}

	path := filepath.Join(s.outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

// ListArtifacts returns the finished videos and text packages in the output
// directory.
func (s *LocalStorage) ListArtifacts() ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var artifacts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".mp4" || ext == ".txt" {
			artifacts = append(artifacts, filepath.Join(s.outputDir, entry.Name()))
		}
	}

	return artifacts, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
