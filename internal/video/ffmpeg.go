package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"clipforge/internal/align"
)

const (
	defaultFFmpegPath  = "ffmpeg"
	defaultFFprobePath = "ffprobe"
)

// FFmpeg shells out to ffmpeg/ffprobe for every media operation the pipeline
// needs. All byte-slice operations stage their inputs in a scratch directory
// that is removed on every exit path.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	workDir     string
	width       int
	height      int
}

type FFmpegOptions struct {
	FFmpegPath  string
	FFprobePath string
	WorkDir     string
	Resolution  string
}

func NewFFmpeg(opts FFmpegOptions) *FFmpeg {
	width, height := parseResolution(opts.Resolution)
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	ffmpegPath := opts.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = defaultFFmpegPath
	}
	ffprobePath := opts.FFprobePath
	if ffprobePath == "" {
		ffprobePath = defaultFFprobePath
	}
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		workDir:     workDir,
		width:       width,
		height:      height,
	}
}

func parseResolution(res string) (int, int) {
	parts := strings.Split(res, "x")
	if len(parts) != 2 {
		return 1080, 1920
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 1080, 1920
	}
	return w, h
}

// scratch is a per-operation temp directory. Close removes it and everything
// staged inside, regardless of how the operation ended.
type scratch struct {
	dir string
}

func (f *FFmpeg) newScratch() (*scratch, error) {
	dir := filepath.Join(f.workDir, "ff_"+uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &scratch{dir: dir}, nil
}

func (s *scratch) Close() {
	_ = os.RemoveAll(s.dir)
}

func (s *scratch) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *scratch) write(name string, data []byte) (string, error) {
	p := s.path(name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return p, nil
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(output))
	}
	return nil
}

// Probe returns a media file's duration in seconds.
func (f *FFmpeg) Probe(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var dur float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(output)), "%f", &dur); err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return dur, nil
}

// AudioDuration probes an in-memory waveform.
func (f *FFmpeg) AudioDuration(ctx context.Context, wav []byte) (float64, error) {
	sc, err := f.newScratch()
	if err != nil {
		return 0, err
	}
	defer sc.Close()

	path, err := sc.write("probe.wav", wav)
	if err != nil {
		return 0, err
	}
	return f.Probe(ctx, path)
}

// StretchAudio applies a planned atempo chain and returns the adjusted WAV.
func (f *FFmpeg) StretchAudio(ctx context.Context, wav []byte, steps []align.TempoStep) ([]byte, error) {
	sc, err := f.newScratch()
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	inPath, err := sc.write("in.wav", wav)
	if err != nil {
		return nil, err
	}
	outPath := sc.path("out.wav")

	args := []string{
		"-y",
		"-i", inPath,
		"-filter:a", atempoFilter(steps),
		outPath,
	}
	if err := f.run(ctx, args...); err != nil {
		return nil, err
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read stretched audio: %w", err)
	}
	return out, nil
}

func atempoFilter(steps []align.TempoStep) string {
	filters := make([]string, len(steps))
	for i, s := range steps {
		filters[i] = fmt.Sprintf("atempo=%.6f", s.Factor)
	}
	return strings.Join(filters, ",")
}

// CompressCrop re-encodes the source into the vertical analysis format.
func (f *FFmpeg) CompressCrop(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-vf", f.cropFilter(),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "28",
		"-c:a", "aac",
		outputPath,
	}
	return f.run(ctx, args...)
}

func (f *FFmpeg) cropFilter() string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		f.width, f.height, f.width, f.height)
}

// Cut re-encodes a precise [start, end) segment of the input.
func (f *FFmpeg) Cut(ctx context.Context, inputPath string, start, end float64, outputPath string) error {
	if end <= start {
		return fmt.Errorf("%w: cut [%.3f, %.3f)", align.ErrInvalidDuration, start, end)
	}
	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", start),
		"-t", fmt.Sprintf("%.3f", end-start),
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "aac",
		outputPath,
	}
	return f.run(ctx, args...)
}

// MergeAudio muxes a narration waveform into a video, copying the video
// stream and encoding the audio to AAC.
func (f *FFmpeg) MergeAudio(ctx context.Context, videoPath string, wav []byte, outputPath string) error {
	sc, err := f.newScratch()
	if err != nil {
		return err
	}
	defer sc.Close()

	audioPath, err := sc.write("narration.wav", wav)
	if err != nil {
		return err
	}

	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac",
		"-map_metadata", "0",
		"-shortest",
		outputPath,
	}
	return f.run(ctx, args...)
}

// BurnSubtitles renders an ASS overlay into the video stream.
func (f *FFmpeg) BurnSubtitles(ctx context.Context, videoPath, assContent, outputPath string) error {
	sc, err := f.newScratch()
	if err != nil {
		return err
	}
	defer sc.Close()

	assPath, err := sc.write("overlay.ass", []byte(assContent))
	if err != nil {
		return err
	}

	args := []string{
		"-y",
		"-i", videoPath,
		"-vf", "ass=" + escapeFilterPath(assPath),
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "copy",
		outputPath,
	}
	return f.run(ctx, args...)
}

// escapeFilterPath quotes a path for use inside an ffmpeg filter argument.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	return "'" + path + "'"
}

// Concat joins clips losslessly with the concat demuxer.
func (f *FFmpeg) Concat(ctx context.Context, clipPaths []string, outputPath string) error {
	if len(clipPaths) == 0 {
		return fmt.Errorf("no clips to concatenate")
	}

	sc, err := f.newScratch()
	if err != nil {
		return err
	}
	defer sc.Close()

	list, err := concatList(clipPaths)
	if err != nil {
		return err
	}
	listPath, err := sc.write("concat.txt", []byte(list))
	if err != nil {
		return err
	}

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	}
	return f.run(ctx, args...)
}

func concatList(paths []string) (string, error) {
	var sb strings.Builder
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", p, err)
		}
		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}
	return sb.String(), nil
}

// Download pulls a remote stream (e.g. an m3u8 playlist) into a local file.
func (f *FFmpeg) Download(ctx context.Context, streamURL, outputPath string) error {
	args := []string{
		"-y",
		"-i", streamURL,
		"-c", "copy",
		"-bsf:a", "aac_adtstoasc",
		outputPath,
	}
	return f.run(ctx, args...)
}
