package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"clipforge/internal/clip"
	"clipforge/internal/llm"
)

type Pipeline struct {
	service *Service
}

type ProcessResult struct {
	Title            string
	VideoPath        string
	DescriptionsPath string
	OutputDir        string
	ClipsPlanned     int
	ClipsProduced    int
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Process runs the whole pipeline for one source: fetch, compress, analyze,
// produce each micro-clip, concatenate, and generate the marketing package.
// source is either a product page URL or a local video file.
func (p *Pipeline) Process(ctx context.Context, source string) (*ProcessResult, error) {
	cfg := p.service.Config()

	sess, err := newSession(cfg.Video.WorkDir)
	if err != nil {
		return nil, err
	}

	inputPath, err := p.resolveInput(ctx, source, sess)
	if err != nil {
		return nil, err
	}

	slog.Info("Compressing and cropping source video...")
	if err := p.service.editor.CompressCrop(ctx, inputPath, sess.compressedPath()); err != nil {
		return nil, fmt.Errorf("compress video: %w", err)
	}

	slog.Info("Analyzing video...")
	clips, err := p.service.analyzer.AnalyzeVideo(ctx, sess.compressedPath())
	if err != nil {
		return nil, fmt.Errorf("analyze video: %w", err)
	}
	slog.Info("Analysis complete", "clips", len(clips))

	clipPaths := p.produceClips(ctx, sess, clips)
	if len(clipPaths) == 0 {
		return nil, fmt.Errorf("no clips were produced")
	}

	title := clips[0].Title
	finalPath := sess.finalVideoPath(title)
	slog.Info("Assembling final video...", "clips", len(clipPaths))
	if err := p.service.editor.Concat(ctx, clipPaths, finalPath); err != nil {
		return nil, fmt.Errorf("assemble final video: %w", err)
	}

	textPath, err := p.saveContentPackage(ctx, sess, title, clips)
	if err != nil {
		return nil, err
	}

	archivedVideo, err := p.service.storage.Archive(ctx, finalPath)
	if err != nil {
		return nil, fmt.Errorf("save final video: %w", err)
	}
	p.mirrorToArchive(ctx, archivedVideo, textPath)

	return &ProcessResult{
		Title:            title,
		VideoPath:        archivedVideo,
		DescriptionsPath: textPath,
		OutputDir:        sess.dir,
		ClipsPlanned:     len(clips),
		ClipsProduced:    len(clipPaths),
	}, nil
}

func (p *Pipeline) resolveInput(ctx context.Context, source string, sess *session) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		slog.Info("Fetching source video...", "url", source)
		if err := p.service.fetcher.Fetch(ctx, source, sess.inputPath()); err != nil {
			return "", err
		}
		return sess.inputPath(), nil
	}
	return source, nil
}

// produceClips renders every planned clip concurrently and returns the
// finished clip files in plan order. A clip that fails is skipped so one bad
// synthesis does not lose the whole run.
func (p *Pipeline) produceClips(ctx context.Context, sess *session, clips []clip.MicroClip) []string {
	type result struct {
		index int
		path  string
		err   error
	}

	results := make(chan result, len(clips))
	semaphore := make(chan struct{}, p.service.Config().Video.Parallelism)

	for i, mc := range clips {
		go func(index int, mc clip.MicroClip) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Info("Processing clip", "index", index+1, "total", len(clips), "title", mc.Title)
			path, err := p.produceClip(ctx, sess, index, mc)
			results <- result{index: index, path: path, err: err}
		}(i, mc)
	}

	paths := make([]string, len(clips))
	for range clips {
		r := <-results
		if r.err != nil {
			slog.Warn("Skipping clip", "index", r.index+1, "error", r.err)
			continue
		}
		paths[r.index] = r.path
	}

	var produced []string
	for _, path := range paths {
		if path != "" {
			produced = append(produced, path)
		}
	}
	return produced
}

func (p *Pipeline) produceClip(ctx context.Context, sess *session, index int, mc clip.MicroClip) (string, error) {
	start, end, err := mc.Bounds()
	if err != nil {
		return "", err
	}

	cutPath := sess.clipPath(index, "cut")
	if err := p.service.editor.Cut(ctx, sess.compressedPath(), start, end, cutPath); err != nil {
		return "", fmt.Errorf("cut clip: %w", err)
	}

	wav, err := p.service.tts.Synthesize(ctx, mc.ScriptText(), mc.VoiceStylePrompt)
	if err != nil {
		return "", fmt.Errorf("synthesize narration: %w", err)
	}

	clipDuration, err := p.service.editor.Probe(ctx, cutPath)
	if err != nil {
		return "", fmt.Errorf("probe clip duration: %w", err)
	}

	aligned, err := p.service.aligner.Align(ctx, mc.Script, wav, clipDuration)
	if err != nil {
		return "", fmt.Errorf("align narration: %w", err)
	}

	mergedPath := sess.clipPath(index, "merged")
	if err := p.service.editor.MergeAudio(ctx, cutPath, aligned.Audio, mergedPath); err != nil {
		return "", fmt.Errorf("merge audio: %w", err)
	}

	if !aligned.Captioned {
		slog.Warn("Clip has no subtitles", "index", index+1, "reason", aligned.Reason)
		return mergedPath, nil
	}

	subtitledPath := sess.clipPath(index, "subtitled")
	if err := p.service.editor.BurnSubtitles(ctx, mergedPath, aligned.ASS, subtitledPath); err != nil {
		return "", fmt.Errorf("burn subtitles: %w", err)
	}
	return subtitledPath, nil
}

func (p *Pipeline) saveContentPackage(ctx context.Context, sess *session, title string, clips []clip.MicroClip) (string, error) {
	summaries := clipSummaries(clips)

	slog.Info("Generating social media copy...")
	pkg, err := p.service.copywriter.MarketingCopy(ctx, summaries)
	if err != nil {
		slog.Warn("Failed to generate marketing copy, saving clip summaries only", "error", err)
		pkg = &llm.MarketingPackage{}
	}

	return p.service.storage.SaveText(contentPackage(summaries, pkg), sess.descriptionsName(title))
}

func (p *Pipeline) mirrorToArchive(ctx context.Context, paths ...string) {
	if p.service.archiver == nil {
		return
	}
	for _, path := range paths {
		url, err := p.service.archiver.Archive(ctx, path)
		if err != nil {
			slog.Warn("Failed to archive artifact", "path", path, "error", err)
			continue
		}
		slog.Info("Archived artifact", "url", url)
	}
}

func clipSummaries(clips []clip.MicroClip) string {
	var b strings.Builder
	b.WriteString("--- AI Generated Video Ideas ---\n\n")
	for i, mc := range clips {
		fmt.Fprintf(&b, "Clip %d: %s\n", i+1, mc.Title)
		fmt.Fprintf(&b, "Description: %s\n", mc.Description)
		fmt.Fprintf(&b, "Script: %s\n\n", mc.ScriptText())
	}
	return b.String()
}

func contentPackage(summaries string, pkg *llm.MarketingPackage) string {
	var b strings.Builder
	b.WriteString(summaries)
	b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
	b.WriteString("--- READY-TO-POST SOCIAL MEDIA CONTENT ---\n\n")

	b.WriteString("COPY-PASTE THIS CAPTION:\n")
	b.WriteString(strings.Repeat("-", 25) + "\n")
	fmt.Fprintf(&b, "%s\n\n", pkg.SocialMediaCaption.Hook)
	fmt.Fprintf(&b, "%s\n\n", pkg.SocialMediaCaption.Value)
	fmt.Fprintf(&b, "%s\n\n", pkg.SocialMediaCaption.CTA)
	fmt.Fprintf(&b, "%s\n", pkg.SocialMediaCaption.Hashtags)
	b.WriteString(strings.Repeat("-", 25) + "\n\n")

	b.WriteString("COPY-PASTE THIS AS YOUR FIRST COMMENT (AND PIN IT):\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "%s\n", pkg.PinnedComment.Text)
	b.WriteString(strings.Repeat("-", 50) + "\n")
	return b.String()
}
