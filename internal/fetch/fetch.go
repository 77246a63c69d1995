// Package fetch locates the HLS stream behind a product page and downloads
// it to a local MP4.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"clipforge/pkg/httputil"
)

// Product pages embed the stream manifest inside inline JSON, so the URL
// often arrives with escaped slashes.
var m3u8Pattern = regexp.MustCompile(`https?://[^\s"'<>\\]+\.m3u8[^\s"'<>\\]*`)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxPageBytes     = 8 << 20
)

// Downloader saves a stream URL to a local file. Implemented by the ffmpeg
// runner, which handles HLS natively.
type Downloader interface {
	Download(ctx context.Context, streamURL, outputPath string) error
}

type Fetcher struct {
	http       *httputil.RetryClient
	downloader Downloader
	userAgent  string
}

func New(client *httputil.RetryClient, downloader Downloader) *Fetcher {
	return &Fetcher{
		http:       client,
		downloader: downloader,
		userAgent:  defaultUserAgent,
	}
}

// StreamLinks scrapes the page at pageURL and returns every .m3u8 URL found,
// in document order with duplicates removed.
func (f *Fetcher) StreamLinks(ctx context.Context, pageURL string) ([]string, error) {
	resp, err := f.http.Get(ctx, pageURL, f.userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}

	return ExtractStreamLinks(string(body)), nil
}

// Fetch resolves the page's first stream link and downloads it to outputPath.
func (f *Fetcher) Fetch(ctx context.Context, pageURL, outputPath string) error {
	links, err := f.StreamLinks(ctx, pageURL)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return fmt.Errorf("no video stream found on page %s", pageURL)
	}

	slog.Info("found video stream", "url", links[0], "candidates", len(links))
	if err := f.downloader.Download(ctx, links[0], outputPath); err != nil {
		return fmt.Errorf("download stream: %w", err)
	}
	return nil
}

// ExtractStreamLinks pulls .m3u8 URLs out of raw page HTML.
func ExtractStreamLinks(html string) []string {
	unescaped := strings.ReplaceAll(html, `\/`, "/")

	seen := make(map[string]bool)
	var links []string
	for _, match := range m3u8Pattern.FindAllString(unescaped, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		links = append(links, match)
	}
	return links
}
