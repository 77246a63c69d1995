// Package llm defines the copywriting interface and its shared result types.
// The Gemini and Groq clients both satisfy CopyWriter, so the marketing stage
// can run on either provider.
package llm

import "context"

type SocialMediaCaption struct {
	Hook     string `json:"hook"`
	Value    string `json:"value"`
	CTA      string `json:"cta"`
	Hashtags string `json:"hashtags"`
}

type PinnedComment struct {
	Text string `json:"text"`
}

// MarketingPackage is the ready-to-post copy generated for one batch of
// clips.
type MarketingPackage struct {
	SocialMediaCaption SocialMediaCaption `json:"social_media_caption"`
	PinnedComment      PinnedComment      `json:"pinned_comment"`
}

type CopyWriter interface {
	MarketingCopy(ctx context.Context, clipSummaries string) (*MarketingPackage, error)
}
