package llm

import (
	"encoding/json"
	"testing"
)

func TestMarketingPackageDecode(t *testing.T) {
	raw := `{
		"social_media_caption": {
			"hook": "You won't believe this",
			"value": "Three clips that explain everything",
			"cta": "Follow for more",
			"hashtags": "#shorts #viral"
		},
		"pinned_comment": {"text": "Which clip was your favorite?"}
	}`

	var pkg MarketingPackage
	if err := json.Unmarshal([]byte(raw), &pkg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if pkg.SocialMediaCaption.Hook != "You won't believe this" {
		t.Errorf("Hook = %q", pkg.SocialMediaCaption.Hook)
	}
	if pkg.SocialMediaCaption.CTA != "Follow for more" {
		t.Errorf("CTA = %q", pkg.SocialMediaCaption.CTA)
	}
	if pkg.PinnedComment.Text != "Which clip was your favorite?" {
		t.Errorf("PinnedComment.Text = %q", pkg.PinnedComment.Text)
	}
}

func TestMarketingPackageDecodePartial(t *testing.T) {
	var pkg MarketingPackage
	if err := json.Unmarshal([]byte(`{"pinned_comment": {"text": "hi"}}`), &pkg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pkg.SocialMediaCaption.Hook != "" {
		t.Errorf("Hook = %q, want empty", pkg.SocialMediaCaption.Hook)
	}
	if pkg.PinnedComment.Text != "hi" {
		t.Errorf("PinnedComment.Text = %q", pkg.PinnedComment.Text)
	}
}
