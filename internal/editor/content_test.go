package editor

import (
	"testing"

	"funnelpress/internal/domain"
)

func TestDefaultContentChoiceKinds(t *testing.T) {
	for _, kind := range []domain.SlideKind{domain.KindTextChoice, domain.KindImageChoice, domain.KindMultiSelect} {
		content := DefaultContent(kind)
		if len(content.Options) != 3 {
			t.Fatalf("%s: expected exactly 3 placeholder options, got %d", kind, len(content.Options))
		}
		seen := map[string]bool{}
		for _, opt := range content.Options {
			if opt.ID == "" || seen[opt.ID] {
				t.Fatalf("%s: option ids must be distinct and non-empty", kind)
			}
			seen[opt.ID] = true
		}
		if content.Headline == "" {
			t.Fatalf("%s: headline must not be empty", kind)
		}
	}
}

func TestDefaultContentMultiSelectButton(t *testing.T) {
	content := DefaultContent(domain.KindMultiSelect)
	if content.ButtonText != "Continue" {
		t.Fatalf("expected buttonText Continue, got %q", content.ButtonText)
	}
}

func TestDefaultContentResults(t *testing.T) {
	content := DefaultContent(domain.KindResults)
	if len(content.ResultCategories) != 1 {
		t.Fatalf("results slide must start with one category, got %d", len(content.ResultCategories))
	}
	if content.Body == "" {
		t.Fatalf("results slide must have a body")
	}
}

func TestDefaultContentOffer(t *testing.T) {
	content := DefaultContent(domain.KindOffer)
	if len(content.Bullets) == 0 || content.OfferText == "" || content.CtaText == "" || content.GuaranteeText == "" {
		t.Fatalf("offer slide missing required fields: %+v", content)
	}
}

func TestDefaultContentUnknownKindFallsBack(t *testing.T) {
	content := DefaultContent(domain.SlideKind("mystery"))
	if content.Headline != "" || content.Options != nil {
		t.Fatalf("unknown kind must yield a minimal fallback, got %+v", content)
	}
}

func TestDefaultContentLoadingItems(t *testing.T) {
	content := DefaultContent(domain.KindLoading)
	if len(content.Items) == 0 {
		t.Fatalf("loading slide must have items")
	}
	for _, item := range content.Items {
		if item.Text == "" || item.DurationMs <= 0 {
			t.Fatalf("loading item malformed: %+v", item)
		}
	}
}
