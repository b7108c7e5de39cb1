package editor

import (
	"testing"

	"funnelpress/internal/domain"
)

func TestNormalizeAssignsMissingSlideIDs(t *testing.T) {
	doc := domain.QuizDocument{
		Slides: []domain.Slide{
			{ID: "keep", Kind: domain.KindInfo},
			{Kind: domain.KindTextChoice},
		},
	}
	got := Normalize(doc)
	if got.Slides[0].ID != "keep" {
		t.Fatalf("existing id must be preserved")
	}
	if got.Slides[1].ID == "" {
		t.Fatalf("missing id must be assigned")
	}
	if doc.Slides[1].ID != "" {
		t.Fatalf("input document was mutated")
	}
}

func TestNormalizeEmptyDocumentGetsOneSlide(t *testing.T) {
	got := Normalize(domain.QuizDocument{})
	if len(got.Slides) != 1 {
		t.Fatalf("expected one default slide, got %d", len(got.Slides))
	}
	if got.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", got.Status)
	}
}
