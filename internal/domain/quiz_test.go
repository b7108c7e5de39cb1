package domain

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSlideWireShape(t *testing.T) {
	slide := Slide{
		ID:   "s1",
		Kind: KindTextChoice,
		Content: SlideContent{
			Headline: "Q?",
			Options: []SlideOption{
				{ID: "o1", Text: "Yes", Category: "doer"},
				{ID: "o2", Text: "No", NextSlide: "end"},
			},
		},
		ConditionalLogic: &ConditionalLogic{SlideID: "s0", OptionID: "o9"},
	}
	data, err := json.Marshal(slide)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// The persisted field names are id, type, content, conditional_logic.
	for _, key := range []string{`"id"`, `"type"`, `"content"`, `"conditional_logic"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Fatalf("expected %s in wire form, got %s", key, data)
		}
	}
	if bytes.Contains(data, []byte("conditionalLogic")) {
		t.Fatalf("internal field name leaked to the wire: %s", data)
	}
}

func TestSlidesRoundTrip(t *testing.T) {
	doc := QuizDocument{
		ID:     "q1",
		Slug:   "my-quiz",
		Name:   "My Quiz",
		Status: StatusPublished,
		Settings: QuizSettings{
			PrimaryColor:    "#111111",
			BackgroundColor: "#ffffff",
			ShowProgressBar: true,
			AllowBack:       false,
		},
		Slides: []Slide{
			{ID: "s1", Kind: KindMultiSelect, Content: SlideContent{
				Headline:   "Pick some",
				Options:    []SlideOption{{ID: "o1", Text: "A"}, {ID: "o2", Text: "B"}},
				ButtonText: "Continue",
			}},
			{ID: "s2", Kind: KindInfo, Content: SlideContent{
				Headline: "FYI",
				Blocks:   []ContentBlock{{ID: "b1", Kind: BlockQuote, Content: "Wow", Author: "Sam"}},
			}, ConditionalLogic: &ConditionalLogic{SlideID: "s1", OptionID: "o1"}},
		},
	}

	first, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var loaded QuizDocument
	if err := json.Unmarshal(first, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := json.Marshal(loaded)
	if err != nil {
		t.Fatalf("remarshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip not byte-stable:\n%s\n%s", first, second)
	}
}

func TestNewIDShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewID()
		if len(id) != 9 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if seen[id] {
			t.Fatalf("id collision within a tiny sample: %q", id)
		}
		seen[id] = true
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My Great Quiz!":       "my-great-quiz",
		"  spaced   out  ":     "spaced-out",
		"Déjà vu":              "d-j-vu",
		"already-a-slug":       "already-a-slug",
		"Trailing punctuation": "trailing-punctuation",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
