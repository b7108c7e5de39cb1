package editor

import "funnelpress/internal/domain"

// DefaultContent builds kind-specific placeholder content so a freshly
// added slide is never empty or invalid. Choice kinds get exactly three
// placeholder options with fresh ids. An unrecognized kind falls back to
// a bare headline instead of failing.
func DefaultContent(kind domain.SlideKind) domain.SlideContent {
	switch kind {
	case domain.KindTextChoice:
		return domain.SlideContent{
			Headline: "Which of these sounds most like you?",
			Options:  placeholderOptions(),
		}
	case domain.KindImageChoice:
		return domain.SlideContent{
			Headline: "Pick the image that fits best",
			Options:  placeholderOptions(),
		}
	case domain.KindMultiSelect:
		return domain.SlideContent{
			Headline:   "Select all that apply",
			Options:    placeholderOptions(),
			ButtonText: "Continue",
		}
	case domain.KindInfo:
		return domain.SlideContent{
			Headline: "Here's what you should know",
			Blocks:   []domain.ContentBlock{},
		}
	case domain.KindLoading:
		return domain.SlideContent{
			Headline: "Analyzing your answers...",
			Items: []domain.LoadingItem{
				{Text: "Reviewing your responses", DurationMs: 1500},
				{Text: "Comparing with thousands of profiles", DurationMs: 2000},
				{Text: "Preparing your results", DurationMs: 1500},
			},
		}
	case domain.KindResults:
		return domain.SlideContent{
			Headline: "Your results are in",
			Body:     "Based on your answers, here's what we found.",
			ResultCategories: []domain.ResultCategory{
				{
					ID:       domain.NewID(),
					Name:     "Category 1",
					Headline: "You're a great fit",
					Body:     "Your answers put you in our most common profile.",
				},
			},
		}
	case domain.KindOffer:
		return domain.SlideContent{
			Headline: "A special offer, just for you",
			Bullets: []string{
				"Free shipping on your first order",
				"Cancel anytime, no questions asked",
				"Trusted by thousands of happy customers",
			},
			OfferText:     "Get 50% off today only",
			CtaText:       "Claim My Offer",
			CtaURL:        "",
			GuaranteeText: "30-day money-back guarantee",
		}
	}
	return domain.SlideContent{Headline: ""}
}

func placeholderOptions() []domain.SlideOption {
	return []domain.SlideOption{
		{ID: domain.NewID(), Text: "Option 1"},
		{ID: domain.NewID(), Text: "Option 2"},
		{ID: domain.NewID(), Text: "Option 3"},
	}
}

// NewSlide builds a slide of the given kind with default content and a
// fresh id.
func NewSlide(kind domain.SlideKind) domain.Slide {
	return domain.Slide{
		ID:      domain.NewID(),
		Kind:    kind,
		Content: DefaultContent(kind),
	}
}
