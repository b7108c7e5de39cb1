package app

import (
	"context"
	"net/url"

	"funnelpress/internal/domain"
)

// PublishedContent serves published documents by slug, typically read
// through a TTL cache in front of the store.
type PublishedContent interface {
	PublishedQuiz(ctx context.Context, slug string) (domain.QuizDocument, error)
	PublishedArticle(ctx context.Context, slug string) (domain.Article, error)
}

// RenderService is the public-facing read path: published content,
// attribution-preserving CTA links, quiz branching, and result scoring.
type RenderService struct {
	content  PublishedContent
	settings SettingsStore
}

func NewRenderService(content PublishedContent, settings SettingsStore) *RenderService {
	return &RenderService{content: content, settings: settings}
}

func (s *RenderService) Quiz(ctx context.Context, slug string) (domain.QuizDocument, error) {
	return s.content.PublishedQuiz(ctx, slug)
}

func (s *RenderService) Article(ctx context.Context, slug string) (domain.Article, error) {
	return s.content.PublishedArticle(ctx, slug)
}

// Pixels returns the enabled tracking pixels injected into public pages.
func (s *RenderService) Pixels(ctx context.Context) ([]domain.Pixel, error) {
	all, err := s.settings.ListPixels(ctx)
	if err != nil {
		return nil, err
	}
	enabled := all[:0:0]
	for _, p := range all {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled, nil
}

// ResolveCTAUrl maps a configured CTA id to its destination, falling
// back to the default entry when id is empty.
func (s *RenderService) ResolveCTAUrl(ctx context.Context, id string) (domain.CTAUrl, bool, error) {
	urls, err := s.settings.ListCTAUrls(ctx)
	if err != nil {
		return domain.CTAUrl{}, false, err
	}
	for _, u := range urls {
		if id != "" && u.ID == id {
			return u, true, nil
		}
	}
	if id == "" {
		for _, u := range urls {
			if u.IsDefault {
				return u, true, nil
			}
		}
	}
	return domain.CTAUrl{}, false, nil
}

// BuildCTAURL merges the visitor's inbound query parameters (utm_*,
// click ids, and everything else) onto the destination so ad attribution
// survives the redirect. Parameters the destination already carries win.
func BuildCTAURL(destination string, inbound url.Values) string {
	parsed, err := url.Parse(destination)
	if err != nil {
		return destination
	}
	query := parsed.Query()
	for key, values := range inbound {
		if query.Has(key) {
			continue
		}
		for _, v := range values {
			query.Add(key, v)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// NextSlideIndex computes the index of the next slide a taker should
// see after answering the slide at current. It honors the answered
// option's nextSlide branching first, then walks forward skipping
// slides whose conditional logic is unmet. Returns -1 when the funnel
// is finished.
func NextSlideIndex(doc domain.QuizDocument, current int, answers map[string]string) int {
	if current < 0 || current >= len(doc.Slides) {
		return -1
	}
	slide := doc.Slides[current]
	start := current + 1
	if optionID, ok := answers[slide.ID]; ok {
		if opt := findOption(slide, optionID); opt != nil {
			switch opt.NextSlide {
			case "", "next":
			case "end":
				return -1
			default:
				if idx := slideIndexByID(doc, opt.NextSlide); idx >= 0 {
					start = idx
				}
			}
		}
	}
	for i := start; i < len(doc.Slides); i++ {
		if slideVisible(doc.Slides[i], answers) {
			return i
		}
	}
	return -1
}

func slideVisible(slide domain.Slide, answers map[string]string) bool {
	if slide.ConditionalLogic == nil {
		return true
	}
	return answers[slide.ConditionalLogic.SlideID] == slide.ConditionalLogic.OptionID
}

func findOption(slide domain.Slide, optionID string) *domain.SlideOption {
	for i := range slide.Content.Options {
		if slide.Content.Options[i].ID == optionID {
			return &slide.Content.Options[i]
		}
	}
	return nil
}

func slideIndexByID(doc domain.QuizDocument, id string) int {
	for i := range doc.Slides {
		if doc.Slides[i].ID == id {
			return i
		}
	}
	return -1
}

// ResolveResult tallies the categories of the taker's selected options
// and returns the result category appearing most often; the first
// category to reach the winning count breaks ties. Falls back to the
// first category of the first results slide.
func ResolveResult(doc domain.QuizDocument, selectedOptionIDs []string) (domain.ResultCategory, bool) {
	counts := map[string]int{}
	var order []string
	selected := map[string]bool{}
	for _, id := range selectedOptionIDs {
		selected[id] = true
	}
	for _, slide := range doc.Slides {
		if !slide.Kind.HasOptions() {
			continue
		}
		for _, opt := range slide.Content.Options {
			if !selected[opt.ID] || opt.Category == "" {
				continue
			}
			if counts[opt.Category] == 0 {
				order = append(order, opt.Category)
			}
			counts[opt.Category]++
		}
	}

	winner := ""
	best := 0
	for _, name := range order {
		if counts[name] > best {
			winner = name
			best = counts[name]
		}
	}

	var fallback *domain.ResultCategory
	for _, slide := range doc.Slides {
		if slide.Kind != domain.KindResults {
			continue
		}
		for i := range slide.Content.ResultCategories {
			cat := slide.Content.ResultCategories[i]
			if fallback == nil {
				fallback = &cat
			}
			if winner != "" && cat.Name == winner {
				return cat, true
			}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return domain.ResultCategory{}, false
}
