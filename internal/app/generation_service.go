package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"funnelpress/internal/domain"
	"funnelpress/internal/editor"
)

// ArticleDraft is the structured output of the text-generation model.
type ArticleDraft struct {
	Title    string
	Subtitle string
	Author   string
	BodyHTML string
	CtaText  string
}

// QuizPlan is the structured output of quiz generation: enough to build
// a full funnel through the editor's default-content constructors.
type QuizPlan struct {
	Name      string
	Questions []PlannedQuestion
	Results   []PlannedResult
	OfferText string
}

type PlannedQuestion struct {
	Headline string
	Options  []PlannedOption
}

type PlannedOption struct {
	Text     string
	Category string
}

type PlannedResult struct {
	Name     string
	Headline string
	Body     string
}

// Generator is the LLM boundary. Implementations must return already
// parsed, structured drafts; prompt plumbing stays behind this interface.
type Generator interface {
	GenerateArticle(ctx context.Context, topic, sourceText, ctaURL string) (ArticleDraft, error)
	GenerateQuizPlan(ctx context.Context, topic string, questionCount int) (QuizPlan, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ImageStore persists fetched or uploaded images and hands back a
// public URL.
type ImageStore interface {
	Store(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// GenerationService orchestrates the sequential pipeline: scrape →
// prompt → parse → store. Each step is a plain awaited call; a failure
// anywhere surfaces as a reportable error, never a crash.
type GenerationService struct {
	generator Generator
	content   *ContentService
	images    ImageStore
	client    *http.Client
}

func NewGenerationService(generator Generator, content *ContentService, images ImageStore) *GenerationService {
	return &GenerationService{
		generator: generator,
		content:   content,
		images:    images,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ArticleRequest describes what to generate. SourceURL is optional; when
// present its page text is scraped and fed to the model as grounding.
type ArticleRequest struct {
	Topic       string `json:"topic"`
	SourceURL   string `json:"sourceUrl,omitempty"`
	CtaURL      string `json:"ctaUrl,omitempty"`
	WithImage   bool   `json:"withImage"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
}

// GenerateArticle runs the full article pipeline and stores the result
// as a draft.
func (s *GenerationService) GenerateArticle(ctx context.Context, req ArticleRequest) (domain.Article, error) {
	sourceText := ""
	if req.SourceURL != "" {
		text, err := s.scrape(ctx, req.SourceURL)
		if err != nil {
			return domain.Article{}, fmt.Errorf("scrape source: %w", err)
		}
		sourceText = text
	}

	draft, err := s.generator.GenerateArticle(ctx, req.Topic, sourceText, req.CtaURL)
	if err != nil {
		return domain.Article{}, fmt.Errorf("generate article: %w", err)
	}

	article := domain.Article{
		Title:    draft.Title,
		Subtitle: draft.Subtitle,
		Author:   draft.Author,
		BodyHTML: draft.BodyHTML,
		CtaText:  draft.CtaText,
		CtaURL:   req.CtaURL,
		Status:   domain.StatusDraft,
	}

	if req.WithImage {
		prompt := req.ImagePrompt
		if prompt == "" {
			prompt = "Editorial photo illustrating: " + draft.Title
		}
		url, err := s.generateAndStoreImage(ctx, prompt)
		if err != nil {
			// The article is still usable without a hero image.
			log.Printf("hero image generation failed: %v", err)
		} else {
			article.HeroImageURL = url
		}
	}

	return s.content.CreateArticle(ctx, article)
}

// GenerateQuiz turns a plan from the model into a complete draft funnel:
// choice slides for each question, a loading slide, a results slide, and
// an offer slide, all built through the editor so defaults stay
// consistent.
func (s *GenerationService) GenerateQuiz(ctx context.Context, topic string, questionCount int) (domain.QuizDocument, error) {
	if questionCount <= 0 {
		questionCount = 5
	}
	plan, err := s.generator.GenerateQuizPlan(ctx, topic, questionCount)
	if err != nil {
		return domain.QuizDocument{}, fmt.Errorf("generate quiz plan: %w", err)
	}
	name := plan.Name
	if name == "" {
		name = topic
	}

	doc, err := s.content.CreateQuiz(ctx, name)
	if err != nil {
		return domain.QuizDocument{}, err
	}

	sel := 0
	doc.Slides = nil
	for _, q := range plan.Questions {
		doc, sel = editor.AddSlide(doc, sel, domain.KindTextChoice)
		slide := &doc.Slides[sel]
		slide.Content.Headline = q.Headline
		options := make([]domain.SlideOption, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, domain.SlideOption{
				ID:       domain.NewID(),
				Text:     opt.Text,
				Category: opt.Category,
			})
		}
		if len(options) >= 2 {
			slide.Content.Options = options
		}
	}

	doc, sel = editor.AddSlide(doc, sel, domain.KindLoading)
	doc, sel = editor.AddSlide(doc, sel, domain.KindResults)
	if len(plan.Results) > 0 {
		cats := make([]domain.ResultCategory, 0, len(plan.Results))
		for _, r := range plan.Results {
			cats = append(cats, domain.ResultCategory{
				ID:       domain.NewID(),
				Name:     r.Name,
				Headline: r.Headline,
				Body:     r.Body,
			})
		}
		doc.Slides[sel].Content.ResultCategories = cats
	}
	doc, _ = editor.AddSlide(doc, sel, domain.KindOffer)
	if plan.OfferText != "" {
		doc.Slides[len(doc.Slides)-1].Content.OfferText = plan.OfferText
	}

	if err := s.content.quizzes.PutQuiz(ctx, doc); err != nil {
		return domain.QuizDocument{}, err
	}
	return doc, nil
}

var tagPattern = regexp.MustCompile(`(?s)<script.*?</script>|<style.*?</style>|<[^>]*>`)
var spacePattern = regexp.MustCompile(`\s+`)

// scrape fetches the source page and strips it down to plain text. The
// model only needs grounding text, not faithful HTML.
func (s *GenerationService) scrape(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	text := tagPattern.ReplaceAllString(string(body), " ")
	text = spacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	// Keep the prompt within a sane budget.
	if len(text) > 8000 {
		text = text[:8000]
	}
	return text, nil
}

func (s *GenerationService) generateAndStoreImage(ctx context.Context, prompt string) (string, error) {
	imageURL, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch generated image: status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	name := "generated/" + domain.NewID() + ".png"
	return s.images.Store(ctx, name, contentType, resp.Body, resp.ContentLength)
}
