package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"funnelpress/internal/domain"
)

type fakeArticleStore struct {
	mu       sync.Mutex
	articles map[string]domain.Article
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{articles: make(map[string]domain.Article)}
}

func (s *fakeArticleStore) ListArticles(context.Context) ([]domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeArticleStore) GetArticle(_ context.Context, id string) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return domain.Article{}, domain.ErrArticleNotFound
	}
	return a, nil
}

func (s *fakeArticleStore) GetArticleBySlug(_ context.Context, slug string) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return domain.Article{}, domain.ErrArticleNotFound
}

func (s *fakeArticleStore) PutArticle(_ context.Context, a domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ID] = a
	return nil
}

func (s *fakeArticleStore) DeleteArticle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.articles, id)
	return nil
}

type fakeGenerator struct {
	draft      ArticleDraft
	plan       QuizPlan
	imageURL   string
	sourceSeen string
}

func (g *fakeGenerator) GenerateArticle(_ context.Context, _, sourceText, _ string) (ArticleDraft, error) {
	g.sourceSeen = sourceText
	return g.draft, nil
}

func (g *fakeGenerator) GenerateQuizPlan(context.Context, string, int) (QuizPlan, error) {
	return g.plan, nil
}

func (g *fakeGenerator) GenerateImage(context.Context, string) (string, error) {
	return g.imageURL, nil
}

type fakeImageStore struct {
	stored []string
}

func (s *fakeImageStore) Store(_ context.Context, filename, _ string, r io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.stored = append(s.stored, filename)
	return "https://cdn.example.com/" + filename, nil
}

func newTestContentService() (*ContentService, *fakeQuizStore, *fakeArticleStore) {
	quizzes := newFakeQuizStore()
	articles := newFakeArticleStore()
	return NewContentService(quizzes, articles, &fakeSettingsStore{}), quizzes, articles
}

func TestGenerateArticleStoresDraft(t *testing.T) {
	gen := &fakeGenerator{draft: ArticleDraft{
		Title:    "Why Everyone Is Switching",
		Subtitle: "The verdict is in",
		Author:   "Jane Poole",
		BodyHTML: "<p>body</p>",
		CtaText:  "Try it now",
	}}
	content, _, articles := newTestContentService()
	svc := NewGenerationService(gen, content, &fakeImageStore{})

	article, err := svc.GenerateArticle(context.Background(), ArticleRequest{
		Topic:  "switching",
		CtaURL: "https://shop.example.com",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if article.Status != domain.StatusDraft {
		t.Fatalf("generated article must start as a draft, got %s", article.Status)
	}
	if article.Slug != "why-everyone-is-switching" {
		t.Fatalf("unexpected slug %q", article.Slug)
	}
	if article.CtaURL != "https://shop.example.com" {
		t.Fatalf("cta url not carried through, got %q", article.CtaURL)
	}
	if _, err := articles.GetArticle(context.Background(), article.ID); err != nil {
		t.Fatalf("article not stored: %v", err)
	}
}

func TestGenerateArticleScrapesSource(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><head><style>p{}</style><script>var x=1;</script></head><body><p>Real   product facts</p></body></html>`)
	}))
	defer page.Close()

	gen := &fakeGenerator{draft: ArticleDraft{Title: "Grounded"}}
	content, _, _ := newTestContentService()
	svc := NewGenerationService(gen, content, &fakeImageStore{})

	if _, err := svc.GenerateArticle(context.Background(), ArticleRequest{Topic: "t", SourceURL: page.URL}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gen.sourceSeen != "Real product facts" {
		t.Fatalf("expected scraped plain text, got %q", gen.sourceSeen)
	}
}

func TestGenerateArticleWithHeroImage(t *testing.T) {
	img := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		io.WriteString(w, "pngbytes")
	}))
	defer img.Close()

	gen := &fakeGenerator{draft: ArticleDraft{Title: "Pictured"}, imageURL: img.URL}
	images := &fakeImageStore{}
	content, _, _ := newTestContentService()
	svc := NewGenerationService(gen, content, images)

	article, err := svc.GenerateArticle(context.Background(), ArticleRequest{Topic: "t", WithImage: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if article.HeroImageURL == "" {
		t.Fatalf("expected hero image url")
	}
	if len(images.stored) != 1 || !strings.HasPrefix(images.stored[0], "generated/") {
		t.Fatalf("image not stored under generated/, got %v", images.stored)
	}
}

func TestGenerateQuizBuildsFullFunnel(t *testing.T) {
	gen := &fakeGenerator{plan: QuizPlan{
		Name: "Sleep Type Quiz",
		Questions: []PlannedQuestion{
			{Headline: "When do you wake up?", Options: []PlannedOption{
				{Text: "Before 6", Category: "Lark"},
				{Text: "After 10", Category: "Owl"},
			}},
			{Headline: "Coffee?", Options: []PlannedOption{
				{Text: "Yes", Category: "Lark"},
				{Text: "No", Category: "Owl"},
			}},
		},
		Results: []PlannedResult{
			{Name: "Lark", Headline: "Early riser"},
			{Name: "Owl", Headline: "Night creature"},
		},
		OfferText: "Special sleep bundle",
	}}
	content, quizzes, _ := newTestContentService()
	svc := NewGenerationService(gen, content, &fakeImageStore{})

	doc, err := svc.GenerateQuiz(context.Background(), "sleep", 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Name != "Sleep Type Quiz" {
		t.Fatalf("expected plan name, got %q", doc.Name)
	}
	// Two questions plus loading, results and offer slides.
	if len(doc.Slides) != 5 {
		t.Fatalf("expected 5 slides, got %d", len(doc.Slides))
	}
	if doc.Slides[0].Content.Headline != "When do you wake up?" {
		t.Fatalf("question headline lost: %q", doc.Slides[0].Content.Headline)
	}
	if doc.Slides[0].Content.Options[0].Category != "Lark" {
		t.Fatalf("option category lost")
	}
	if doc.Slides[2].Kind != domain.KindLoading || doc.Slides[3].Kind != domain.KindResults || doc.Slides[4].Kind != domain.KindOffer {
		t.Fatalf("unexpected tail slide kinds: %v %v %v", doc.Slides[2].Kind, doc.Slides[3].Kind, doc.Slides[4].Kind)
	}
	if len(doc.Slides[3].Content.ResultCategories) != 2 {
		t.Fatalf("result categories lost")
	}
	if doc.Slides[4].Content.OfferText != "Special sleep bundle" {
		t.Fatalf("offer text lost: %q", doc.Slides[4].Content.OfferText)
	}

	stored, err := quizzes.GetQuiz(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("quiz not stored: %v", err)
	}
	if len(stored.Slides) != 5 {
		t.Fatalf("stored document truncated: %d slides", len(stored.Slides))
	}
}
