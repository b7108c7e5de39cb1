package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"funnelpress/internal/domain"
	"funnelpress/internal/editor"
)

// ArticleStore is the persistence boundary for advertorial articles.
type ArticleStore interface {
	ListArticles(ctx context.Context) ([]domain.Article, error)
	GetArticle(ctx context.Context, id string) (domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (domain.Article, error)
	PutArticle(ctx context.Context, article domain.Article) error
	DeleteArticle(ctx context.Context, id string) error
}

// SettingsStore holds the operator-configured tracking pixels, CTA URLs
// and serving domains.
type SettingsStore interface {
	ListPixels(ctx context.Context) ([]domain.Pixel, error)
	PutPixel(ctx context.Context, p domain.Pixel) error
	DeletePixel(ctx context.Context, id string) error

	ListCTAUrls(ctx context.Context) ([]domain.CTAUrl, error)
	PutCTAUrl(ctx context.Context, u domain.CTAUrl) error
	DeleteCTAUrl(ctx context.Context, id string) error

	ListDomains(ctx context.Context) ([]domain.Domain, error)
	PutDomain(ctx context.Context, d domain.Domain) error
	DeleteDomain(ctx context.Context, id string) error
}

// ContentService is the admin-facing CRUD surface over quizzes,
// articles and platform settings.
type ContentService struct {
	quizzes  QuizStore
	articles ArticleStore
	settings SettingsStore
	now      func() time.Time
}

func NewContentService(quizzes QuizStore, articles ArticleStore, settings SettingsStore) *ContentService {
	return &ContentService{quizzes: quizzes, articles: articles, settings: settings, now: time.Now}
}

// ListQuizzes returns every quiz document, drafts included.
func (s *ContentService) ListQuizzes(ctx context.Context) ([]domain.QuizDocument, error) {
	return s.quizzes.ListQuizzes(ctx)
}

// CreateQuiz builds a new draft funnel with one default slide so the
// editor never opens on an empty document.
func (s *ContentService) CreateQuiz(ctx context.Context, name string) (domain.QuizDocument, error) {
	slug := domain.Slugify(name)
	if slug == "" {
		slug = domain.NewID()
	}
	if _, err := s.quizzes.GetQuizBySlug(ctx, slug); err == nil {
		return domain.QuizDocument{}, domain.ErrSlugTaken
	}
	doc := domain.QuizDocument{
		ID:       uuid.NewString(),
		Slug:     slug,
		Name:     name,
		Status:   domain.StatusDraft,
		Settings: domain.DefaultSettings(),
		Slides:   []domain.Slide{editor.NewSlide(domain.KindTextChoice)},
	}
	if err := s.quizzes.PutQuiz(ctx, doc); err != nil {
		return domain.QuizDocument{}, err
	}
	return doc, nil
}

func (s *ContentService) GetQuiz(ctx context.Context, id string) (domain.QuizDocument, error) {
	return s.quizzes.GetQuiz(ctx, id)
}

func (s *ContentService) DeleteQuiz(ctx context.Context, id string) error {
	return s.quizzes.DeleteQuiz(ctx, id)
}

// SetQuizStatus changes the publication status. Transitions are
// unrestricted.
func (s *ContentService) SetQuizStatus(ctx context.Context, id string, status domain.Status) (domain.QuizDocument, error) {
	doc, err := s.quizzes.GetQuiz(ctx, id)
	if err != nil {
		return domain.QuizDocument{}, err
	}
	doc.Status = status
	if err := s.quizzes.PutQuiz(ctx, doc); err != nil {
		return domain.QuizDocument{}, err
	}
	return doc, nil
}

func (s *ContentService) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListArticles(ctx)
}

func (s *ContentService) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	return s.articles.GetArticle(ctx, id)
}

// CreateArticle stores a new draft advertorial.
func (s *ContentService) CreateArticle(ctx context.Context, article domain.Article) (domain.Article, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Slug == "" {
		article.Slug = domain.Slugify(article.Title)
	}
	if article.Slug == "" {
		article.Slug = domain.NewID()
	}
	if _, err := s.articles.GetArticleBySlug(ctx, article.Slug); err == nil {
		return domain.Article{}, domain.ErrSlugTaken
	}
	if article.Status == "" {
		article.Status = domain.StatusDraft
	}
	article.CreatedAt = s.now().UTC()
	article.UpdatedAt = article.CreatedAt
	if err := s.articles.PutArticle(ctx, article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

// UpdateArticle overwrites an existing article in full.
func (s *ContentService) UpdateArticle(ctx context.Context, article domain.Article) (domain.Article, error) {
	existing, err := s.articles.GetArticle(ctx, article.ID)
	if err != nil {
		return domain.Article{}, err
	}
	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = s.now().UTC()
	if article.Slug == "" {
		article.Slug = existing.Slug
	}
	if article.Status == "" {
		article.Status = existing.Status
	}
	if err := s.articles.PutArticle(ctx, article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (s *ContentService) DeleteArticle(ctx context.Context, id string) error {
	return s.articles.DeleteArticle(ctx, id)
}

func (s *ContentService) ListPixels(ctx context.Context) ([]domain.Pixel, error) {
	return s.settings.ListPixels(ctx)
}

func (s *ContentService) SavePixel(ctx context.Context, p domain.Pixel) (domain.Pixel, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.settings.PutPixel(ctx, p); err != nil {
		return domain.Pixel{}, err
	}
	return p, nil
}

func (s *ContentService) DeletePixel(ctx context.Context, id string) error {
	return s.settings.DeletePixel(ctx, id)
}

func (s *ContentService) ListCTAUrls(ctx context.Context) ([]domain.CTAUrl, error) {
	return s.settings.ListCTAUrls(ctx)
}

func (s *ContentService) SaveCTAUrl(ctx context.Context, u domain.CTAUrl) (domain.CTAUrl, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := s.settings.PutCTAUrl(ctx, u); err != nil {
		return domain.CTAUrl{}, err
	}
	return u, nil
}

func (s *ContentService) DeleteCTAUrl(ctx context.Context, id string) error {
	return s.settings.DeleteCTAUrl(ctx, id)
}

func (s *ContentService) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	return s.settings.ListDomains(ctx)
}

func (s *ContentService) SaveDomain(ctx context.Context, d domain.Domain) (domain.Domain, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if err := s.settings.PutDomain(ctx, d); err != nil {
		return domain.Domain{}, err
	}
	return d, nil
}

func (s *ContentService) DeleteDomain(ctx context.Context, id string) error {
	return s.settings.DeleteDomain(ctx, id)
}
