package memory

import (
	"context"
	"io"
	"sort"
	"sync"

	"funnelpress/internal/domain"
)

// QuizStore is a map-backed implementation of app.QuizStore, useful for
// tests and for running the server without Postgres.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.QuizDocument
}

func NewQuizStore(seed ...domain.QuizDocument) *QuizStore {
	s := &QuizStore{quizzes: make(map[string]domain.QuizDocument)}
	for _, doc := range seed {
		s.quizzes[doc.ID] = doc
	}
	return s
}

func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.QuizDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QuizDocument, 0, len(s.quizzes))
	for _, doc := range s.quizzes {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *QuizStore) GetQuiz(_ context.Context, id string) (domain.QuizDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.quizzes[id]; ok {
		return doc, nil
	}
	return domain.QuizDocument{}, domain.ErrQuizNotFound
}

func (s *QuizStore) GetQuizBySlug(_ context.Context, slug string) (domain.QuizDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.quizzes {
		if doc.Slug == slug {
			return doc, nil
		}
	}
	return domain.QuizDocument{}, domain.ErrQuizNotFound
}

func (s *QuizStore) PutQuiz(_ context.Context, doc domain.QuizDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[doc.ID] = doc
	return nil
}

func (s *QuizStore) DeleteQuiz(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.quizzes, id)
	return nil
}

// ArticleStore is a map-backed implementation of app.ArticleStore.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
}

func NewArticleStore(seed ...domain.Article) *ArticleStore {
	s := &ArticleStore{articles: make(map[string]domain.Article)}
	for _, a := range seed {
		s.articles[a.ID] = a
	}
	return s
}

func (s *ArticleStore) ListArticles(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ArticleStore) GetArticle(_ context.Context, id string) (domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.articles[id]; ok {
		return a, nil
	}
	return domain.Article{}, domain.ErrArticleNotFound
}

func (s *ArticleStore) GetArticleBySlug(_ context.Context, slug string) (domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return domain.Article{}, domain.ErrArticleNotFound
}

func (s *ArticleStore) PutArticle(_ context.Context, article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = article
	return nil
}

func (s *ArticleStore) DeleteArticle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(s.articles, id)
	return nil
}

// SettingsStore is a map-backed implementation of app.SettingsStore.
type SettingsStore struct {
	mu      sync.RWMutex
	pixels  map[string]domain.Pixel
	ctaURLs map[string]domain.CTAUrl
	domains map[string]domain.Domain
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		pixels:  make(map[string]domain.Pixel),
		ctaURLs: make(map[string]domain.CTAUrl),
		domains: make(map[string]domain.Domain),
	}
}

func (s *SettingsStore) ListPixels(_ context.Context) ([]domain.Pixel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Pixel, 0, len(s.pixels))
	for _, p := range s.pixels {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SettingsStore) PutPixel(_ context.Context, p domain.Pixel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixels[p.ID] = p
	return nil
}

func (s *SettingsStore) DeletePixel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pixels, id)
	return nil
}

func (s *SettingsStore) ListCTAUrls(_ context.Context) ([]domain.CTAUrl, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CTAUrl, 0, len(s.ctaURLs))
	for _, u := range s.ctaURLs {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SettingsStore) PutCTAUrl(_ context.Context, u domain.CTAUrl) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctaURLs[u.ID] = u
	return nil
}

func (s *SettingsStore) DeleteCTAUrl(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ctaURLs, id)
	return nil
}

func (s *SettingsStore) ListDomains(_ context.Context) ([]domain.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Domain, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SettingsStore) PutDomain(_ context.Context, d domain.Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains[d.ID] = d
	return nil
}

func (s *SettingsStore) DeleteDomain(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.domains, id)
	return nil
}

// ImageStore discards bytes and fabricates URLs; it stands in for object
// storage when MinIO is not configured.
type ImageStore struct {
	baseURL string
}

func NewImageStore(baseURL string) *ImageStore {
	if baseURL == "" {
		baseURL = "http://localhost/uploads"
	}
	return &ImageStore{baseURL: baseURL}
}

func (s *ImageStore) Store(_ context.Context, filename, _ string, r io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return s.baseURL + "/" + filename, nil
}
