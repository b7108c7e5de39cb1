package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"funnelpress/internal/domain"
)

// ContentLoader fetches published content from the backing store.
type ContentLoader interface {
	LoadPublishedQuiz(ctx context.Context, slug string) (domain.QuizDocument, error)
	LoadPublishedArticle(ctx context.Context, slug string) (domain.Article, error)
}

// ContentCache caches published documents with a TTL to keep public
// page loads off the store.
type ContentCache struct {
	loader ContentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu       sync.RWMutex
	quizzes  map[string]cachedQuiz
	articles map[string]cachedArticle
}

type cachedQuiz struct {
	doc       domain.QuizDocument
	expiresAt time.Time
}

type cachedArticle struct {
	article   domain.Article
	expiresAt time.Time
}

func NewContentCache(loader ContentLoader, ttl time.Duration) *ContentCache {
	return &ContentCache{
		loader:   loader,
		ttl:      ttl,
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		quizzes:  make(map[string]cachedQuiz),
		articles: make(map[string]cachedArticle),
	}
}

func (c *ContentCache) PublishedQuiz(ctx context.Context, slug string) (domain.QuizDocument, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.quizzes[slug]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.doc, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("quiz:"+slug, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.quizzes[slug]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.doc, nil
		}
		c.mu.RUnlock()

		doc, err := c.loader.LoadPublishedQuiz(ctx, slug)
		if err != nil {
			return domain.QuizDocument{}, err
		}

		c.mu.Lock()
		c.quizzes[slug] = cachedQuiz{doc: doc, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return domain.QuizDocument{}, err
	}
	return result.(domain.QuizDocument), nil
}

func (c *ContentCache) PublishedArticle(ctx context.Context, slug string) (domain.Article, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.articles[slug]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.article, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("article:"+slug, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.articles[slug]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.article, nil
		}
		c.mu.RUnlock()

		article, err := c.loader.LoadPublishedArticle(ctx, slug)
		if err != nil {
			return domain.Article{}, err
		}

		c.mu.Lock()
		c.articles[slug] = cachedArticle{article: article, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return article, nil
	})
	if err != nil {
		return domain.Article{}, err
	}
	return result.(domain.Article), nil
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
