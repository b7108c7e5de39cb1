package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"funnelpress/internal/domain"
)

type countingLoader struct {
	mu           sync.Mutex
	quizLoads    int
	articleLoads int
	quiz         domain.QuizDocument
	article      domain.Article
	err          error
}

func (l *countingLoader) LoadPublishedQuiz(context.Context, string) (domain.QuizDocument, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quizLoads++
	return l.quiz, l.err
}

func (l *countingLoader) LoadPublishedArticle(context.Context, string) (domain.Article, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.articleLoads++
	return l.article, l.err
}

func TestContentCacheServesFromCacheWithinTTL(t *testing.T) {
	loader := &countingLoader{quiz: domain.QuizDocument{ID: "q1", Slug: "q1", Status: domain.StatusPublished}}
	cache := NewContentCache(loader, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		doc, err := cache.PublishedQuiz(ctx, "q1")
		if err != nil {
			t.Fatalf("published quiz: %v", err)
		}
		if doc.ID != "q1" {
			t.Fatalf("unexpected doc %q", doc.ID)
		}
	}
	if loader.quizLoads != 1 {
		t.Fatalf("expected a single load within the TTL, got %d", loader.quizLoads)
	}
}

func TestContentCacheReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{quiz: domain.QuizDocument{ID: "q1", Slug: "q1"}}
	cache := NewContentCache(loader, time.Minute)

	now := time.Now()
	cache.clock = func() time.Time { return now }

	ctx := context.Background()
	if _, err := cache.PublishedQuiz(ctx, "q1"); err != nil {
		t.Fatalf("published quiz: %v", err)
	}
	// Jitter adds at most 10%, so two TTLs later the entry is stale.
	now = now.Add(2 * time.Minute)
	if _, err := cache.PublishedQuiz(ctx, "q1"); err != nil {
		t.Fatalf("published quiz after expiry: %v", err)
	}
	if loader.quizLoads != 2 {
		t.Fatalf("expected reload after expiry, got %d loads", loader.quizLoads)
	}
}

func TestContentCacheDoesNotCacheErrors(t *testing.T) {
	loader := &countingLoader{err: domain.ErrQuizNotFound}
	cache := NewContentCache(loader, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.PublishedQuiz(ctx, "missing"); err == nil {
			t.Fatalf("expected error")
		}
	}
	if loader.quizLoads != 2 {
		t.Fatalf("errors must not be cached, got %d loads", loader.quizLoads)
	}
}

func TestContentCacheCachesArticles(t *testing.T) {
	loader := &countingLoader{article: domain.Article{ID: "a1", Slug: "a1"}}
	cache := NewContentCache(loader, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		article, err := cache.PublishedArticle(ctx, "a1")
		if err != nil {
			t.Fatalf("published article: %v", err)
		}
		if article.ID != "a1" {
			t.Fatalf("unexpected article %q", article.ID)
		}
	}
	if loader.articleLoads != 1 {
		t.Fatalf("expected a single article load, got %d", loader.articleLoads)
	}
}
