package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"funnelpress/internal/domain"
)

// ContentLoader fetches published content from the backing store.
type ContentLoader interface {
	LoadPublishedQuiz(ctx context.Context, slug string) (domain.QuizDocument, error)
	LoadPublishedArticle(ctx context.Context, slug string) (domain.Article, error)
}

// ContentCache caches published documents as JSON strings in Redis and
// falls back to the loader on a miss. Keys:
//
//	SET pub:quiz:{slug}    {json} EX ttl
//	SET pub:article:{slug} {json} EX ttl
type ContentCache struct {
	client *redis.Client
	loader ContentLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewContentCache(client *redis.Client, loader ContentLoader, ttl time.Duration) *ContentCache {
	return &ContentCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ContentCache) PublishedQuiz(ctx context.Context, slug string) (domain.QuizDocument, error) {
	key := "pub:quiz:" + slug
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var doc domain.QuizDocument
		if err := json.Unmarshal(raw, &doc); err == nil {
			return doc, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var doc domain.QuizDocument
			if err := json.Unmarshal(raw, &doc); err == nil {
				return doc, nil
			}
		}
		doc, err := c.loader.LoadPublishedQuiz(ctx, slug)
		if err != nil {
			return domain.QuizDocument{}, err
		}
		c.fill(ctx, key, doc)
		return doc, nil
	})
	if err != nil {
		return domain.QuizDocument{}, err
	}
	return result.(domain.QuizDocument), nil
}

func (c *ContentCache) PublishedArticle(ctx context.Context, slug string) (domain.Article, error) {
	key := "pub:article:" + slug
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var article domain.Article
		if err := json.Unmarshal(raw, &article); err == nil {
			return article, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var article domain.Article
			if err := json.Unmarshal(raw, &article); err == nil {
				return article, nil
			}
		}
		article, err := c.loader.LoadPublishedArticle(ctx, slug)
		if err != nil {
			return domain.Article{}, err
		}
		c.fill(ctx, key, article)
		return article, nil
	})
	if err != nil {
		return domain.Article{}, err
	}
	return result.(domain.Article), nil
}

// Invalidate drops the cached copies for a slug; called after an edit is
// saved so public pages pick the change up before the TTL runs out.
func (c *ContentCache) Invalidate(ctx context.Context, slug string) {
	_ = c.client.Del(ctx, "pub:quiz:"+slug, "pub:article:"+slug).Err()
}

func (c *ContentCache) fill(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	// best-effort cache write
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
