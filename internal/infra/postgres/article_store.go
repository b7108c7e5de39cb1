package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"funnelpress/internal/domain"
)

// ArticleStore persists advertorial articles as JSONB rows.
type ArticleStore struct {
	pool *pgxpool.Pool
}

func NewArticleStore(pool *pgxpool.Pool) *ArticleStore {
	return &ArticleStore{pool: pool}
}

func (s *ArticleStore) ListArticles(ctx context.Context) ([]domain.Article, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM articles ORDER BY data->>'createdAt' DESC`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		var article domain.Article
		if err := json.Unmarshal(raw, &article); err != nil {
			return nil, fmt.Errorf("unmarshal article: %w", err)
		}
		out = append(out, article)
	}
	return out, rows.Err()
}

func (s *ArticleStore) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	return s.getArticle(ctx, `SELECT data FROM articles WHERE id=$1`, id)
}

func (s *ArticleStore) GetArticleBySlug(ctx context.Context, slug string) (domain.Article, error) {
	return s.getArticle(ctx, `SELECT data FROM articles WHERE slug=$1`, slug)
}

func (s *ArticleStore) getArticle(ctx context.Context, query, arg string) (domain.Article, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, query, arg).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Article{}, domain.ErrArticleNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("load article: %w", err)
	}
	var article domain.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return domain.Article{}, fmt.Errorf("unmarshal article: %w", err)
	}
	return article, nil
}

func (s *ArticleStore) PutArticle(ctx context.Context, article domain.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO articles (id, slug, status, data) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET slug=EXCLUDED.slug, status=EXCLUDED.status, data=EXCLUDED.data`,
		article.ID, article.Slug, string(article.Status), data)
	if err != nil {
		return fmt.Errorf("save article: %w", err)
	}
	return nil
}

func (s *ArticleStore) DeleteArticle(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}
