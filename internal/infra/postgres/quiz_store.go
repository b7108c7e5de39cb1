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

// QuizStore persists quiz documents as JSONB rows; slug and status are
// lifted into columns for lookups.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.QuizDocument, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM quizzes ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []domain.QuizDocument
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		var doc domain.QuizDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal quiz: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *QuizStore) GetQuiz(ctx context.Context, id string) (domain.QuizDocument, error) {
	return s.getQuiz(ctx, `SELECT data FROM quizzes WHERE id=$1`, id)
}

func (s *QuizStore) GetQuizBySlug(ctx context.Context, slug string) (domain.QuizDocument, error) {
	return s.getQuiz(ctx, `SELECT data FROM quizzes WHERE slug=$1`, slug)
}

func (s *QuizStore) getQuiz(ctx context.Context, query, arg string) (domain.QuizDocument, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, query, arg).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizDocument{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.QuizDocument{}, fmt.Errorf("load quiz: %w", err)
	}
	var doc domain.QuizDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.QuizDocument{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return doc, nil
}

// PutQuiz writes the full document atomically; there is no field-level
// update path.
func (s *QuizStore) PutQuiz(ctx context.Context, doc domain.QuizDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO quizzes (id, slug, status, data) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET slug=EXCLUDED.slug, status=EXCLUDED.status, data=EXCLUDED.data`,
		doc.ID, doc.Slug, string(doc.Status), data)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}
