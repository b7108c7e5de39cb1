package app

import (
	"context"

	"funnelpress/internal/domain"
)

// PublishedLoader reads published content straight from the stores,
// hiding drafts and archived entries. Caches sit in front of it.
type PublishedLoader struct {
	Quizzes  QuizStore
	Articles ArticleStore
}

func (l PublishedLoader) LoadPublishedQuiz(ctx context.Context, slug string) (domain.QuizDocument, error) {
	doc, err := l.Quizzes.GetQuizBySlug(ctx, slug)
	if err != nil {
		return domain.QuizDocument{}, err
	}
	if doc.Status != domain.StatusPublished {
		return domain.QuizDocument{}, domain.ErrQuizNotFound
	}
	return doc, nil
}

func (l PublishedLoader) LoadPublishedArticle(ctx context.Context, slug string) (domain.Article, error) {
	article, err := l.Articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return domain.Article{}, err
	}
	if article.Status != domain.StatusPublished {
		return domain.Article{}, domain.ErrArticleNotFound
	}
	return article, nil
}
