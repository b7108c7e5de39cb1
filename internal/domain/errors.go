package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz document could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrArticleNotFound indicates the article could not be loaded.
	ErrArticleNotFound = errors.New("article not found")
	// ErrSessionNotFound is returned when no editing session is open for a quiz.
	ErrSessionNotFound = errors.New("editing session not found")
	// ErrSlugTaken indicates a slug collision on create.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrNotPublished indicates the content exists but is not publicly visible.
	ErrNotPublished = errors.New("content not published")
)
