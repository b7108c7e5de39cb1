package app

import (
	"context"
	"sync"

	"funnelpress/internal/domain"
	"funnelpress/internal/editor"
)

// QuizStore is the persistence boundary for quiz documents. PutQuiz
// writes the full document atomically; there is no field-level save.
type QuizStore interface {
	ListQuizzes(ctx context.Context) ([]domain.QuizDocument, error)
	GetQuiz(ctx context.Context, id string) (domain.QuizDocument, error)
	GetQuizBySlug(ctx context.Context, slug string) (domain.QuizDocument, error)
	PutQuiz(ctx context.Context, doc domain.QuizDocument) error
	DeleteQuiz(ctx context.Context, id string) error
}

// SessionRepository abstracts how open editing sessions are tracked
// (in-memory, Redis liveness markers, etc).
type SessionRepository interface {
	Put(quizID string, s *Session)
	Get(quizID string) (*Session, bool)
	Delete(quizID string)
}

// DocumentState is the snapshot handed to the presentation layer after
// every operation: the document, the selection cursor, and whether there
// are unsaved edits.
type DocumentState struct {
	Document domain.QuizDocument `json:"document"`
	Selected int                 `json:"selected"`
	Dirty    bool                `json:"dirty"`
}

// Session is one operator's private in-memory copy of a quiz document.
// All mutation happens under its lock; nothing is shared across
// sessions, and conflicting saves resolve as last-write-wins at the
// store.
type Session struct {
	quizID   string
	mu       sync.Mutex
	doc      domain.QuizDocument
	selected int
	dirty    bool
	rev      uint64
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(quizID string, doc domain.QuizDocument) *Session {
	return &Session{quizID: quizID, doc: doc}
}

func (s *Session) snapshot() DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DocumentState{Document: s.doc, Selected: s.selected, Dirty: s.dirty}
}

func (s *Session) apply(op Operation) (DocumentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, sel, err := applyOperation(s.doc, s.selected, op)
	if err != nil {
		return DocumentState{Document: s.doc, Selected: s.selected, Dirty: s.dirty}, err
	}
	s.doc = doc
	s.selected = sel
	s.dirty = true
	s.rev++
	return DocumentState{Document: s.doc, Selected: s.selected, Dirty: s.dirty}, nil
}

// EditorService owns the load-edit-save lifecycle of quiz documents.
type EditorService struct {
	sessions SessionRepository
	store    QuizStore
}

func NewEditorService(sessions SessionRepository, store QuizStore) *EditorService {
	return &EditorService{sessions: sessions, store: store}
}

// Open returns the editing state for the quiz, loading and normalizing
// the document from the store if no session is open yet. Reopening an
// existing session resumes it with unsaved edits intact.
func (e *EditorService) Open(ctx context.Context, quizID string) (DocumentState, error) {
	if session, ok := e.sessions.Get(quizID); ok {
		return session.snapshot(), nil
	}
	doc, err := e.store.GetQuiz(ctx, quizID)
	if err != nil {
		return DocumentState{}, err
	}
	session := NewSession(quizID, editor.Normalize(doc))
	e.sessions.Put(quizID, session)
	return session.snapshot(), nil
}

// Apply runs one editing operation against the open session.
func (e *EditorService) Apply(_ context.Context, quizID string, op Operation) (DocumentState, error) {
	session, ok := e.sessions.Get(quizID)
	if !ok {
		return DocumentState{}, domain.ErrSessionNotFound
	}
	return session.apply(op)
}

// Save writes the session's document through the store. A failed save
// leaves the in-memory document untouched so the operator can retry.
func (e *EditorService) Save(ctx context.Context, quizID string) (DocumentState, error) {
	session, ok := e.sessions.Get(quizID)
	if !ok {
		return DocumentState{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	doc := session.doc
	rev := session.rev
	session.mu.Unlock()

	if err := e.store.PutQuiz(ctx, doc); err != nil {
		return session.snapshot(), err
	}

	session.mu.Lock()
	// Edits within one session are serialized, but a new operation may
	// have landed while the save was in flight; keep the dirty flag then.
	if session.rev == rev {
		session.dirty = false
	}
	session.mu.Unlock()
	return session.snapshot(), nil
}

// Close discards the session, dropping unsaved edits.
func (e *EditorService) Close(quizID string) {
	e.sessions.Delete(quizID)
}
