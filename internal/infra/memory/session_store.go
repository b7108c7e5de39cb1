package memory

import (
	"sync"

	"funnelpress/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(quizID string, session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[quizID] = session
}

func (s *SessionStore) Get(quizID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[quizID]
	return session, ok
}

func (s *SessionStore) Delete(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, quizID)
}
