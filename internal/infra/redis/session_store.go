package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"funnelpress/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Editing sessions themselves stay in the local process map: a
//     session is one operator's private working copy and is never
//     shared across instances.
//   - Redis marks session liveness so an operator dashboard (or a
//     sibling instance) can see which quizzes are currently open.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(quizID string, session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[quizID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(quizID), "1", s.ttl).Err()
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
	_ = s.client.Del(context.Background(), s.key(quizID)).Err()
}

func (s *SessionStore) key(quizID string) string {
	return "editor:session:" + quizID
}
