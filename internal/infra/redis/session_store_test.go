package redis

import (
	"testing"
	"time"

	"funnelpress/internal/app"
	"funnelpress/internal/domain"
)

func TestSessionStoreLiveness(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, time.Minute)

	session := app.NewSession("q1", domain.QuizDocument{ID: "q1"})
	store.Put("q1", session)

	got, ok := store.Get("q1")
	if !ok || got != session {
		t.Fatalf("expected the stored session back")
	}
	if !mr.Exists("editor:session:q1") {
		t.Fatalf("expected liveness marker in redis")
	}

	store.Delete("q1")
	if _, ok := store.Get("q1"); ok {
		t.Fatalf("session should be gone after delete")
	}
	if mr.Exists("editor:session:q1") {
		t.Fatalf("liveness marker should be cleared")
	}
}
