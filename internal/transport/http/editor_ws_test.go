package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"funnelpress/internal/app"
	"funnelpress/internal/domain"
	"funnelpress/internal/infra/memory"
)

func editingQuiz() domain.QuizDocument {
	return domain.QuizDocument{
		ID:     "quiz-1",
		Slug:   "quiz-1",
		Name:   "Quiz One",
		Status: domain.StatusDraft,
		Slides: []domain.Slide{
			{ID: "s1", Kind: domain.KindTextChoice, Content: domain.SlideContent{
				Headline: "Pick one",
				Options: []domain.SlideOption{
					{ID: "o1", Text: "A"},
					{ID: "o2", Text: "B"},
				},
			}},
		},
	}
}

func TestEditorWebSocketFlow(t *testing.T) {
	store := memory.NewQuizStore(editingQuiz())
	service := app.NewEditorService(memory.NewSessionStore(), store)
	handler := NewEditorWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/editor", handler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/editor?quizId=quiz-1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The opening document snapshot arrives first.
	typ, payload := readNext(conn, t, "document")
	if typ != "document" {
		t.Fatalf("expected document, got %s", typ)
	}
	if payload["dirty"] == true {
		t.Fatalf("fresh session must not be dirty")
	}

	// Apply an operation and expect the updated snapshot.
	op := map[string]any{
		"type":    "op",
		"payload": map[string]any{"type": "addSlide", "kind": "offer"},
	}
	if err := conn.WriteJSON(op); err != nil {
		t.Fatalf("write op: %v", err)
	}
	_, payload = readNext(conn, t, "document")
	if payload["dirty"] != true {
		t.Fatalf("expected dirty session after edit")
	}
	doc, ok := payload["document"].(map[string]any)
	if !ok {
		t.Fatalf("missing document in payload")
	}
	slides, ok := doc["slides"].([]any)
	if !ok || len(slides) != 2 {
		t.Fatalf("expected 2 slides after add, got %v", doc["slides"])
	}

	// Save persists through the store and clears the dirty flag.
	if err := conn.WriteJSON(map[string]any{"type": "save"}); err != nil {
		t.Fatalf("write save: %v", err)
	}
	_, payload = readNext(conn, t, "saved")
	if payload["dirty"] == true {
		t.Fatalf("save should clear dirty flag")
	}
	stored, err := store.GetQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get stored quiz: %v", err)
	}
	if len(stored.Slides) != 2 {
		t.Fatalf("expected saved document with 2 slides, got %d", len(stored.Slides))
	}
}

func TestEditorWebSocketRejectsBadMessages(t *testing.T) {
	service := app.NewEditorService(memory.NewSessionStore(), memory.NewQuizStore(editingQuiz()))
	handler := NewEditorWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/editor", handler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/editor?quizId=quiz-1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readNext(conn, t, "document")

	if err := conn.WriteJSON(map[string]any{"type": "shout"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readNext(conn, t, "error")

	// Unknown operation types surface as errors, not disconnects.
	op := map[string]any{"type": "op", "payload": map[string]any{"type": "explode"}}
	if err := conn.WriteJSON(op); err != nil {
		t.Fatalf("write op: %v", err)
	}
	readNext(conn, t, "error")
}

func TestEditorWebSocketUnknownQuiz(t *testing.T) {
	service := app.NewEditorService(memory.NewSessionStore(), memory.NewQuizStore())
	handler := NewEditorWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/editor", handler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/editor?quizId=nope"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readNext(conn, t, "error")
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
