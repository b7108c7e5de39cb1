package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"funnelpress/internal/app"
)

// EditorWSHandler runs the live editing loop over a websocket: the
// client streams operations and receives the full document state after
// each one.
type EditorWSHandler struct {
	editor   *app.EditorService
	upgrader websocket.Upgrader
}

func NewEditorWSHandler(editor *app.EditorService) *EditorWSHandler {
	return &EditorWSHandler{
		editor: editor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and binds it to one quiz's editing
// session. Every accepted message is answered with either a document
// snapshot or an error; the document itself is the protocol.
func (h *EditorWSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	state, err := h.editor.Open(r.Context(), quizID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	if err := conn.WriteJSON(outboundMessage[app.DocumentState]{Type: "document", Payload: state}); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "op":
			var op app.Operation
			if err := json.Unmarshal(inbound.Payload, &op); err != nil {
				if werr := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid operation payload"}}); werr != nil {
					return
				}
				continue
			}
			state, err := h.editor.Apply(r.Context(), quizID, op)
			if err != nil {
				if werr := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}); werr != nil {
					return
				}
				continue
			}
			if err := conn.WriteJSON(outboundMessage[app.DocumentState]{Type: "document", Payload: state}); err != nil {
				return
			}
		case "save":
			state, err := h.editor.Save(r.Context(), quizID)
			if err != nil {
				if werr := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}); werr != nil {
					return
				}
				continue
			}
			if err := conn.WriteJSON(outboundMessage[app.DocumentState]{Type: "saved", Payload: state}); err != nil {
				return
			}
		case "close":
			h.editor.Close(quizID)
			return
		default:
			if err := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}); err != nil {
				return
			}
		}
	}
}
