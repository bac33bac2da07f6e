package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/docqa/frontend/internal/upload"
)

// WebSocket message types for the upload-progress protocol
const (
	// Client -> Server messages
	MsgTypeWatch = "watch"
	MsgTypePing  = "ping"

	// Server -> Client messages
	MsgTypeProgress = "progress"
	MsgTypeComplete = "complete"
	MsgTypeError    = "error"
	MsgTypePong     = "pong"
)

// WSMessage is the envelope for both directions.
type WSMessage struct {
	Type      string `json:"type"`
	JobID     string `json:"jobId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// WebSocketHandler pushes upload job events to the page.
type WebSocketHandler struct {
	uploads  *upload.Manager
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a websocket handler for upload progress.
func NewWebSocketHandler(uploads *upload.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		uploads: uploads,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The UI is served from the same origin; embedded deployments
			// may front this with any host name.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and serves watch requests. A client
// sends {"type":"watch","jobId":...} and receives progress events until the
// job completes or fails.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if send(upload.Event{Type: MsgTypeError, Message: "invalid message"}) != nil {
				return nil
			}
			continue
		}

		switch msg.Type {
		case MsgTypePing:
			if send(WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()}) != nil {
				return nil
			}
		case MsgTypeWatch:
			if msg.JobID == "" {
				if send(upload.Event{Type: MsgTypeError, Message: "jobId is required"}) != nil {
					return nil
				}
				continue
			}
			events, cancel, err := h.uploads.Watch(msg.JobID)
			if err != nil {
				if send(upload.Event{Type: MsgTypeError, Message: fmt.Sprintf("unknown job: %s", msg.JobID)}) != nil {
					return nil
				}
				continue
			}
			go h.forwardEvents(events, cancel, send)
		default:
			if send(upload.Event{Type: MsgTypeError, Message: fmt.Sprintf("unknown message type: %s", msg.Type)}) != nil {
				return nil
			}
		}
	}
}

// forwardEvents pushes job events to the client until the job reaches a
// terminal state. Write failures end the watch; the upload itself is never
// cancelled.
func (h *WebSocketHandler) forwardEvents(events <-chan upload.Event, cancel func(), send func(interface{}) error) {
	defer cancel()
	for ev := range events {
		if err := send(ev); err != nil {
			return
		}
		if ev.Type == upload.EventComplete || ev.Type == upload.EventError {
			return
		}
	}
}
