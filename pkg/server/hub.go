package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/memolab/pkg/hooks"
)

// MessageType identifies a hub message.
type MessageType string

const (
	MessageTypePass   MessageType = "pass"
	MessageTypeFailed MessageType = "failed"
	MessageTypeReset  MessageType = "reset"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type    MessageType `json:"type"`
	Lesson  string      `json:"lesson"`
	Seq     uint64      `json:"seq,omitempty"`
	Trigger string      `json:"trigger,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const (
	hubQueueSize = 64
	writeWait    = 5 * time.Second
)

// Hub fans pass notifications out to WebSocket clients. It is also a
// hooks.Observer; observer callbacks run under the holder lock, so they only
// enqueue and a background goroutine does the writes.
type Hub struct {
	clients  map[string]*websocket.Conn
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	queue    chan Message
	done     chan struct{}
	closed   sync.Once
	logger   *slog.Logger
}

// NewHub creates a hub and starts its writer.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		clients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		queue:  make(chan Message, hubQueueSize),
		done:   make(chan struct{}),
		logger: logger.With("component", "hub"),
	}
	go h.loop()
	return h
}

// HandleWebSocket upgrades the connection and keeps it until the client
// disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
	h.logger.Debug("client connected", "client", id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(id, conn)
	h.logger.Debug("client disconnected", "client", id)
}

// Notify queues msg for every client. It never blocks; when the queue is
// full the message is dropped.
func (h *Hub) Notify(msg Message) {
	select {
	case <-h.done:
	case h.queue <- msg:
	default:
		h.logger.Warn("hub queue full, dropping message", "lesson", msg.Lesson, "type", msg.Type)
	}
}

func (h *Hub) PassStarted(ctx context.Context, _ hooks.PassInfo) context.Context { return ctx }

func (h *Hub) GateDecided(context.Context, hooks.PassInfo, hooks.Decision) {}

func (h *Hub) PassFinished(_ context.Context, info hooks.PassInfo, err error) {
	msg := Message{Type: MessageTypePass, Lesson: info.Holder, Seq: info.Seq, Trigger: info.Trigger}
	if err != nil {
		msg.Type = MessageTypeFailed
		msg.Error = err.Error()
	}
	h.Notify(msg)
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.queue:
			h.broadcast(msg)
		}
	}
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make(map[string]*websocket.Conn, len(h.clients))
	for id, conn := range h.clients {
		clients[id] = conn
	}
	h.mu.RUnlock()

	for id, conn := range clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(id, conn)
		}
	}
}

func (h *Hub) drop(id string, conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the writer and closes every connection.
func (h *Hub) Close() {
	h.closed.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		conn.Close()
		delete(h.clients, id)
	}
}
