package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"surveykit/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgNotification MessageType = "notification"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans notifications out to every open view of a user
type Hub struct {
	// userID -> open connections
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	quit       chan struct{}
	closeOnce  sync.Once

	log *slog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message for one user
type BroadcastMessage struct {
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		quit:       make(chan struct{}),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.UserID] == nil {
				h.conns[conn.UserID] = make(map[*Connection]struct{})
			}
			h.conns[conn.UserID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("notification view connected", slog.String("user", conn.UserID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if views, ok := h.conns[conn.UserID]; ok {
				if _, ok := views[conn]; ok {
					delete(views, conn)
					close(conn.Send)
					if len(views) == 0 {
						delete(h.conns, conn.UserID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("notification view disconnected", slog.String("user", conn.UserID))

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error("notification not encoded", slog.Any("err", err))
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.UserID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.quit:
			h.mu.Lock()
			for _, views := range h.conns {
				for conn := range views {
					close(conn.Send)
				}
			}
			h.conns = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.quit:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}

// Connected reports how many views a user has open
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Notify queues a notification for a user (implements service.Notifier)
func (h *Hub) Notify(userID string, n model.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.log.Error("notification not encoded", slog.Any("err", err))
		return
	}
	msg := &BroadcastMessage{
		UserID: userID,
		Message: &Message{
			Type:    MsgNotification,
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.quit:
	default:
		h.log.Warn("notification dropped", slog.String("user", userID))
	}
}

// Close stops the loop and closes every open connection
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
