package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Notification is the transient user-facing message the admin UI shows
// as a toast. Failure context lives only here and in the server log.
type Notification struct {
	Level   string    `json:"level"` // "success" | "error"
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Hub maintains the set of connected admin sessions and broadcasts
// events to all of them. Unlike a per-room design, every back-office
// session sees every notification.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan Event

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			message, err := json.Marshal(event)
			if err != nil {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event Event) {
	h.broadcast <- event
}

// Notify broadcasts a toast-style notification. This is the public API
// handlers use to surface success and failure of user actions.
func (h *Hub) Notify(level, title, message string) {
	payload, err := json.Marshal(Notification{
		Level:   level,
		Title:   title,
		Message: message,
		Time:    time.Now(),
	})
	if err != nil {
		return
	}
	h.Broadcast(Event{Type: "notification", Payload: payload})
}
