package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Client represents a connected collector
type Client struct {
	Hub  *Hub
	ID   uint
	Send chan []byte
}

// Hub manages all connected collector clients and fans report events out to
// them.
type Hub struct {
	// Registered clients keyed by user id
	Clients map[uint]*Client

	// Broadcast channel for messages to all clients
	Broadcast chan *Message

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// Message is a collector feed event
type Message struct {
	Type      string      `json:"type"` // new_report, report_update, connected, pong
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Broadcast:  make(chan *Message),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Collector connected: ID=%d", client.ID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.ID]; ok {
				delete(h.Clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Collector disconnected: ID=%d", client.ID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// broadcastMessage fans a message out to every connected collector. Slow
// clients with a full send buffer are skipped rather than blocking the hub.
func (h *Hub) broadcastMessage(message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Failed to marshal broadcast message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, client := range h.Clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("⚠️ Send buffer full for collector %d, dropping message", id)
		}
	}
}

// BroadcastNewReport notifies connected collectors about a new pending
// waste report.
func (h *Hub) BroadcastNewReport(report interface{}) {
	h.Broadcast <- &Message{
		Type:      "new_report",
		Data:      report,
		Timestamp: time.Now().UTC(),
	}
}
