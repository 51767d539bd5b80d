package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastMessage_FansOutToAllClients(t *testing.T) {
	hub := NewHub()
	first := &Client{Hub: hub, ID: 1, Send: make(chan []byte, 1)}
	second := &Client{Hub: hub, ID: 2, Send: make(chan []byte, 1)}
	hub.Clients[first.ID] = first
	hub.Clients[second.ID] = second

	hub.broadcastMessage(&Message{
		Type:      "new_report",
		Data:      map[string]interface{}{"report_id": float64(7)},
		Timestamp: time.Now().UTC(),
	})

	for _, client := range []*Client{first, second} {
		select {
		case payload := <-client.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, "new_report", msg.Type)
		default:
			t.Fatalf("client %d received nothing", client.ID)
		}
	}
}

func TestBroadcastMessage_SkipsSlowClients(t *testing.T) {
	hub := NewHub()
	slow := &Client{Hub: hub, ID: 1, Send: make(chan []byte, 1)}
	fast := &Client{Hub: hub, ID: 2, Send: make(chan []byte, 1)}
	hub.Clients[slow.ID] = slow
	hub.Clients[fast.ID] = fast

	// Fill the slow client's buffer so the broadcast cannot enqueue.
	slow.Send <- []byte("stuck")

	hub.broadcastMessage(&Message{Type: "new_report", Timestamp: time.Now().UTC()})

	assert.Len(t, fast.Send, 1)
	// The slow client still only holds the pre-existing payload.
	assert.Equal(t, "stuck", string(<-slow.Send))
	assert.Len(t, slow.Send, 0)
}
