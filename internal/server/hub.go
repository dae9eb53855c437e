package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans game state out to every connected websocket client.
type Hub struct {
	mu             sync.Mutex
	clients        map[*Client]struct{}
	broadcastState chan StateResponse
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:        make(map[*Client]struct{}),
		broadcastState: make(chan StateResponse, 32),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastState:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a state snapshot without blocking the caller. A
// snapshot is dropped when nothing drains the channel.
func (h *Hub) Broadcast(state StateResponse) {
	select {
	case h.broadcastState <- state:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

const wsIdlePingInterval = 30 * time.Second

// writeWithHeartbeat pumps queued messages to the connection and pings
// it when idle, returning on the first write error or a closed channel.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	var ticker = time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	var lastWrite = time.Now()
	var pingPayload = mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
