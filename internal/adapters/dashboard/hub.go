// Package dashboard serves a single read-only attack-progress view:
// one websocket broadcasting crack.ProgressFunc updates and a
// /metrics route for the Prometheus registry. It is a trimmed form of
// the teacher's internal/adapters/web server, dropping auth, RBAC, and
// every endpoint that does not apply to an offline, single-job
// recovery tool.
package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ProgressMessage is broadcast to every connected client as the
// attack runs.
type ProgressMessage struct {
	JobID      string `json:"job_id"`
	Tried      uint64 `json:"tried"`
	Workers    int    `json:"workers"`
	Found      bool   `json:"found"`
	Passphrase string `json:"passphrase,omitempty"`
	Done       bool   `json:"done"`
}

// Hub tracks connected dashboard clients and the most recent progress
// message, so a client connecting mid-run immediately sees status.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    ProgressMessage
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// HandleWebSocket upgrades the connection and registers it for
// broadcasts, immediately sending the last known progress message.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("dashboard: upgrade error:", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	last := h.last
	h.mu.Unlock()

	if data, err := json.Marshal(last); err == nil {
		conn.WriteMessage(websocket.TextMessage, data)
	}

	go func() {
		defer conn.Close()
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast pushes msg to every connected client and remembers it for
// late joiners.
func (h *Hub) Broadcast(msg ProgressMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("dashboard: marshal error:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// HandleStatus returns the most recent progress message as JSON, for
// clients that only poll.
func (h *Hub) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	last := h.last
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(last)
}
