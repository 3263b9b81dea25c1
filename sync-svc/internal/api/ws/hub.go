package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	hub   *Hub
	scope domain.Scope
	conn  *websocket.Conn
	send  chan []byte
}

// Hub pushes cost update events to websocket clients watching a scope.
type Hub struct {
	mu      sync.Mutex
	clients map[domain.Scope]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[domain.Scope]map[*client]struct{})}
}

// ServeHTTP upgrades GET /ws/costs?tenantId=&locationId= requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope{
		TenantID:   r.URL.Query().Get("tenantId"),
		LocationID: r.URL.Query().Get("locationId"),
	}
	if !scope.Valid() {
		http.Error(w, "tenantId and locationId are required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	c := &client{hub: h, scope: scope, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// CostsUpdated broadcasts event to the clients of its scope. Slow clients drop
// the message instead of blocking the engine.
func (h *Hub) CostsUpdated(_ context.Context, event domain.CostsUpdatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[event.Scope()] {
		select {
		case c.send <- data:
		default:
			log.Printf("WebSocket buffer full for %s, dropping event %s", c.scope, event.ID)
		}
	}
	return nil
}

// Clients returns the number of connected clients for scope.
func (h *Hub) Clients(scope domain.Scope) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[scope])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for scope, clients := range h.clients {
		for c := range clients {
			close(c.send)
		}
		delete(h.clients, scope)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.scope] == nil {
		h.clients[c.scope] = make(map[*client]struct{})
	}
	h.clients[c.scope][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[c.scope]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.clients, c.scope)
	}
	close(c.send)
}

// readPump discards client input and detects disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
