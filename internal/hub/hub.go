package hub

import (
	"log"
	"sync"
)

// Hub owns the live-connection registry and fans notification frames out
// to connected clients. All mutation goes through Register, Unregister and
// the send methods; iteration works on a snapshot so connections may join
// or leave mid-broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	byUser  map[uint64]map[*Client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		byUser:  make(map[uint64]map[*Client]struct{}),
	}
}

// Register adds an open connection to the live set, making it eligible for
// all future broadcasts. Clients carrying an identity are also indexed for
// recipient-targeted delivery.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		go c.close()
		return
	}

	h.clients[c] = struct{}{}
	if c.userID != 0 {
		set, ok := h.byUser[c.userID]
		if !ok {
			set = make(map[*Client]struct{})
			h.byUser[c.userID] = set
		}
		set[c] = struct{}{}
	}
	log.Printf("Client connected (user=%d, %d live)", c.userID, len(h.clients))
}

// Unregister removes a connection from the live set and closes it.
// Idempotent: unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, known := h.clients[c]
	delete(h.clients, c)
	if set, ok := h.byUser[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	remaining := len(h.clients)
	h.mu.Unlock()

	c.close()
	if known {
		log.Printf("Client disconnected (user=%d, %d live)", c.userID, remaining)
	}
}

// Broadcast pushes payload to every open connection. A slow or failed
// connection is dropped; it never blocks delivery to the others.
func (h *Hub) Broadcast(payload []byte) {
	for _, c := range h.snapshot() {
		h.push(c, payload)
	}
}

// SendToRecipient pushes payload only to the connections registered for
// userID. A recipient with no live connection is a no-op.
func (h *Hub) SendToRecipient(userID uint64, payload []byte) {
	h.mu.RLock()
	set := h.byUser[userID]
	targets := make([]*Client, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.push(c, payload)
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every live connection and rejects new registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]struct{})
	h.byUser = make(map[uint64]map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	log.Println("Hub shutdown complete")
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}

// push enqueues payload on the client's send buffer. A full buffer means
// the consumer stopped draining; the connection is closed rather than
// letting it stall the hub.
func (h *Hub) push(c *Client, payload []byte) {
	if c.trySend(payload) {
		return
	}
	if !c.isClosed() {
		log.Printf("Dropping slow client (user=%d)", c.userID)
	}
	h.Unregister(c)
}
