// Package websocket implements a WebSocket Hub for broadcasting real-time
// score updates. Players following a live side-bet game or event see scores
// the moment a group member enters them, without polling the API.
package websocket

import "sync"

// Client represents a single connected WebSocket client: one per player
// following a live feed.
type Client struct {
	Topic string      // Feed this client follows, e.g. "game:<id>" or "event:<id>"
	Send  chan []byte // Buffered channel of outgoing messages; the Hub writes here, the connection drains it
}

// Message is a unit of data to broadcast to all clients on one topic.
type Message struct {
	Topic string
	Data  []byte // Raw bytes to send, typically JSON-encoded scores or settlement
}

// Hub manages all active WebSocket connections, grouped by topic. It runs in
// its own goroutine and processes registration, unregistration, and broadcast
// events through channels, keeping map mutation on a single goroutine.
type Hub struct {
	// clients: topic -> set of connected clients. map[*Client]bool as a set
	// is the usual Go idiom.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu guards clients for the broadcast read path while the event loop
	// mutates it. RWMutex: many concurrent readers or one writer.
	mu sync.RWMutex
}

// NewHub creates an initialized Hub. The broadcast channel is buffered so
// score handlers don't block when the Hub is briefly busy; register and
// unregister stay unbuffered because those must complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop; call it in a goroutine ("go hub.Run()").
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Topic] == nil {
				h.clients[client.Topic] = make(map[*Client]bool)
			}
			h.clients[client.Topic][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Topic]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send) // signals the connection's writer goroutine to stop
					if len(clients) == 0 {
						delete(h.clients, client.Topic)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[msg.Topic]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.Send <- msg.Data:
				default:
					// Full buffer means a stalled client; drop it rather than
					// blocking the broadcast loop for everyone else.
					h.unregister <- client
				}
			}
		}
	}
}

// Broadcast sends data to all clients currently following the given topic.
// Handlers call this after a score write or settlement change.
func (h *Hub) Broadcast(topic string, data []byte) {
	h.broadcast <- &Message{Topic: topic, Data: data}
}

// Register adds a client so it starts receiving broadcasts for its topic.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
