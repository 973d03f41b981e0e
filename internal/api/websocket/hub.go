package websocket

import (
	"context"
	"encoding/json"
	"log"

	"github.com/scorecardlab/deadball/internal/publisher"
)

// Hub maintains the set of connected clients and broadcasts build
// events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	count      chan chan int
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan chan int),
	}
}

// Run processes register/unregister/broadcast events until the process
// exits. All client-set mutation happens on this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("[ws-hub] client connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[ws-hub] client disconnected (%d total)", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop it rather than block the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Broadcast queues a raw message for every connected client
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- data
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	reply := make(chan int)
	h.count <- reply
	return <-reply
}

// PublishBuildEvent implements the build service's event sink by
// broadcasting the event as JSON.
func (h *Hub) PublishBuildEvent(ctx context.Context, event publisher.BuildEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}
