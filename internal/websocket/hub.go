package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/dom/bikeshare-backend/internal/domain"
)

// Hub fans rental lifecycle events out to every connected feed client.
// All clients see the same stream; there are no rooms or subscriptions.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("failed to marshal broadcast message: %v", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				client.trySend(data)
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and waits for Run() to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// RentalStarted broadcasts that a rental session was opened.
func (h *Hub) RentalStarted(rental *domain.BikeRental) {
	h.emit(MessageTypeRentalStarted, rental)
}

// RentalCompleted broadcasts that a rental was returned and its reward computed.
func (h *Hub) RentalCompleted(rental *domain.BikeRental) {
	h.emit(MessageTypeRentalCompleted, rental)
}

func (h *Hub) emit(msgType MessageType, rental *domain.BikeRental) {
	msg, err := NewMessage(msgType, RentalEventPayload{Rental: rental})
	if err != nil {
		log.Printf("failed to build %s message: %v", msgType, err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
