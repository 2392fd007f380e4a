package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
)

// Event is the envelope broadcast to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans ledger events out to websocket subscribers.
type Hub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn

	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	mutex     sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
	}
}

// Publish queues an event for broadcast. Events are dropped rather
// than blocking the caller when the hub is saturated or not running.
func (h *Hub) Publish(eventType string, payload interface{}) {
	msg, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		logrus.WithError(err).Warn("ws: failed to marshal event")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			logrus.Debug("ws: client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
