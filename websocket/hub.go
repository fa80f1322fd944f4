package websocket

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Event is the wire format of every broadcast.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans duel-room events out to subscribed connections. Rooms are keyed
// by duel id and created lazily on the first subscriber. Broadcasts are
// best-effort: a room with no subscribers swallows the event, and a slow
// client gets dropped rather than blocking the rest of the room.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool)}
}

// Emit broadcasts an event to every client subscribed to the room.
func (h *Hub) Emit(event string, payload interface{}, room string) {
	data, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		log.WithError(err).WithField("event", event).Error("failed to encode event")
		return
	}

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.rooms[room]))
	for client := range h.rooms[room] {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.enqueue(data)
	}
}

func (h *Hub) join(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.rooms[room]; !exists {
		h.rooms[room] = make(map[*Client]bool)
		log.WithField("room", room).Debug("room created")
	}
	h.rooms[room][client] = true
}

// remove drops a client from every room it joined, deleting rooms that
// become empty.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, clients := range h.rooms {
		if clients[client] {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

func (h *Hub) roomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}
