package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Client is one connected websocket peer. mu serializes enqueue against
// shutdown: a broadcast that snapshotted the room before a disconnect must
// see the closed flag, never a closed channel.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue hands a frame to the write pump without blocking; a client that
// cannot keep up loses the frame, and a client that already disconnected
// swallows it. Clients recover current state through the duel query
// endpoint, not through event replay.
func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.WithField("socket_id", c.id).Warn("dropping frame for slow client")
	}
}

// shutdown closes the send channel exactly once, after which enqueue is a
// no-op.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// inboundMessage is what clients send to the hub. The only meaningful
// message is a room subscription keyed by duel id.
type inboundMessage struct {
	Type   string `json:"type"`
	DuelID string `json:"duel_id"`
}

// readPump consumes client messages until the connection drops, handing
// each to onMessage. It owns cleanup for the connection.
func (c *Client) readPump(onMessage func(*Client, inboundMessage)) {
	defer func() {
		c.hub.remove(c)
		c.shutdown()
		c.conn.Close()
		log.WithField("socket_id", c.id).Debug("socket disconnected")
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("socket_id", c.id).WithError(err).Warn("socket read error")
			}
			return
		}
		onMessage(c, msg)
	}
}

// writePump serializes all writes to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
