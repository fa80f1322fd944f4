package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"quizarena/models"
	"quizarena/services"
)

// DuelFinder is the read-only duel lookup the handler needs to replay the
// started event to late room subscribers.
type DuelFinder interface {
	FindByID(ctx context.Context, id string) (*models.Duel, error)
}

// Handler upgrades HTTP requests into duel-room subscriptions.
type Handler struct {
	hub   *Hub
	duels DuelFinder
}

func NewHandler(hub *Hub, duels DuelFinder) *Handler {
	return &Handler{hub: hub, duels: duels}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// In production, restrict CheckOrigin to trusted origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve handles GET /ws. Clients subscribe to duel rooms by sending
// duel:join_room messages after connecting.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := newClient(h.hub, conn)
	log.WithField("socket_id", client.id).Debug("socket connected")

	go client.writePump()
	client.readPump(h.onMessage)
}

func (h *Handler) onMessage(client *Client, msg inboundMessage) {
	switch msg.Type {
	case "duel:join_room":
		h.joinDuelRoom(client, msg.DuelID)
	default:
		log.WithField("type", msg.Type).Debug("ignoring unknown socket message")
	}
}

// joinDuelRoom subscribes the client to a duel's room. If player 2 already
// joined over HTTP before this socket connected, the started event is
// replayed to the room so the subscriber is not left waiting for a
// broadcast that already happened.
func (h *Handler) joinDuelRoom(client *Client, duelID string) {
	if duelID == "" {
		return
	}

	h.hub.join(duelID, client)
	log.WithFields(log.Fields{"socket_id": client.id, "room": duelID}).Debug("socket joined room")

	duel, err := h.duels.FindByID(context.Background(), duelID)
	if err != nil {
		log.WithField("duel_id", duelID).WithError(err).Warn("room join duel lookup failed")
		return
	}
	if duel.Status == models.DuelStatusInBattle {
		h.hub.Emit(services.EventDuelStarted, services.DuelEvent{DuelID: duelID}, duelID)
	}
}
