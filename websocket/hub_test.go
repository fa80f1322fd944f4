package websocket

import (
	"encoding/json"
	"sync"
	"testing"
)

func testClient() *Client {
	return &Client{id: "test", send: make(chan []byte, sendBufferSize)}
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		return event
	default:
		t.Fatal("expected a frame, got none")
		return Event{}
	}
}

func TestEmitReachesRoomSubscribers(t *testing.T) {
	hub := NewHub()
	first, second := testClient(), testClient()
	hub.join("duel-1", first)
	hub.join("duel-1", second)

	hub.Emit("duel:started", map[string]string{"duel_id": "duel-1"}, "duel-1")

	for _, client := range []*Client{first, second} {
		event := receive(t, client)
		if event.Type != "duel:started" {
			t.Errorf("expected duel:started, got %q", event.Type)
		}
	}
}

func TestEmitIsScopedToRoom(t *testing.T) {
	hub := NewHub()
	inRoom, elsewhere := testClient(), testClient()
	hub.join("duel-1", inRoom)
	hub.join("duel-2", elsewhere)

	hub.Emit("duel:progress", nil, "duel-1")

	receive(t, inRoom)
	select {
	case <-elsewhere.send:
		t.Fatal("event leaked into another room")
	default:
	}
}

func TestEmitToEmptyRoom(t *testing.T) {
	hub := NewHub()
	// Nothing subscribed; must be a silent no-op.
	hub.Emit("duel:finished", nil, "duel-404")
}

func TestRemoveDropsClientEverywhere(t *testing.T) {
	hub := NewHub()
	client, other := testClient(), testClient()
	hub.join("duel-1", client)
	hub.join("duel-2", client)
	hub.join("duel-1", other)

	hub.remove(client)

	if size := hub.roomSize("duel-1"); size != 1 {
		t.Errorf("expected 1 client left in duel-1, got %d", size)
	}
	if size := hub.roomSize("duel-2"); size != 0 {
		t.Errorf("expected empty duel-2, got %d", size)
	}

	hub.Emit("duel:progress", nil, "duel-1")
	select {
	case <-client.send:
		t.Fatal("removed client still receives events")
	default:
	}
}

func TestSlowClientDropsFrameWithoutBlocking(t *testing.T) {
	hub := NewHub()
	client := testClient()
	hub.join("duel-1", client)

	// Fill the buffer past capacity; extra frames must be dropped, and
	// Emit must not block.
	for i := 0; i < sendBufferSize+5; i++ {
		hub.Emit("duel:progress", i, "duel-1")
	}

	if got := len(client.send); got != sendBufferSize {
		t.Errorf("expected full buffer of %d frames, got %d", sendBufferSize, got)
	}
}

// Broadcasts racing a disconnect must not reach a closed send channel.
func TestEmitDuringDisconnectChurn(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					hub.Emit("duel:progress", nil, "duel-1")
				}
			}
		}()
	}

	for i := 0; i < 500; i++ {
		client := testClient()
		hub.join("duel-1", client)
		hub.remove(client)
		client.shutdown()
	}

	close(done)
	wg.Wait()
}

// Frames enqueued after shutdown are swallowed, not sent.
func TestEnqueueAfterShutdown(t *testing.T) {
	hub := NewHub()
	client := testClient()
	hub.join("duel-1", client)

	hub.remove(client)
	client.shutdown()
	client.enqueue([]byte(`{"type":"duel:started"}`))

	if _, open := <-client.send; open {
		t.Fatal("send channel still delivering after shutdown")
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	hub := NewHub()
	client := testClient()
	hub.join("duel-1", client)
	hub.join("duel-1", client)

	if size := hub.roomSize("duel-1"); size != 1 {
		t.Errorf("double join must not duplicate the client, got %d", size)
	}

	hub.Emit("duel:started", nil, "duel-1")
	receive(t, client)
	select {
	case <-client.send:
		t.Fatal("client received a duplicate frame")
	default:
	}
}
