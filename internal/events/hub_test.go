package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func attachConnection(h *Hub) *Connection {
	conn := &Connection{UserID: uuid.New(), Send: make(chan []byte, 4)}
	h.mu.Lock()
	h.connections[conn] = true
	h.mu.Unlock()
	return conn
}

func receive(t *testing.T, conn *Connection) Event {
	t.Helper()
	select {
	case payload := <-conn.Send:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func TestNotifyReachesAllSessions(t *testing.T) {
	h := NewHub(nil)
	defer h.Stop()

	first := attachConnection(h)
	second := attachConnection(h)

	h.Notify(context.Background(), NoticeSuccess, "Booking saved", "Booking for Ana")

	for _, conn := range []*Connection{first, second} {
		event := receive(t, conn)
		if event.Type != EventNotify {
			t.Fatalf("type = %s, want notify", event.Type)
		}
		if event.Notice == nil || event.Notice.Kind != NoticeSuccess || event.Notice.Title != "Booking saved" {
			t.Fatalf("notice = %+v", event.Notice)
		}
	}
}

func TestPublishInvalidationCarriesGroups(t *testing.T) {
	h := NewHub(nil)
	defer h.Stop()

	conn := attachConnection(h)

	h.PublishInvalidation(context.Background(), []string{"bookings", "workdays"})

	event := receive(t, conn)
	if event.Type != EventInvalidate {
		t.Fatalf("type = %s, want invalidate", event.Type)
	}
	if len(event.Groups) != 2 || event.Groups[0] != "bookings" || event.Groups[1] != "workdays" {
		t.Fatalf("groups = %v", event.Groups)
	}
}

func TestBroadcastSkipsFullBuffers(t *testing.T) {
	h := NewHub(nil)
	defer h.Stop()

	conn := &Connection{UserID: uuid.New(), Send: make(chan []byte)}
	h.mu.Lock()
	h.connections[conn] = true
	h.mu.Unlock()

	// Unbuffered channel with no reader: the broadcast must not block
	done := make(chan struct{})
	go func() {
		h.Notify(context.Background(), NoticeFailure, "Booking not saved", "store down")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full send buffer")
	}
}
