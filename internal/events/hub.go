// Package events pushes realtime events to connected console sessions: toast
// notifications from the booking coordinator and read-model invalidation
// signals telling the console which collections to refetch.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventType for WebSocket messages
type EventType string

const (
	// EventNotify carries a success/failure toast for the console
	EventNotify EventType = "notify"
	// EventInvalidate names read-model groups the console must refetch
	EventInvalidate EventType = "invalidate"
)

// Notice kinds consumed by the console's toast surface
const (
	NoticeSuccess = "success"
	NoticeFailure = "failure"
)

// Redis channel carrying events between API instances
const eventsChannel = "console:events"

// Notice is a fire-and-forget toast notification
type Notice struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Event represents a WebSocket event
type Event struct {
	Type   EventType `json:"type"`
	Notice *Notice   `json:"notice,omitempty"`
	Groups []string  `json:"groups,omitempty"`
}

type instanceEnvelope struct {
	SenderInstanceID string          `json:"sender_instance_id"`
	Payload          json.RawMessage `json:"payload"`
}

// Connection represents one console session's WebSocket connection
type Connection struct {
	UserID uuid.UUID
	Send   chan []byte
}

// Hub fans events out to every connected console session. Redis Pub/Sub
// bridges API instances so a mutation handled by one instance reaches
// sessions connected to another.
type Hub struct {
	connections map[*Connection]bool
	mu          sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	redis      *redis.Client
	pubsub     *redis.PubSub
	instanceID string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub. redisClient may be nil in single-instance mode.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		redis:       redisClient,
		instanceID:  uuid.NewString(),
		ctx:         ctx,
		cancel:      cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, eventsChannel)
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("Console session connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("Console session disconnected")
		}
	}
}

// Stop shuts the hub down
func (h *Hub) Stop() {
	if h.pubsub != nil {
		h.pubsub.Close()
	}
	h.cancel()
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Notify pushes a toast notification to all console sessions.
// Fire-and-forget: delivery failures are not reported to the caller.
func (h *Hub) Notify(ctx context.Context, kind, title, message string) {
	h.publish(ctx, &Event{Type: EventNotify, Notice: &Notice{Kind: kind, Title: title, Message: message}})
}

// PublishInvalidation tells console sessions which read-model groups went stale
func (h *Hub) PublishInvalidation(ctx context.Context, groups []string) {
	h.publish(ctx, &Event{Type: EventInvalidate, Groups: groups})
}

func (h *Hub) publish(ctx context.Context, event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.broadcastLocal(payload)

	if h.redis != nil {
		envelope, err := json.Marshal(instanceEnvelope{
			SenderInstanceID: h.instanceID,
			Payload:          payload,
		})
		if err != nil {
			return
		}
		if err := h.redis.Publish(ctx, eventsChannel, envelope).Err(); err != nil {
			log.Warn().Err(err).Msg("Failed to publish console event to Redis")
		}
	}
}

// runRedisSubscriber forwards events published by other API instances
func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var envelope instanceEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				continue
			}
			if envelope.SenderInstanceID == h.instanceID {
				continue
			}
			h.broadcastLocal([]byte(envelope.Payload))
		}
	}
}

// broadcastLocal sends to sessions connected to THIS instance
func (h *Hub) broadcastLocal(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections {
		select {
		case conn.Send <- payload:
		default:
			// Buffer full, skip this message
			log.Warn().Str("user_id", conn.UserID.String()).Msg("Console event send buffer full")
		}
	}
}
