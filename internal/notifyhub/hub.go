// Package notifyhub fans committed complaint events out to every connected
// listener. Events travel through a Redis pub/sub channel so every service
// instance sees publishes from every other instance; delivery to listeners is
// best-effort with no acknowledgement, retry, or persistence.
package notifyhub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Aaryan-549/CivicPulse/internal/config"
	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// Listener is any event consumer the hub can manage uniformly: a WebSocket
// connection, the Telegram alerter, a test double.
type Listener interface {
	// GetID returns the unique identifier for this listener.
	GetID() string
	// GetSendChannel returns the channel the hub delivers events on.
	GetSendChannel() chan<- models.Event
	// Run starts the listener's delivery loop.
	Run()
	// Close shuts the listener down and releases its send channel.
	Close()
}

// Hub is the broadcast dispatcher. It implements lifecycle.Notifier.
type Hub struct {
	Listeners map[string]Listener

	RegisterCh   chan Listener
	UnregisterCh chan Listener

	// PubSubCh carries events from the Redis subscription into the dispatch
	// loop. Exported so tests can feed events without a live Redis.
	PubSubCh chan models.Event

	Redis *redis.Client
	ctx   context.Context
}

// NewHub creates a hub. rdb may be nil, in which case Publish loops events
// straight back into the local dispatch loop (single-instance mode, tests).
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		Listeners:    make(map[string]Listener),
		RegisterCh:   make(chan Listener),
		UnregisterCh: make(chan Listener),
		PubSubCh:     make(chan models.Event, 64),
		Redis:        rdb,
		ctx:          context.Background(),
	}
}

// Publish implements lifecycle.Notifier. It is called strictly after the
// owning transaction has committed; failures are logged and dropped, never
// surfaced to the lifecycle caller.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode %s payload: %v", event, err)
		return
	}
	ev := models.Event{Name: event, Payload: data}

	if h.Redis == nil {
		select {
		case h.PubSubCh <- ev:
		default:
			log.Printf("WARNING: local event buffer full, dropping %s", event)
		}
		return
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ERROR: Failed to encode %s event: %v", event, err)
		return
	}
	if err := h.Redis.Publish(h.ctx, config.EventsChannel, raw).Err(); err != nil {
		log.Printf("WARNING: Failed to publish %s to Redis: %v", event, err)
	}
}

// Run is the dispatch loop. It registers and unregisters listeners and fans
// every event out to all of them. A listener whose buffer is full is dropped
// rather than allowed to block the hub.
func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case l := <-h.RegisterCh:
			h.Listeners[l.GetID()] = l
			log.Printf("Listener %s connected (%d total)", l.GetID(), len(h.Listeners))

		case l := <-h.UnregisterCh:
			if _, ok := h.Listeners[l.GetID()]; ok {
				delete(h.Listeners, l.GetID())
				l.Close()
			}

		case ev := <-h.PubSubCh:
			for id, l := range h.Listeners {
				select {
				case l.GetSendChannel() <- ev:
				default:
					// The listener is not draining its channel; cut it
					// loose instead of stalling every other listener.
					delete(h.Listeners, id)
					l.Close()
					log.Printf("Listener %s dropped: send buffer full", id)
				}
			}
		}
	}
}
