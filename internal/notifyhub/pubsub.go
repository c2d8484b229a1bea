package notifyhub

import (
	"encoding/json"
	"log"

	"github.com/Aaryan-549/CivicPulse/internal/config"
	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// startPubSubListener subscribes to the shared event channel and feeds
// decoded events into the dispatch loop. Without Redis the hub still works
// for this one process: Publish writes to PubSubCh directly.
func (h *Hub) startPubSubListener() {
	if h.Redis == nil {
		return
	}

	go func() {
		pubsub := h.Redis.Subscribe(h.ctx, config.EventsChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Undecodable event on %s: %v", config.EventsChannel, err)
				continue
			}
			h.PubSubCh <- ev
		}
	}()
}
