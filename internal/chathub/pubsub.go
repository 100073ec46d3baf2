package chathub

import (
	"encoding/json"
	"log"
	"strings"

	"skillswap/backend/internal/models"
)

// startPubSubListener subscribes to the Redis chat channels and feeds every
// received event into the dispatcher. Broadcasts travel through Redis even
// on a single instance, so a second server can join the same backplane
// without code changes.
func (m *ManagerService) startPubSubListener() {
	pubsub := m.Storage.SubscribeChatEvents()
	if pubsub == nil {
		// No backplane configured (tests); Broadcast still works.
		return
	}

	go func() {
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.ServerEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("Error unmarshalling pubsub message: %v", err)
				continue
			}

			sessionID := ev.SessionID
			if sessionID == "" {
				// Fall back to the channel name (chat:<sessionID>).
				if i := strings.IndexByte(msg.Channel, ':'); i >= 0 {
					sessionID = msg.Channel[i+1:]
				}
			}
			if sessionID == "" {
				continue
			}

			m.Broadcast(sessionID, ev)
		}
	}()
}
