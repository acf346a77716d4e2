// internal/server/broadcast.go
package server

import (
	"log"

	"chatrelay/pkg/protocol"
)

// Broadcaster fans a payload out to every registered client except an
// optional sender. Delivery is best effort: a client whose send fails is
// evicted from the registry and the broadcast continues to the rest.
type Broadcaster struct {
	registry *Registry
}

func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// Broadcast sends payload to every client in the current registry snapshot
// whose handle is not excludeID.
func (b *Broadcaster) Broadcast(payload []byte, excludeID string) {
	for _, c := range b.registry.Snapshot() {
		if c.ID == excludeID {
			continue
		}
		if err := c.Send(payload); err != nil {
			log.Printf("Failed to send to %s: %v", c.Name(), err)
			if b.registry.Unregister(c.ID) {
				c.Close()
				log.Printf("Client %s removed after send failure", c.Name())
			}
		}
	}
}

// BroadcastFrame encodes the frame once and broadcasts it.
func (b *Broadcaster) BroadcastFrame(f protocol.Frame, excludeID string) {
	payload, err := f.Encode()
	if err != nil {
		log.Printf("Failed to encode broadcast frame: %v", err)
		return
	}
	b.Broadcast(payload, excludeID)
}
