// internal/server/registry.go
package server

import "sync"

// Registry is the set of live clients. It is the only shared mutable state
// in the server; every mutation and snapshot goes through one mutex.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Register adds the client and returns its handle.
func (r *Registry) Register(c *Client) string {
	r.mu.Lock()
	r.clients[c.ID] = c
	r.mu.Unlock()
	return c.ID
}

// Unregister removes the client with the given handle. Idempotent: calling
// it for an already-removed client is a no-op. Returns whether the client
// was still registered.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return false
	}
	delete(r.clients, id)
	return true
}

// Snapshot returns a point-in-time copy of the live clients, safe to
// iterate while other goroutines register and unregister.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	return clients
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
