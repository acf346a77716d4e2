// internal/server/registry_test.go
package server

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeClient(t *testing.T) (*Client, net.Conn) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	t.Cleanup(func() {
		serverSide.Close()
		clientSide.Close()
	})
	return NewClient(serverSide), clientSide
}

func TestRegistryRegisterAndSnapshot(t *testing.T) {
	reg := NewRegistry()

	c1, _ := newPipeClient(t)
	c2, _ := newPipeClient(t)

	id1 := reg.Register(c1)
	id2 := reg.Register(c2)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, reg.Len())

	snapshot := reg.Snapshot()
	assert.Len(t, snapshot, 2)
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	c, _ := newPipeClient(t)
	id := reg.Register(c)

	assert.True(t, reg.Unregister(id))
	assert.False(t, reg.Unregister(id), "second removal must be a no-op")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	reg := NewRegistry()
	c1, _ := newPipeClient(t)
	c2, _ := newPipeClient(t)
	reg.Register(c1)
	reg.Register(c2)

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 2)

	reg.Unregister(c1.ID)

	// the earlier snapshot is a point-in-time copy
	assert.Len(t, snapshot, 2)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serverSide, clientSide := net.Pipe()
			defer serverSide.Close()
			defer clientSide.Close()

			c := NewClient(serverSide)
			id := reg.Register(c)
			reg.Snapshot()
			reg.Unregister(id)
			reg.Unregister(id)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Len())
}
