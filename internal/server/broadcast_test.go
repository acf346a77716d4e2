// internal/server/broadcast_test.go
package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startReader drains one side of a pipe and delivers each read as a payload.
func startReader(conn net.Conn) <-chan []byte {
	ch := make(chan []byte, 16)
	go func() {
		defer close(ch)
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			payload := make([]byte, n)
			copy(payload, buf[:n])
			ch <- payload
		}
	}()
	return ch
}

func expectPayload(t *testing.T, ch <-chan []byte, want []byte) {
	t.Helper()
	select {
	case got, ok := <-ch:
		require.True(t, ok, "connection closed before payload arrived")
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
	}
}

func expectSilence(t *testing.T, ch <-chan []byte) {
	t.Helper()
	select {
	case got, ok := <-ch:
		if ok {
			t.Fatalf("unexpected payload: %q", got)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	reg := NewRegistry()
	bc := NewBroadcaster(reg)

	sender, senderConn := newPipeClient(t)
	peer1, peer1Conn := newPipeClient(t)
	peer2, peer2Conn := newPipeClient(t)
	reg.Register(sender)
	reg.Register(peer1)
	reg.Register(peer2)

	senderCh := startReader(senderConn)
	peer1Ch := startReader(peer1Conn)
	peer2Ch := startReader(peer2Conn)

	payload := []byte(`{"type":"text","message":"hello"}`)
	bc.Broadcast(payload, sender.ID)

	expectPayload(t, peer1Ch, payload)
	expectPayload(t, peer2Ch, payload)
	expectSilence(t, senderCh)
}

func TestBroadcastWithoutExclusion(t *testing.T) {
	reg := NewRegistry()
	bc := NewBroadcaster(reg)

	c1, conn1 := newPipeClient(t)
	c2, conn2 := newPipeClient(t)
	reg.Register(c1)
	reg.Register(c2)

	ch1 := startReader(conn1)
	ch2 := startReader(conn2)

	payload := []byte("to everyone")
	bc.Broadcast(payload, "")

	expectPayload(t, ch1, payload)
	expectPayload(t, ch2, payload)
}

func TestBroadcastEvictsFailedClient(t *testing.T) {
	reg := NewRegistry()
	bc := NewBroadcaster(reg)

	healthy, healthyConn := newPipeClient(t)
	broken, brokenConn := newPipeClient(t)
	reg.Register(healthy)
	reg.Register(broken)

	healthyCh := startReader(healthyConn)
	brokenConn.Close()

	payload := []byte("still delivered")
	bc.Broadcast(payload, "")

	// the broken client is gone, the healthy one still got the payload
	expectPayload(t, healthyCh, payload)
	assert.Equal(t, 1, reg.Len())

	// a second broadcast is unaffected by the earlier eviction
	bc.Broadcast(payload, "")
	expectPayload(t, healthyCh, payload)
	assert.Equal(t, 1, reg.Len())
}
