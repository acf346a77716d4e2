// internal/server/client.go
package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"chatrelay/pkg/protocol"

	"github.com/google/uuid"
)

const writeTimeout = 10 * time.Second

// Client is one connected peer. Writes to the connection go through Send,
// which serializes concurrent broadcasters; the name is guarded separately
// because eviction paths read it from other goroutines.
type Client struct {
	ID   string
	conn net.Conn

	writeMu sync.Mutex

	nameMu sync.RWMutex
	name   string
}

func NewClient(conn net.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		name: defaultName(conn.RemoteAddr()),
	}
}

// defaultName derives a display name from the peer's ephemeral port, used
// until the client declares one.
func defaultName(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return fmt.Sprintf("Client_%d", tcp.Port)
	}
	return "Client_unknown"
}

func (c *Client) Name() string {
	c.nameMu.RLock()
	defer c.nameMu.RUnlock()
	return c.name
}

// SetName updates the display name; empty declarations are ignored.
func (c *Client) SetName(name string) {
	if name == "" {
		return
	}
	c.nameMu.Lock()
	c.name = name
	c.nameMu.Unlock()
}

// Send writes one payload to the connection under a write deadline.
func (c *Client) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := c.conn.Write(payload)
	return err
}

// SendFrame encodes and sends one protocol frame.
func (c *Client) SendFrame(f protocol.Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	return c.Send(data)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
