// internal/client/network/handler.go
package network

import (
	"encoding/json"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chatrelay/pkg/protocol"
)

const readBufferSize = 1 << 20

// Handler owns the client side of the connection: a read loop that
// classifies server frames into callbacks and a write loop fed by a send
// channel.
type Handler struct {
	conn     net.Conn
	sendChan chan protocol.Frame
	done     chan struct{}

	closeOnce sync.Once

	mu   sync.RWMutex
	name string

	onText       func(string)
	onASCII      func(string)
	onDocxStatus func(string)
	onRaw        func([]byte)
	onError      func(error)
}

func NewHandler(conn net.Conn, name string) *Handler {
	return &Handler{
		conn:     conn,
		sendChan: make(chan protocol.Frame, 100),
		done:     make(chan struct{}),
		name:     name,
	}
}

func (h *Handler) SetTextHandler(fn func(string))       { h.onText = fn }
func (h *Handler) SetASCIIHandler(fn func(string))      { h.onASCII = fn }
func (h *Handler) SetDocxStatusHandler(fn func(string)) { h.onDocxStatus = fn }
func (h *Handler) SetRawHandler(fn func([]byte))        { h.onRaw = fn }
func (h *Handler) SetErrorHandler(fn func(error))       { h.onError = fn }

// Start launches the read and write loops. Set callbacks before calling.
func (h *Handler) Start() {
	go h.readLoop()
	go h.writeLoop()
}

func (h *Handler) Name() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.name
}

func (h *Handler) SetName(name string) {
	h.mu.Lock()
	h.name = name
	h.mu.Unlock()
}

// SendText relays a chat line to everyone else in the room.
func (h *Handler) SendText(message string) {
	h.enqueue(protocol.NewTextRequest(message, h.Name()))
}

// SendImageRequest reads the image at path and asks the server to render it
// width columns wide.
func (h *Handler) SendImageRequest(path string, width int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	h.enqueue(protocol.NewImageRequest(protocol.EncodeBinaryField(data), width, h.Name()))
	return nil
}

// SendDocxFile uploads the document at path for extraction and storage.
func (h *Handler) SendDocxFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	h.enqueue(protocol.NewDocxRequest(protocol.EncodeBinaryField(data), filepath.Base(path), h.Name()))
	return nil
}

func (h *Handler) enqueue(f protocol.Frame) {
	select {
	case h.sendChan <- f:
	case <-h.done:
	}
}

func (h *Handler) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.conn.Close()
	})
}

func (h *Handler) readLoop() {
	buf := make([]byte, readBufferSize)
	for {
		n, err := h.conn.Read(buf)
		if err != nil {
			select {
			case <-h.done:
			default:
				if h.onError != nil {
					h.onError(err)
				}
			}
			return
		}
		if n == 0 {
			continue
		}

		frame := make([]byte, n)
		copy(frame, buf[:n])
		h.handleFrame(frame)
	}
}

func (h *Handler) handleFrame(frame []byte) {
	var f protocol.Frame
	if err := json.Unmarshal(frame, &f); err != nil {
		if h.onRaw != nil {
			h.onRaw(frame)
		}
		return
	}

	switch f.Type {
	case protocol.TypeText:
		if h.onText != nil {
			h.onText(f.Message)
		}
	case protocol.TypeASCIIResponse:
		if h.onASCII != nil {
			h.onASCII(f.Data)
		}
	case protocol.TypeDocxResponse:
		if h.onDocxStatus != nil {
			h.onDocxStatus(f.Message)
		}
	default:
		if h.onRaw != nil {
			h.onRaw(frame)
		}
	}
}

func (h *Handler) writeLoop() {
	for {
		select {
		case <-h.done:
			return
		case f := <-h.sendChan:
			data, err := f.Encode()
			if err != nil {
				log.Printf("Encode error: %v", err)
				continue
			}
			h.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if _, err := h.conn.Write(data); err != nil {
				if h.onError != nil {
					h.onError(err)
				}
				return
			}
		}
	}
}
