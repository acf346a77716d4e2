// internal/server/handler.go
package server

import (
	"fmt"
	"io"
	"log"
	"net"

	"chatrelay/internal/ascii"
	"chatrelay/internal/docx"
	"chatrelay/pkg/protocol"
)

// defaultASCIIWidth applies when an image_to_ascii request carries no
// usable width, matching the behavior existing clients rely on.
const defaultASCIIWidth = 60

// Handler runs the per-connection read loop and dispatches decoded frames.
// Per-frame failures (bad base64, unreadable image or document, storage
// errors) become replies to the requesting client; only socket-level errors
// end the loop.
type Handler struct {
	registry  *Registry
	broadcast *Broadcaster
	store     *docx.Store
	maxFrame  int
}

func NewHandler(registry *Registry, broadcast *Broadcaster, store *docx.Store, maxFrame int) *Handler {
	return &Handler{
		registry:  registry,
		broadcast: broadcast,
		store:     store,
		maxFrame:  maxFrame,
	}
}

// Handle owns conn until the peer disconnects. It registers the client,
// reads one frame per Read call, and guarantees deregistration and socket
// close on exit.
func (h *Handler) Handle(conn net.Conn) {
	client := NewClient(conn)
	h.registry.Register(client)
	log.Printf("Client connected: %s (%s)", client.Name(), conn.RemoteAddr())

	defer func() {
		h.registry.Unregister(client.ID)
		conn.Close()
		log.Printf("Client disconnected: %s", client.Name())
	}()

	buf := make([]byte, h.maxFrame)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err != io.EOF {
				log.Printf("Read error from %s: %v", client.Name(), err)
			}
			return
		}
		if n == 0 {
			return
		}

		frame := make([]byte, n)
		copy(frame, buf[:n])

		msg := protocol.DecodeFrame(frame)
		client.SetName(msg.SenderName)

		switch msg.Type {
		case protocol.TypeText:
			h.handleText(client, msg)
		case protocol.TypeImageToASCII:
			h.handleImage(client, msg)
		case protocol.TypeDocxFile:
			h.handleDocx(client, msg)
		default:
			h.handleRaw(client, msg)
		}
	}
}

// handleText relays the message to everyone else; the sender gets no copy.
func (h *Handler) handleText(c *Client, msg protocol.Message) {
	log.Printf("Received from %s: %s", c.Name(), msg.Body)
	relay := protocol.NewTextMessage(fmt.Sprintf("%s: %s", c.Name(), msg.Body))
	h.broadcast.BroadcastFrame(relay, c.ID)
}

// handleImage renders the image and replies to the sender only. Conversion
// failures travel back as the art payload itself.
func (h *Handler) handleImage(c *Client, msg protocol.Message) {
	width := msg.Width
	if width < 1 {
		width = defaultASCIIWidth
	}

	art := renderImage(msg.ImageData, width)
	log.Printf("Image conversion request from %s (width %d)", c.Name(), width)

	if err := c.SendFrame(protocol.NewASCIIResponse(art)); err != nil {
		log.Printf("Failed to reply to %s: %v", c.Name(), err)
	}
}

func renderImage(imageData string, width int) string {
	data, err := protocol.DecodeBinaryField(imageData)
	if err != nil {
		return fmt.Sprintf("Conversion failed: %v", err)
	}
	art, err := ascii.Render(data, width)
	if err != nil {
		return fmt.Sprintf("Conversion failed: %v", err)
	}
	return art
}

// handleDocx extracts and stores the document. The sender always gets a
// status reply; the rest of the room hears about it only on success.
func (h *Handler) handleDocx(c *Client, msg protocol.Message) {
	log.Printf("Document upload from %s: %s", c.Name(), msg.FileName)

	data, err := protocol.DecodeBinaryField(msg.FileData)
	if err != nil {
		h.replyDocxError(c, err)
		return
	}

	text, err := docx.ExtractText(data)
	if err != nil {
		h.replyDocxError(c, err)
		return
	}

	path, err := h.store.Save(data, msg.FileName, c.Name())
	if err != nil {
		h.replyDocxError(c, err)
		return
	}

	status := fmt.Sprintf("File %s stored as %s", msg.FileName, path)
	if err := c.SendFrame(protocol.NewDocxResponse(status)); err != nil {
		log.Printf("Failed to reply to %s: %v", c.Name(), err)
	}

	notice := fmt.Sprintf("%s uploaded file %s", c.Name(), msg.FileName)
	h.broadcast.BroadcastFrame(protocol.NewTextMessage(notice), c.ID)

	full := fmt.Sprintf("Content of %s:\n%s", msg.FileName, text)
	h.broadcast.BroadcastFrame(protocol.NewTextMessage(full), c.ID)
}

func (h *Handler) replyDocxError(c *Client, cause error) {
	status := fmt.Sprintf("Upload failed: %v", cause)
	if err := c.SendFrame(protocol.NewDocxResponse(status)); err != nil {
		log.Printf("Failed to reply to %s: %v", c.Name(), err)
	}
}

// handleRaw echoes a non-protocol frame back unchanged. Deliberate
// compatibility behavior for plain-text peers, not an error path.
func (h *Handler) handleRaw(c *Client, msg protocol.Message) {
	log.Printf("Received raw frame from %s (%d bytes)", c.Name(), len(msg.Raw))
	if err := c.Send(msg.Raw); err != nil {
		log.Printf("Failed to echo to %s: %v", c.Name(), err)
	}
}
