// internal/server/server.go

// Package server implements the broadcast relay: a TCP accept loop, the
// client registry, the broadcast engine, and the per-connection dispatcher
// for text relay, image-to-ASCII conversion, and document ingestion.
package server

import (
	"errors"
	"fmt"
	"log"
	"net"

	"chatrelay/internal/docx"
	"chatrelay/pkg/protocol"
)

type Server struct {
	cfg       *Config
	registry  *Registry
	broadcast *Broadcaster
	handler   *Handler
}

func NewServer(cfg *Config) *Server {
	registry := NewRegistry()
	broadcast := NewBroadcaster(registry)
	store := docx.NewStore(cfg.StorageDir, nil)

	return &Server{
		cfg:       cfg,
		registry:  registry,
		broadcast: broadcast,
		handler:   NewHandler(registry, broadcast, store, cfg.MaxFrameSize),
	}
}

// Start binds the configured address and serves until the listener fails.
// An unbindable port is the only startup failure mode.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr(), err)
	}
	defer listener.Close()

	log.Printf("Server listening on %s", listener.Addr())
	return s.Serve(listener)
}

// Serve accepts connections until the listener closes, spawning one handler
// goroutine per connection. A failure on one connection never reaches the
// accept loop or any other connection.
func (s *Server) Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		if s.cfg.MaxClients > 0 && s.registry.Len() >= s.cfg.MaxClients {
			log.Printf("Connection limit reached (%d), rejecting %s",
				s.cfg.MaxClients, conn.RemoteAddr())
			if payload, err := protocol.NewTextMessage("server full, try again later").Encode(); err == nil {
				conn.Write(payload)
			}
			conn.Close()
			continue
		}

		go s.handler.Handle(conn)
	}
}
