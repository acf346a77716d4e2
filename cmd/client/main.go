// cmd/client/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"chatrelay/internal/client/models"
	"chatrelay/internal/client/network"
	"chatrelay/internal/client/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

var p *tea.Program

func main() {
	logFile, err := os.OpenFile("client.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal("Error opening log file: ", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment and defaults")
	}

	defaultAddr := net.JoinHostPort(envOr("SERVER_HOST", "localhost"), envOr("SERVER_PORT", "8888"))
	addr := flag.String("addr", defaultAddr, "server address")
	name := flag.String("name", "", "display name (defaults to one derived from the connection)")
	flag.Parse()

	conn, err := network.Dial(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot connect to %s: %v\n", *addr, err)
		os.Exit(1)
	}

	clientName := *name
	if clientName == "" {
		if tcp, ok := conn.LocalAddr().(*net.TCPAddr); ok {
			clientName = fmt.Sprintf("Client_%d", tcp.Port)
		}
	}

	handler := network.NewHandler(conn, clientName)

	handler.SetTextHandler(func(message string) {
		if p != nil {
			p.Send(models.IncomingText{Message: message})
		}
	})
	handler.SetASCIIHandler(func(art string) {
		if p != nil {
			p.Send(models.ASCIIResult{Art: art})
		}
	})
	handler.SetDocxStatusHandler(func(status string) {
		if p != nil {
			p.Send(models.DocxStatus{Message: status})
		}
	})
	handler.SetRawHandler(func(data []byte) {
		if p != nil {
			p.Send(models.RawResponse{Data: data})
		}
	})
	handler.SetErrorHandler(func(err error) {
		log.Printf("Connection error: %v", err)
		if p != nil {
			p.Send(models.ConnectionLost{Err: err})
		}
	})

	handler.Start()
	defer handler.Close()

	model := tui.NewModel(handler)
	p = tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatal("Error running program: ", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
