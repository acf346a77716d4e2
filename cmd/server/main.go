// cmd/server/main.go
package main

import (
	"log"

	"chatrelay/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment and defaults")
	}

	cfg := server.NewConfigFromEnv()
	srv := server.NewServer(cfg)

	if err := srv.Start(); err != nil {
		log.Fatal("Server error: ", err)
	}
}
