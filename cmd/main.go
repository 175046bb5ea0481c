package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/farellandr/melaka-tickets/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file loaded, using the process environment: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
