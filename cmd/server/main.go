package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/truongvq/kienquoc-backend/internal/config"
	"github.com/truongvq/kienquoc-backend/internal/room"
	"github.com/truongvq/kienquoc-backend/internal/server"
	"github.com/truongvq/kienquoc-backend/internal/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] No .env file loaded: %v", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("[main] Invalid configuration: %v", err)
	}

	store := room.NewStore()
	rooms := room.NewService(store)
	hub := ws.NewHub(rooms, ws.NewManager(), settings)

	srv := server.NewServer(settings, rooms, hub)
	log.Printf("[main] Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[main] Server stopped: %v", err)
	}
}
