package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/truongvq/kienquoc-backend/internal/config"
	"github.com/truongvq/kienquoc-backend/internal/room"
	"github.com/truongvq/kienquoc-backend/internal/ws"
)

type Server struct {
	settings config.Settings
	rooms    *room.Service
	hub      *ws.Hub
}

// NewServer assembles the HTTP server around a room service and a ws hub.
func NewServer(settings config.Settings, rooms *room.Service, hub *ws.Hub) *http.Server {
	s := &Server{
		settings: settings,
		rooms:    rooms,
		hub:      hub,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
	}
}
