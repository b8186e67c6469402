package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/room"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/rooms", s.CreateRoomHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/rooms/{roomCode}", s.GetRoomHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/rooms/{roomCode}", s.DeleteRoomHandler).Methods(http.MethodDelete, http.MethodOptions)

	r.HandleFunc("/ws/{roomCode}", s.hub.HandleWebSocket)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Host-Token")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createRoomRequest struct {
	HostName string `json:"host_name"`
}

type createRoomResponse struct {
	RoomCode  string `json:"room_code"`
	HostToken string `json:"host_token"`
}

func (s *Server) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.HostName = strings.TrimSpace(req.HostName)
	if req.HostName == "" || len(req.HostName) > 50 {
		writeError(w, http.StatusBadRequest, "host_name must be 1-50 characters")
		return
	}

	created, err := s.rooms.CreateRoom(req.HostName)
	if err != nil {
		log.Printf("[CreateRoomHandler] Failed to create room: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create room")
		return
	}

	log.Printf("[CreateRoomHandler] Created room %s for host %q", created.Code, req.HostName)
	writeJSON(w, http.StatusCreated, createRoomResponse{
		RoomCode:  created.Code,
		HostToken: created.HostToken,
	})
}

// teamPublic is the team shape exposed over REST: no tokens, no placements.
type teamPublic struct {
	Id           string          `json:"id"`
	Index        int             `json:"index"`
	Name         string          `json:"name"`
	Region       internal.Region `json:"region"`
	Score        int             `json:"score"`
	HasSubmitted bool            `json:"has_submitted"`
	IsConnected  bool            `json:"is_connected"`
}

type roomInfoResponse struct {
	RoomCode  string              `json:"room_code"`
	Status    internal.RoomStatus `json:"status"`
	HostName  string              `json:"host_name"`
	Teams     []teamPublic        `json:"teams"`
	CreatedAt time.Time           `json:"created_at"`
}

func (s *Server) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["roomCode"]

	found, err := s.rooms.GetRoom(code)
	if err != nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	found.Mu.RLock()
	resp := roomInfoResponse{
		RoomCode:  found.Code,
		Status:    found.Status,
		HostName:  found.HostName,
		Teams:     make([]teamPublic, 0, len(found.Teams)),
		CreatedAt: found.CreatedAt,
	}
	for _, t := range found.Teams {
		resp.Teams = append(resp.Teams, teamPublic{
			Id:           t.Id,
			Index:        t.Index,
			Name:         t.Name,
			Region:       t.Region,
			Score:        t.Score,
			HasSubmitted: t.HasSubmitted,
			IsConnected:  t.IsConnected,
		})
	}
	found.Mu.RUnlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["roomCode"]
	token := r.Header.Get("X-Host-Token")

	err := s.rooms.DeleteRoom(code, token)
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, room.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "invalid host token")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "could not delete room")
	default:
		s.hub.Manager().ClearRoom(code)
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[writeJSON] Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
