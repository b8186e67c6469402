package ws

import (
	"log"
	"time"

	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/config"
	"github.com/truongvq/kienquoc-backend/internal/game"
	"github.com/truongvq/kienquoc-backend/internal/room"
)

// Hub wires the connection manager, the room registry, and the game engine
// together. One Hub serves every room in the process.
type Hub struct {
	rooms     *room.Service
	manager   *Manager
	settings  config.Settings
	projector Projector

	// sleep is swapped out in tests.
	sleep func(d time.Duration)
}

func NewHub(rooms *room.Service, manager *Manager, settings config.Settings) *Hub {
	return &Hub{
		rooms:     rooms,
		manager:   manager,
		settings:  settings,
		projector: StateProjector{},
		sleep:     time.Sleep,
	}
}

func (h *Hub) Manager() *Manager {
	return h.manager
}

func (h *Hub) sendError(client *Client, code, message string) {
	if err := client.SafeWriteJSON(internal.Message[internal.ErrorData]{
		Type: internal.MsgError,
		Data: internal.ErrorData{Code: code, Message: message},
	}); err != nil {
		log.Printf("[sendError] Failed for client %s: %v", client.ID, err)
	}
}

// =============================================================================
// AUTH
// =============================================================================

func (h *Hub) handleAuth(roomCode string, client *Client, data internal.AuthData) {
	valid := false
	switch data.Role {
	case internal.RoleHost:
		// The host authenticates with the process-level secret, not a
		// room-specific token.
		valid = data.Token == h.settings.HostSecret
	case internal.RolePlayer:
		valid = data.TeamID != "" && h.rooms.ValidateSessionToken(roomCode, data.TeamID, data.Token)
	case internal.RoleSpectator:
		valid = h.rooms.Store().Get(roomCode) != nil
	}

	if !valid {
		_ = client.SafeWriteJSON(internal.Message[internal.AuthFailedData]{
			Type: internal.MsgAuthFailed,
			Data: internal.AuthFailedData{Reason: "Invalid token"},
		})
		return
	}

	if err := h.manager.Authenticate(roomCode, client, data.Role, data.TeamID); err != nil {
		_ = client.SafeWriteJSON(internal.Message[internal.AuthFailedData]{
			Type: internal.MsgAuthFailed,
			Data: internal.AuthFailedData{Reason: err.Error()},
		})
		return
	}

	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	if data.Role == internal.RolePlayer {
		r.Mu.Lock()
		if team := r.FindTeam(data.TeamID); team != nil {
			team.IsConnected = true
		}
		r.Mu.Unlock()
	}

	_ = client.SafeWriteJSON(internal.Message[internal.AuthSuccessData]{
		Type: internal.MsgAuthSuccess,
		Data: internal.AuthSuccessData{Role: data.Role},
	})

	// Send the current state to the new connection, projected for its role.
	r.Mu.RLock()
	view := r.View()
	r.Mu.RUnlock()
	stateMsg := internal.Message[internal.RoomView]{Type: internal.MsgGameState, Data: view}
	if info, ok := h.manager.Info(roomCode, client); ok {
		if projected, keep := h.projector.Project(stateMsg, info); keep {
			_ = client.SafeWriteJSON(projected)
		}
	}

	if data.Role == internal.RolePlayer {
		h.manager.Broadcast(roomCode, internal.Message[internal.TeamEventData]{
			Type: internal.MsgTeamConnected,
			Data: internal.TeamEventData{TeamID: data.TeamID},
		}, client, nil)
	}

	log.Printf("[handleAuth][Room:%s] Client %s authenticated as %s", roomCode, client.ID, data.Role)
}

// =============================================================================
// PLAYER ACTIONS
// =============================================================================

func (h *Hub) handlePlaceResource(roomCode string, client *Client, data internal.PlaceResourceData) {
	info, ok := h.manager.Info(roomCode, client)
	if !ok || !info.Authenticated || info.Role != internal.RolePlayer {
		h.sendError(client, "UNAUTHORIZED", "Only players can place resources")
		return
	}
	if data.CellID == "" {
		h.sendError(client, "INVALID_CELL", "cell_id is required")
		return
	}

	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	r.Mu.Lock()
	err := game.PlaceResource(r, info.TeamID, data.CellID, data.Amount)
	r.Mu.Unlock()

	if err != nil {
		h.sendError(client, "PLACE_FAILED", err.Error())
		return
	}

	h.broadcastGameState(roomCode)
}

func (h *Hub) handleSubmitTurn(roomCode string, client *Client) {
	info, ok := h.manager.Info(roomCode, client)
	if !ok || !info.Authenticated || info.Role != internal.RolePlayer {
		return
	}

	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	r.Mu.Lock()
	err := game.SubmitTurn(r, info.TeamID)
	allSubmitted := err == nil && game.AllTeamsSubmitted(r)
	var phase internal.GamePhase
	var turn int
	if gs := r.Game; gs != nil {
		phase, turn = gs.CurrentPhase, gs.CurrentTurn
	}
	r.Mu.Unlock()

	if err != nil {
		h.sendError(client, "SUBMIT_FAILED", err.Error())
		return
	}

	h.manager.Broadcast(roomCode, internal.Message[internal.TeamEventData]{
		Type: internal.MsgTeamSubmitted,
		Data: internal.TeamEventData{TeamID: info.TeamID},
	}, nil, nil)

	if allSubmitted {
		// Advance only if nothing else (another submit, the timer, a host
		// skip) has advanced this exact phase in the meantime.
		h.advancePhase(roomCode, samePhaseCheck(phase, turn))
	}
}

// =============================================================================
// HOST ACTIONS
// =============================================================================

func (h *Hub) isHost(roomCode string, client *Client) bool {
	info, ok := h.manager.Info(roomCode, client)
	return ok && info.Authenticated && info.Role == internal.RoleHost
}

func (h *Hub) handleHostStart(roomCode string, client *Client) {
	if !h.isHost(roomCode, client) {
		h.sendError(client, "UNAUTHORIZED", "Only host can start game")
		return
	}

	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	r.Mu.Lock()
	err := game.StartGame(r)
	r.Mu.Unlock()

	if err != nil {
		h.sendError(client, "START_FAILED", err.Error())
		return
	}

	log.Printf("[handleHostStart][Room:%s] Game started", roomCode)
	h.broadcastGameState(roomCode)
	h.startPhaseTimer(roomCode)
}

func (h *Hub) handleHostPause(roomCode string, client *Client) {
	if !h.isHost(roomCode, client) {
		return
	}
	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}
	r.Mu.Lock()
	game.PauseGame(r)
	r.Mu.Unlock()
	h.broadcastGameState(roomCode)
}

func (h *Hub) handleHostResume(roomCode string, client *Client) {
	if !h.isHost(roomCode, client) {
		return
	}
	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}
	r.Mu.Lock()
	game.ResumeGame(r)
	r.Mu.Unlock()
	h.broadcastGameState(roomCode)
	h.startPhaseTimer(roomCode)
}

func (h *Hub) handleHostSkip(roomCode string, client *Client) {
	if !h.isHost(roomCode, client) {
		return
	}
	h.advancePhase(roomCode, nil)
}

func (h *Hub) handleHostEnd(roomCode string, client *Client) {
	if !h.isHost(roomCode, client) {
		return
	}
	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	r.Mu.Lock()
	r.Status = internal.StatusFinished
	over := game.GameOver(r)
	if over.FailedIndex == "" {
		over.Reason = internal.ReasonHostEnded
	}
	r.Mu.Unlock()

	h.manager.Broadcast(roomCode, internal.Message[internal.GameOverResult]{
		Type: internal.MsgGameOver,
		Data: over,
	}, nil, nil)
}

// =============================================================================
// SHARED ADVANCE PATH
// =============================================================================

// samePhaseCheck guards an advance against a phase that already moved on.
func samePhaseCheck(phase internal.GamePhase, turn int) func(*internal.Room) bool {
	return func(r *internal.Room) bool {
		gs := r.Game
		return gs != nil && gs.CurrentPhase == phase && gs.CurrentTurn == turn
	}
}

// advancePhase runs the one shared phase-advance path used by submissions,
// host skips, and the phase timer. check, when non-nil, runs under the room
// lock right before the transition and aborts the advance when it returns
// false — that is the timer's staleness test, and it also collapses racing
// manual advances into exactly one transition.
func (h *Hub) advancePhase(roomCode string, check func(*internal.Room) bool) {
	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	r.Mu.Lock()
	if check != nil && !check(r) {
		r.Mu.Unlock()
		return
	}
	newPhase, result, err := game.AdvancePhase(r)
	if err != nil {
		r.Mu.Unlock()
		return
	}
	finished := r.Status == internal.StatusFinished
	var over internal.GameOverResult
	var view internal.RoomView
	if finished {
		over = game.GameOver(r)
	} else {
		view = r.View()
	}
	r.Mu.Unlock()

	if result != nil {
		h.manager.Broadcast(roomCode, internal.Message[*internal.TurnResult]{
			Type: internal.MsgTurnResult,
			Data: result,
		}, nil, nil)
	}

	if finished {
		h.manager.Broadcast(roomCode, internal.Message[internal.GameOverResult]{
			Type: internal.MsgGameOver,
			Data: over,
		}, nil, nil)
		return
	}

	log.Printf("[advancePhase][Room:%s] Phase is now %s", roomCode, newPhase)
	h.manager.Broadcast(roomCode, internal.Message[internal.RoomView]{
		Type: internal.MsgGameState,
		Data: view,
	}, nil, h.projector)
	h.startPhaseTimer(roomCode)
}

// broadcastGameState sends a projected snapshot to everyone in the room.
func (h *Hub) broadcastGameState(roomCode string) {
	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}
	r.Mu.RLock()
	view := r.View()
	r.Mu.RUnlock()

	h.manager.Broadcast(roomCode, internal.Message[internal.RoomView]{
		Type: internal.MsgGameState,
		Data: view,
	}, nil, h.projector)
}

// handleDisconnect releases the connection's bindings and flags its team.
func (h *Hub) handleDisconnect(roomCode string, client *Client) {
	info := h.manager.Unregister(roomCode, client)
	if info == nil || info.TeamID == "" {
		return
	}

	r := h.rooms.Store().Get(roomCode)
	if r != nil {
		r.Mu.Lock()
		if team := r.FindTeam(info.TeamID); team != nil {
			team.IsConnected = false
		}
		r.Mu.Unlock()
	}

	h.manager.Broadcast(roomCode, internal.Message[internal.TeamEventData]{
		Type: internal.MsgTeamDisconnected,
		Data: internal.TeamEventData{TeamID: info.TeamID},
	}, nil, nil)

	log.Printf("[handleDisconnect][Room:%s] Team %s disconnected", roomCode, info.TeamID)
}
