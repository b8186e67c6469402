package ws

import (
	"time"

	"github.com/truongvq/kienquoc-backend/internal"
)

// =============================================================================
// PHASE TIMER
// =============================================================================

// startPhaseTimer schedules the automatic advance for the phase the room is
// in right now. There is no cancellation: the goroutine carries a snapshot of
// (phase, turn) and re-checks it under the room lock when it fires, so a
// timer made stale by submissions or a host skip is a no-op. Racing against a
// concurrent manual advance is safe for the same reason — the staleness check
// and the transition run inside one critical section.
func (h *Hub) startPhaseTimer(roomCode string) {
	r := h.rooms.Store().Get(roomCode)
	if r == nil {
		return
	}

	r.Mu.RLock()
	gs := r.Game
	if gs == nil {
		r.Mu.RUnlock()
		return
	}
	phase := gs.CurrentPhase
	turn := gs.CurrentTurn
	limit := gs.PhaseTimeLimit
	r.Mu.RUnlock()

	go func() {
		h.sleep(time.Duration(limit) * time.Second)
		h.advancePhase(roomCode, timerCheck(phase, turn))
	}()
}

// timerCheck is the staleness test run under the room lock at fire time.
func timerCheck(phase internal.GamePhase, turn int) func(*internal.Room) bool {
	return func(r *internal.Room) bool {
		gs := r.Game
		if gs == nil {
			return false
		}
		if gs.CurrentPhase != phase || gs.CurrentTurn != turn {
			return false // already advanced by submissions or a host skip
		}
		if gs.IsPaused {
			return false
		}
		return r.Status == internal.StatusPlaying
	}
}
