package ws

import (
	"testing"
	"time"

	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/game"
)

// fireOnce hands one token to a blocked timer goroutine and waits for the
// handoff; the unbuffered channel makes the send itself the synchronization.
func fireOnce(t *testing.T, fire chan struct{}) {
	t.Helper()
	select {
	case fire <- struct{}{}:
	case <-time.After(2 * time.Second):
		t.Fatalf("no timer goroutine was waiting")
	}
}

func TestPhaseTimerAdvancesExpiredPhase(t *testing.T) {
	hub, rooms, fire := newTestHub(t)
	r := createTestRoom(t, rooms)

	host, _ := connectHost(t, hub, r.Code)
	connectPlayer(t, hub, r, 0)
	connectPlayer(t, hub, r, 1)
	connectPlayer(t, hub, r, 2)
	hub.handleHostStart(r.Code, host)

	fireOnce(t, fire)

	eventually(t, func() bool {
		phase, _ := currentPhase(r)
		return phase == internal.PhaseAction
	}, "timer should advance event phase to action")
}

func TestStaleTimerIsNoOp(t *testing.T) {
	hub, rooms, fire := newTestHub(t)
	r := createTestRoom(t, rooms)

	host, _ := connectHost(t, hub, r.Code)
	connectPlayer(t, hub, r, 0)
	connectPlayer(t, hub, r, 1)
	connectPlayer(t, hub, r, 2)
	hub.handleHostStart(r.Code, host)

	// Advance through the engine directly so the armed event-phase timer goes
	// stale without a second timer being armed.
	r.Mu.Lock()
	_, _, err := game.AdvancePhase(r)
	r.Mu.Unlock()
	if err != nil {
		t.Fatalf("AdvancePhase failed: %v", err)
	}
	if phase, _ := currentPhase(r); phase != internal.PhaseAction {
		t.Fatalf("expected action phase, got %s", phase)
	}

	// Release the stale timer; its check must reject the advance.
	fireOnce(t, fire)
	time.Sleep(50 * time.Millisecond)

	if phase, turn := currentPhase(r); phase != internal.PhaseAction || turn != 1 {
		t.Fatalf("stale timer must not advance the phase, got %s/%d", phase, turn)
	}
}

func TestTimerDoesNotFireWhilePaused(t *testing.T) {
	hub, rooms, fire := newTestHub(t)
	r := createTestRoom(t, rooms)

	host, _ := connectHost(t, hub, r.Code)
	connectPlayer(t, hub, r, 0)
	connectPlayer(t, hub, r, 1)
	connectPlayer(t, hub, r, 2)
	hub.handleHostStart(r.Code, host)
	hub.handleHostPause(r.Code, host)

	fireOnce(t, fire)
	time.Sleep(50 * time.Millisecond)

	if phase, _ := currentPhase(r); phase != internal.PhaseEvent {
		t.Fatalf("timer must not advance a paused game, got %s", phase)
	}
}

func TestTimerCheckRejectsFinishedRoom(t *testing.T) {
	room := &internal.Room{
		Status: internal.StatusFinished,
		Game: &internal.GameState{
			CurrentTurn:  1,
			CurrentPhase: internal.PhaseEvent,
		},
	}
	if timerCheck(internal.PhaseEvent, 1)(room) {
		t.Fatalf("timer check must reject a finished room")
	}

	room.Status = internal.StatusPlaying
	if !timerCheck(internal.PhaseEvent, 1)(room) {
		t.Fatalf("timer check must accept a matching live phase")
	}
	if timerCheck(internal.PhaseEvent, 2)(room) {
		t.Fatalf("timer check must reject a different turn")
	}
	if timerCheck(internal.PhaseAction, 1)(room) {
		t.Fatalf("timer check must reject a different phase")
	}

	room.Game = nil
	if timerCheck(internal.PhaseEvent, 1)(room) {
		t.Fatalf("timer check must reject a room without game state")
	}
}
