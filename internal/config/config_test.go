package config

import (
	"strings"
	"testing"

	"github.com/truongvq/kienquoc-backend/internal"
)

func TestRegularCellsExcludeProject(t *testing.T) {
	cells := RegularCells()
	if len(cells) != 12 {
		t.Fatalf("expected 12 regular cells, got %d", len(cells))
	}
	for pos, cfg := range cells {
		if cfg.Type == internal.CellProject {
			t.Fatalf("project cell leaked into regular cells at %v", pos)
		}
	}
	for _, pos := range ProjectCells {
		if _, found := cells[pos]; found {
			t.Fatalf("project position %v must not be a regular cell", pos)
		}
	}
}

func TestCellID(t *testing.T) {
	if got := CellID(CellPosition{Row: 2, Col: 3}); got != "cell-2-3" {
		t.Fatalf("expected cell-2-3, got %s", got)
	}
}

func TestEventByTurnCoversEveryTurn(t *testing.T) {
	for turn := 1; turn <= MaxTurns; turn++ {
		event := EventByTurn(turn)
		if event == nil {
			t.Fatalf("missing event for turn %d", turn)
		}
		if event.Turn != turn {
			t.Fatalf("event for turn %d reports turn %d", turn, event.Turn)
		}
		if event.MinTotal <= 0 || event.MinTeams <= 0 {
			t.Fatalf("turn %d has no project thresholds", turn)
		}
		if _, ok := event.SuccessReward["points"]; !ok {
			t.Fatalf("turn %d has no flat points bonus", turn)
		}
	}
	if EventByTurn(MaxTurns+1) != nil {
		t.Fatalf("expected nil past the final turn")
	}
	if EventByTurn(0) != nil {
		t.Fatalf("expected nil for turn 0")
	}
}

func TestEventByTurnReturnsCopies(t *testing.T) {
	event := EventByTurn(1)
	event.SuccessReward["economy"] = 999
	event.FailurePenalty["economy"] = -999

	fresh := EventByTurn(1)
	if fresh.SuccessReward["economy"] == 999 || fresh.FailurePenalty["economy"] == -999 {
		t.Fatalf("mutating a returned event must not affect the shared table")
	}
}

func TestPhaseDurations(t *testing.T) {
	tests := []struct {
		phase internal.GamePhase
		want  int
	}{
		{internal.PhaseEvent, PhaseEventDuration},
		{internal.PhaseAction, PhaseActionDuration},
		{internal.PhaseResolution, PhaseResolutionDuration},
		{internal.PhaseResult, PhaseResultDuration},
	}
	for _, tt := range tests {
		if got := PhaseDuration(tt.phase); got != tt.want {
			t.Fatalf("phase %s: expected %d, got %d", tt.phase, tt.want, got)
		}
	}
}

func TestStartingIndicesAreUniform(t *testing.T) {
	indices := StartingIndices()
	for _, key := range internal.IndexKeys {
		if indices.Get(key) != 10 {
			t.Fatalf("expected %s to start at 10, got %d", key, indices.Get(key))
		}
	}
}

func TestMaintenanceCostCoversAllIndices(t *testing.T) {
	cost := MaintenanceCost()
	if len(cost) != len(internal.IndexKeys) {
		t.Fatalf("expected a cost per index, got %d", len(cost))
	}
	for _, key := range internal.IndexKeys {
		if cost[key] != 1 {
			t.Fatalf("expected cost 1 for %s, got %d", key, cost[key])
		}
	}
}

func TestRegionByIndex(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < NumTeams; i++ {
		region, ok := RegionByIndex(i)
		if !ok {
			t.Fatalf("missing region for index %d", i)
		}
		if seen[region.ID] {
			t.Fatalf("region %s assigned twice", region.ID)
		}
		seen[region.ID] = true
	}
	if _, ok := RegionByIndex(NumTeams); ok {
		t.Fatalf("expected no region past the team count")
	}
	if _, ok := RegionByIndex(-1); ok {
		t.Fatalf("expected no region for a negative index")
	}
}

func TestBoardCellIndicesAreValidKeys(t *testing.T) {
	valid := make(map[string]bool, len(internal.IndexKeys))
	for _, key := range internal.IndexKeys {
		valid[key] = true
	}
	for pos, cfg := range RegularCells() {
		for _, key := range cfg.Indices {
			if !valid[key] {
				t.Fatalf("cell at %v references unknown index %q", pos, key)
			}
		}
		if strings.TrimSpace(cfg.Name) == "" {
			t.Fatalf("cell at %v has no name", pos)
		}
	}
}
