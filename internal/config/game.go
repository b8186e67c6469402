package config

import "github.com/truongvq/kienquoc-backend/internal"

// Game balance parameters. These are static inputs to the engine, not
// environment configuration.
const (
	MaxTurns         = 8
	ResourcesPerTurn = 14
	NumTeams         = 5

	// Phase durations in seconds.
	PhaseEventDuration      = 15
	PhaseActionDuration     = 60
	PhaseResolutionDuration = 3
	PhaseResultDuration     = 15

	RoomCodeLength  = 6
	RoomCodeCharset = "0123456789"

	IndexMinimum             = 0
	IndexMaximum             = 30
	SurvivalWarningThreshold = 6
)

// PhaseDuration returns the time limit in seconds for a phase.
func PhaseDuration(phase internal.GamePhase) int {
	switch phase {
	case internal.PhaseEvent:
		return PhaseEventDuration
	case internal.PhaseAction:
		return PhaseActionDuration
	case internal.PhaseResolution:
		return PhaseResolutionDuration
	case internal.PhaseResult:
		return PhaseResultDuration
	}
	return PhaseEventDuration
}

// StartingIndices returns the indices every session begins with.
func StartingIndices() internal.NationalIndices {
	return internal.NationalIndices{
		Economy:     10,
		Society:     10,
		Culture:     10,
		Integration: 10,
		Environment: 10,
		Science:     10,
	}
}

// MaintenanceCost is subtracted from every index at the end of each turn.
func MaintenanceCost() map[string]int {
	return map[string]int{
		"economy":     1,
		"society":     1,
		"culture":     1,
		"integration": 1,
		"environment": 1,
		"science":     1,
	}
}
