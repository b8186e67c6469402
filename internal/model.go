package internal

import (
	"sync"
	"time"
)

// =============================================================================
// ENUMS
// =============================================================================

type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusPaused   RoomStatus = "paused"
	StatusFinished RoomStatus = "finished"
)

type GamePhase string

const (
	PhaseEvent      GamePhase = "event"
	PhaseAction     GamePhase = "action"
	PhaseResolution GamePhase = "resolution"
	PhaseResult     GamePhase = "result"
)

type ClientRole string

const (
	RoleHost      ClientRole = "host"
	RolePlayer    ClientRole = "player"
	RoleSpectator ClientRole = "spectator"
)

type CellType string

const (
	CellCompetitive CellType = "competitive"
	CellSynergy     CellType = "synergy"
	CellShared      CellType = "shared"
	CellCooperation CellType = "cooperation"
	CellProject     CellType = "project"
)

type ProjectOutcome string

const (
	ProjectPending ProjectOutcome = "pending"
	ProjectSuccess ProjectOutcome = "success"
	ProjectFailure ProjectOutcome = "failure"
)

// Game over reasons.
const (
	ReasonCompleted = "completed"
	ReasonIndexZero = "index_zero"
	ReasonHostEnded = "host_ended"
)

// =============================================================================
// REGIONS & TEAMS
// =============================================================================

type Region struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Placement is one team allocation onto a single cell for the current turn.
type Placement struct {
	CellID string `json:"cell_id"`
	Amount int    `json:"amount"`
}

type Team struct {
	Id           string      `json:"id"`
	Index        int         `json:"index"` // 0-4, fixed display position
	Name         string      `json:"name"`
	Region       Region      `json:"region"`
	SessionToken string      `json:"-"` // never serialized
	Score        int         `json:"score"`
	Resources    int         `json:"resources"`
	Placements   []Placement `json:"placements"`
	HasSubmitted bool        `json:"has_submitted"`
	IsConnected  bool        `json:"is_connected"`
}

// =============================================================================
// NATIONAL INDICES
// =============================================================================

type NationalIndices struct {
	Economy     int `json:"economy"`
	Society     int `json:"society"`
	Culture     int `json:"culture"`
	Integration int `json:"integration"`
	Environment int `json:"environment"`
	Science     int `json:"science"`
}

// IndexKeys is the canonical iteration order for the six indices.
var IndexKeys = []string{"economy", "society", "culture", "integration", "environment", "science"}

func (n *NationalIndices) Get(key string) int {
	switch key {
	case "economy":
		return n.Economy
	case "society":
		return n.Society
	case "culture":
		return n.Culture
	case "integration":
		return n.Integration
	case "environment":
		return n.Environment
	case "science":
		return n.Science
	}
	return 0
}

func (n *NationalIndices) set(key string, value int) {
	switch key {
	case "economy":
		n.Economy = value
	case "society":
		n.Society = value
	case "culture":
		n.Culture = value
	case "integration":
		n.Integration = value
	case "environment":
		n.Environment = value
	case "science":
		n.Science = value
	}
}

// ApplyChanges adds the given deltas, clamping every index to [0, maxVal].
// Keys that are not index names (such as the "points" entry on event rewards)
// are ignored.
func (n *NationalIndices) ApplyChanges(changes map[string]int, maxVal int) {
	for _, key := range IndexKeys {
		delta, ok := changes[key]
		if !ok {
			continue
		}
		next := n.Get(key) + delta
		if next < 0 {
			next = 0
		}
		if next > maxVal {
			next = maxVal
		}
		n.set(key, next)
	}
}

func (n *NationalIndices) AnyZero() bool {
	return n.ZeroIndex() != ""
}

// ZeroIndex returns the first index at or below zero, or "" if none.
func (n *NationalIndices) ZeroIndex() string {
	for _, key := range IndexKeys {
		if n.Get(key) <= 0 {
			return key
		}
	}
	return ""
}

// =============================================================================
// EVENTS & BOARD
// =============================================================================

type TurnEvent struct {
	Turn           int            `json:"turn"`
	Year           int            `json:"year"`
	Name           string         `json:"name"`
	Project        string         `json:"project"`
	MinTotal       int            `json:"min_total"`
	MinTeams       int            `json:"min_teams"`
	SuccessReward  map[string]int `json:"success_reward"`
	FailurePenalty map[string]int `json:"failure_penalty"`
}

type CellPlacement struct {
	TeamID string `json:"team_id"`
	Amount int    `json:"amount"`
}

type BoardCell struct {
	Id         string          `json:"id"`
	Row        int             `json:"row"`
	Col        int             `json:"col"`
	Type       CellType        `json:"type"`
	Name       string          `json:"name"`
	Indices    []string        `json:"indices"`
	Placements []CellPlacement `json:"placements"`
}

type ProjectContribution struct {
	TeamID string `json:"team_id"`
	Amount int    `json:"amount"`
}

type ProjectStatus struct {
	TotalContributed int                   `json:"total_contributed"`
	Contributions    []ProjectContribution `json:"contributing_teams"`
	MinTotal         int                   `json:"min_total"`
	MinTeams         int                   `json:"min_teams"`
	Status           ProjectOutcome        `json:"status"`
}

// =============================================================================
// GAME STATE & ROOM
// =============================================================================

type GameState struct {
	CurrentTurn    int             `json:"current_turn"`
	CurrentPhase   GamePhase       `json:"current_phase"`
	PhaseStartTime time.Time       `json:"phase_start_time"`
	PhaseTimeLimit int             `json:"phase_time_limit"` // seconds
	IsPaused       bool            `json:"is_paused"`
	Indices        NationalIndices `json:"national_indices"`
	CurrentEvent   *TurnEvent      `json:"current_event"`
	Project        *ProjectStatus  `json:"project_status"`
	Board          []BoardCell     `json:"board"`
}

// Room is one running session with 5 pre-created teams. Game stays nil until
// the host starts the session; a non-nil Game is the single "session started"
// signal everywhere.
type Room struct {
	Code      string     `json:"code"`
	HostName  string     `json:"host_name"`
	HostToken string     `json:"-"` // never serialized
	Status    RoomStatus `json:"status"`
	Teams     []*Team    `json:"teams"` // always 5, fixed at creation
	Game      *GameState `json:"game_state"`
	CreatedAt time.Time  `json:"created_at"`

	Mu sync.RWMutex `json:"-"`
}

// FindTeam returns the team with the given id, or nil. Caller holds Mu.
func (r *Room) FindTeam(teamID string) *Team {
	for _, t := range r.Teams {
		if t.Id == teamID {
			return t
		}
	}
	return nil
}

// TeamByIndex returns the team at display index 0-4, or nil. Caller holds Mu.
func (r *Room) TeamByIndex(index int) *Team {
	for _, t := range r.Teams {
		if t.Index == index {
			return t
		}
	}
	return nil
}

// ConnectedTeamCount counts currently connected teams. Caller holds Mu.
func (r *Room) ConnectedTeamCount() int {
	count := 0
	for _, t := range r.Teams {
		if t.IsConnected {
			count++
		}
	}
	return count
}

// =============================================================================
// RESULT SNAPSHOTS (immutable once built)
// =============================================================================

type CellTeamScore struct {
	TeamID string  `json:"team_id"`
	Points float64 `json:"points"`
}

type CellResult struct {
	CellID     string          `json:"cell_id"`
	TeamScores []CellTeamScore `json:"team_scores"`
}

type ProjectContributionResult struct {
	TeamID string  `json:"team_id"`
	Amount int     `json:"amount"`
	Points float64 `json:"points"`
}

type TeamScore struct {
	TeamID     string `json:"team_id"`
	TurnScore  int    `json:"turn_score"`
	TotalScore int    `json:"total_score"`
}

type TurnResult struct {
	Turn                 int                         `json:"turn"`
	ProjectSuccess       bool                        `json:"project_success"`
	ProjectContributions []ProjectContributionResult `json:"project_contributions"`
	CellResults          []CellResult                `json:"cell_results"`
	IndexChanges         map[string]int              `json:"index_changes"`
	NewIndices           NationalIndices             `json:"new_indices"`
	TeamScores           []TeamScore                 `json:"team_scores"`
}

type TeamRanking struct {
	Rank     int    `json:"rank"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Region   string `json:"region"`
	Score    int    `json:"score"`
}

type GameOverResult struct {
	Reason           string          `json:"reason"`
	FailedIndex      string          `json:"failed_index,omitempty"`
	FinalRankings    []TeamRanking   `json:"final_rankings"`
	TotalTurnsPlayed int             `json:"total_turns_played"`
	FinalIndices     NationalIndices `json:"final_indices"`
}
