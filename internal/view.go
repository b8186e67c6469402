package internal

import "time"

// View types are the wire shape of a GAME_STATE snapshot. They are built under
// the room lock, carry no credentials, and are safe to hand to the broadcast
// layer after the lock is released. Redaction per viewer role happens on
// copies of these (see the ws projector), never on the canonical room.

type TeamView struct {
	Id           string      `json:"id"`
	Index        int         `json:"index"`
	Name         string      `json:"name"`
	Region       Region      `json:"region"`
	Score        int         `json:"score"`
	Resources    *int        `json:"resources"` // nil when hidden from the viewer
	Placements   []Placement `json:"placements"`
	HasSubmitted bool        `json:"has_submitted"`
	IsConnected  bool        `json:"is_connected"`
}

type GameStateView struct {
	CurrentTurn    int             `json:"current_turn"`
	CurrentPhase   GamePhase       `json:"current_phase"`
	PhaseStartTime time.Time       `json:"phase_start_time"`
	PhaseTimeLimit int             `json:"phase_time_limit"`
	IsPaused       bool            `json:"is_paused"`
	Indices        NationalIndices `json:"national_indices"`
	CurrentEvent   *TurnEvent      `json:"current_event"`
	Project        *ProjectStatus  `json:"project_status"`
	Board          []BoardCell     `json:"board"`
}

type RoomView struct {
	Code     string         `json:"code"`
	HostName string         `json:"host_name"`
	Status   RoomStatus     `json:"status"`
	Teams    []TeamView     `json:"teams"`
	Game     *GameStateView `json:"game_state"`
}

// View snapshots the room for broadcast. Caller holds Mu (read is enough).
func (r *Room) View() RoomView {
	view := RoomView{
		Code:     r.Code,
		HostName: r.HostName,
		Status:   r.Status,
		Teams:    make([]TeamView, 0, len(r.Teams)),
	}

	for _, t := range r.Teams {
		resources := t.Resources
		view.Teams = append(view.Teams, TeamView{
			Id:           t.Id,
			Index:        t.Index,
			Name:         t.Name,
			Region:       t.Region,
			Score:        t.Score,
			Resources:    &resources,
			Placements:   append([]Placement(nil), t.Placements...),
			HasSubmitted: t.HasSubmitted,
			IsConnected:  t.IsConnected,
		})
	}

	if gs := r.Game; gs != nil {
		gameView := GameStateView{
			CurrentTurn:    gs.CurrentTurn,
			CurrentPhase:   gs.CurrentPhase,
			PhaseStartTime: gs.PhaseStartTime,
			PhaseTimeLimit: gs.PhaseTimeLimit,
			IsPaused:       gs.IsPaused,
			Indices:        gs.Indices,
			CurrentEvent:   gs.CurrentEvent,
			Board:          make([]BoardCell, len(gs.Board)),
		}
		for i, cell := range gs.Board {
			copied := cell
			copied.Placements = append([]CellPlacement(nil), cell.Placements...)
			gameView.Board[i] = copied
		}
		if gs.Project != nil {
			project := *gs.Project
			project.Contributions = append([]ProjectContribution(nil), gs.Project.Contributions...)
			gameView.Project = &project
		}
		view.Game = &gameView
	}

	return view
}
