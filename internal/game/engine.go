package game

import (
	"errors"
	"sort"
	"time"

	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/config"
)

// Engine functions mutate a single room. Callers hold room.Mu for the whole
// call; nothing here blocks or touches the network.

var (
	ErrInsufficientTeams     = errors.New("need at least 3 connected teams to start")
	ErrAlreadyStarted        = errors.New("game already started")
	ErrNotStarted            = errors.New("game not started")
	ErrWrongPhase            = errors.New("can only place during action phase")
	ErrTeamNotFound          = errors.New("team not found")
	ErrAlreadySubmitted      = errors.New("already submitted")
	ErrInsufficientResources = errors.New("not enough resources")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrUnknownCell           = errors.New("unknown cell")
)

// MinTeamsToStart is the connected-team quorum for starting a session.
const MinTeamsToStart = 3

// StartGame initializes game state and moves the room into the event phase of
// turn 1.
func StartGame(room *internal.Room) error {
	if room.Status != internal.StatusWaiting {
		return ErrAlreadyStarted
	}
	if room.ConnectedTeamCount() < MinTeamsToStart {
		return ErrInsufficientTeams
	}

	firstEvent := config.EventByTurn(1)

	room.Game = &internal.GameState{
		CurrentTurn:    1,
		CurrentPhase:   internal.PhaseEvent,
		PhaseStartTime: time.Now(),
		PhaseTimeLimit: config.PhaseEventDuration,
		Indices:        config.StartingIndices(),
		CurrentEvent:   firstEvent,
		Project:        newProjectStatus(firstEvent),
		Board:          buildBoard(),
	}
	room.Status = internal.StatusPlaying

	resetTeamsForTurn(room)
	return nil
}

// buildBoard lays out the 12 regular cells in stable row-major order. The
// four project cells collapse into the virtual project target and never
// appear here.
func buildBoard() []internal.BoardCell {
	cells := config.RegularCells()

	positions := make([]config.CellPosition, 0, len(cells))
	for pos := range cells {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row != positions[j].Row {
			return positions[i].Row < positions[j].Row
		}
		return positions[i].Col < positions[j].Col
	})

	board := make([]internal.BoardCell, 0, len(positions))
	for _, pos := range positions {
		cfg := cells[pos]
		board = append(board, internal.BoardCell{
			Id:         config.CellID(pos),
			Row:        pos.Row,
			Col:        pos.Col,
			Type:       cfg.Type,
			Name:       cfg.Name,
			Indices:    cfg.Indices,
			Placements: []internal.CellPlacement{},
		})
	}
	return board
}

func newProjectStatus(event *internal.TurnEvent) *internal.ProjectStatus {
	if event == nil {
		return nil
	}
	return &internal.ProjectStatus{
		Contributions: []internal.ProjectContribution{},
		MinTotal:      event.MinTotal,
		MinTeams:      event.MinTeams,
		Status:        internal.ProjectPending,
	}
}

func resetTeamsForTurn(room *internal.Room) {
	for _, team := range room.Teams {
		team.Resources = config.ResourcesPerTurn
		team.Placements = []internal.Placement{}
		team.HasSubmitted = false
	}
}

// validCellID accepts the project target or any cell on the current board.
func validCellID(room *internal.Room, cellID string) bool {
	if cellID == config.ProjectCellID {
		return true
	}
	for _, cell := range room.Game.Board {
		if cell.Id == cellID {
			return true
		}
	}
	return false
}

// PlaceResource sets a team's allocation on a cell to amount, charging or
// refunding the difference against the team's remaining resources, then
// resyncs the board and project views from all team placements.
func PlaceResource(room *internal.Room, teamID, cellID string, amount int) error {
	if room.Game == nil {
		return ErrNotStarted
	}
	if room.Game.CurrentPhase != internal.PhaseAction {
		return ErrWrongPhase
	}

	team := room.FindTeam(teamID)
	if team == nil {
		return ErrTeamNotFound
	}
	if team.HasSubmitted {
		return ErrAlreadySubmitted
	}
	if !validCellID(room, cellID) {
		return ErrUnknownCell
	}
	if amount < 0 {
		return ErrNegativeAmount
	}

	currentAmount := 0
	currentIdx := -1
	for i, p := range team.Placements {
		if p.CellID == cellID {
			currentAmount = p.Amount
			currentIdx = i
			break
		}
	}

	change := amount - currentAmount
	if change > team.Resources {
		return ErrInsufficientResources
	}

	team.Resources -= change

	switch {
	case currentIdx >= 0 && amount == 0:
		team.Placements = append(team.Placements[:currentIdx], team.Placements[currentIdx+1:]...)
	case currentIdx >= 0:
		team.Placements[currentIdx].Amount = amount
	case amount > 0:
		team.Placements = append(team.Placements, internal.Placement{CellID: cellID, Amount: amount})
	}

	syncPlacementsToBoard(room)
	return nil
}

// syncPlacementsToBoard rebuilds every board cell's and the project's
// placement view from team state. A full resync keeps the board consistent no
// matter how often placements get edited.
func syncPlacementsToBoard(room *internal.Room) {
	gs := room.Game
	if gs == nil {
		return
	}

	for i := range gs.Board {
		gs.Board[i].Placements = gs.Board[i].Placements[:0]
	}
	if gs.Project != nil {
		gs.Project.TotalContributed = 0
		gs.Project.Contributions = gs.Project.Contributions[:0]
	}

	for _, team := range room.Teams {
		for _, placement := range team.Placements {
			if placement.CellID == config.ProjectCellID {
				if gs.Project != nil {
					gs.Project.TotalContributed += placement.Amount
					gs.Project.Contributions = append(gs.Project.Contributions, internal.ProjectContribution{
						TeamID: team.Id,
						Amount: placement.Amount,
					})
				}
				continue
			}
			for i := range gs.Board {
				if gs.Board[i].Id == placement.CellID {
					gs.Board[i].Placements = append(gs.Board[i].Placements, internal.CellPlacement{
						TeamID: team.Id,
						Amount: placement.Amount,
					})
					break
				}
			}
		}
	}
}

// SubmitTurn marks the team as done for this turn. Submitting twice is not an
// error; the flag just stays set.
func SubmitTurn(room *internal.Room, teamID string) error {
	team := room.FindTeam(teamID)
	if team == nil {
		return ErrTeamNotFound
	}
	team.HasSubmitted = true
	return nil
}

// AllTeamsSubmitted reports whether every currently connected team has
// submitted. Disconnected teams never block the turn.
func AllTeamsSubmitted(room *internal.Room) bool {
	for _, team := range room.Teams {
		if team.IsConnected && !team.HasSubmitted {
			return false
		}
	}
	return true
}

// AdvancePhase is the sole phase-mutating entry point. It returns the new
// phase and, on the action->resolution transition, the turn's result. After
// the result phase it either sets up the next turn or finishes the session
// (any index at zero, or the turn cap reached).
func AdvancePhase(room *internal.Room) (internal.GamePhase, *internal.TurnResult, error) {
	gs := room.Game
	if gs == nil {
		return "", nil, ErrNotStarted
	}

	var result *internal.TurnResult

	switch gs.CurrentPhase {
	case internal.PhaseEvent:
		gs.CurrentPhase = internal.PhaseAction
		gs.PhaseTimeLimit = config.PhaseActionDuration

	case internal.PhaseAction:
		gs.CurrentPhase = internal.PhaseResolution
		gs.PhaseTimeLimit = config.PhaseResolutionDuration
		// Nobody places after this point.
		for _, team := range room.Teams {
			team.HasSubmitted = true
		}
		result = processTurn(room)

	case internal.PhaseResolution:
		gs.CurrentPhase = internal.PhaseResult
		gs.PhaseTimeLimit = config.PhaseResultDuration

	case internal.PhaseResult:
		for key, cost := range config.MaintenanceCost() {
			gs.Indices.ApplyChanges(map[string]int{key: -cost}, config.IndexMaximum)
		}

		if gs.Indices.AnyZero() {
			room.Status = internal.StatusFinished
			return gs.CurrentPhase, result, nil
		}
		if gs.CurrentTurn >= config.MaxTurns {
			room.Status = internal.StatusFinished
			return gs.CurrentPhase, result, nil
		}

		gs.CurrentTurn++
		gs.CurrentPhase = internal.PhaseEvent
		gs.PhaseTimeLimit = config.PhaseEventDuration

		nextEvent := config.EventByTurn(gs.CurrentTurn)
		gs.CurrentEvent = nextEvent
		gs.Project = newProjectStatus(nextEvent)

		resetTeamsForTurn(room)
		for i := range gs.Board {
			gs.Board[i].Placements = []internal.CellPlacement{}
		}
	}

	gs.PhaseStartTime = time.Now()
	gs.IsPaused = false

	return gs.CurrentPhase, result, nil
}

// processTurn scores every cell and the project, applies index changes, and
// folds turn scores into team totals.
func processTurn(room *internal.Room) *internal.TurnResult {
	gs := room.Game

	cellResults := make([]internal.CellResult, 0, len(gs.Board))
	turnScores := make(map[string]float64, len(room.Teams))
	for _, team := range room.Teams {
		turnScores[team.Id] = 0
	}

	for _, cell := range gs.Board {
		scores := CellScores(cell)
		teamScores := make([]internal.CellTeamScore, 0, len(scores))
		// Report scores in team display order so results are deterministic.
		for _, team := range room.Teams {
			points, ok := scores[team.Id]
			if !ok {
				continue
			}
			teamScores = append(teamScores, internal.CellTeamScore{TeamID: team.Id, Points: points})
			turnScores[team.Id] += points
		}
		cellResults = append(cellResults, internal.CellResult{CellID: cell.Id, TeamScores: teamScores})
	}

	projectContributions := []internal.ProjectContributionResult{}
	projectSuccess := false
	indexChanges := map[string]int{}

	if gs.Project != nil && gs.CurrentEvent != nil {
		projectResult := CalculateProjectResult(gs.Project.Contributions, gs.Project.MinTotal, gs.Project.MinTeams)

		projectSuccess = projectResult.Success
		if projectSuccess {
			gs.Project.Status = internal.ProjectSuccess
		} else {
			gs.Project.Status = internal.ProjectFailure
		}

		for teamID, points := range projectResult.TeamScores {
			turnScores[teamID] += points
		}
		for _, contribution := range gs.Project.Contributions {
			projectContributions = append(projectContributions, internal.ProjectContributionResult{
				TeamID: contribution.TeamID,
				Amount: contribution.Amount,
				Points: projectResult.TeamScores[contribution.TeamID],
			})
		}

		if projectSuccess {
			for key, delta := range gs.CurrentEvent.SuccessReward {
				if key == "points" {
					continue
				}
				indexChanges[key] = delta
			}
		} else {
			for key, delta := range gs.CurrentEvent.FailurePenalty {
				indexChanges[key] = delta
			}
		}
		gs.Indices.ApplyChanges(indexChanges, config.IndexMaximum)
	}

	teamScores := make([]internal.TeamScore, 0, len(room.Teams))
	for _, team := range room.Teams {
		turnScore := int(turnScores[team.Id])

		// Flat bonus points from the event, integer-split among contributors.
		if projectSuccess && gs.CurrentEvent != nil {
			bonusPoints := gs.CurrentEvent.SuccessReward["points"]
			if bonusPoints > 0 {
				contributors := 0
				contributed := false
				for _, c := range gs.Project.Contributions {
					if c.Amount > 0 {
						contributors++
						if c.TeamID == team.Id {
							contributed = true
						}
					}
				}
				if contributed && contributors > 0 {
					turnScore += bonusPoints / contributors
				}
			}
		}

		team.Score += turnScore
		teamScores = append(teamScores, internal.TeamScore{
			TeamID:     team.Id,
			TurnScore:  turnScore,
			TotalScore: team.Score,
		})
	}

	return &internal.TurnResult{
		Turn:                 gs.CurrentTurn,
		ProjectSuccess:       projectSuccess,
		ProjectContributions: projectContributions,
		CellResults:          cellResults,
		IndexChanges:         indexChanges,
		NewIndices:           gs.Indices,
		TeamScores:           teamScores,
	}
}

// PauseGame freezes the phase timer's effect; the timer itself keeps running
// and no-ops on a paused room.
func PauseGame(room *internal.Room) {
	if room.Game == nil {
		return
	}
	room.Game.IsPaused = true
	room.Status = internal.StatusPaused
}

// ResumeGame re-stamps the phase start so elapsed pause time is not counted
// against the phase limit.
func ResumeGame(room *internal.Room) {
	if room.Game == nil {
		return
	}
	room.Game.IsPaused = false
	room.Game.PhaseStartTime = time.Now()
	room.Status = internal.StatusPlaying
}

// GameOver builds the final result snapshot: termination reason, the first
// failed index if any, and rankings by score with ties kept in team order.
func GameOver(room *internal.Room) internal.GameOverResult {
	gs := room.Game

	reason := internal.ReasonCompleted
	failedIndex := ""
	switch {
	case gs == nil:
		reason = internal.ReasonHostEnded
	case gs.Indices.AnyZero():
		reason = internal.ReasonIndexZero
		failedIndex = gs.Indices.ZeroIndex()
	case gs.CurrentTurn < config.MaxTurns:
		reason = internal.ReasonHostEnded
	}

	// Teams are stored in index order; a stable sort keeps that order on ties.
	sorted := make([]*internal.Team, len(room.Teams))
	copy(sorted, room.Teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	rankings := make([]internal.TeamRanking, 0, len(sorted))
	for i, team := range sorted {
		rankings = append(rankings, internal.TeamRanking{
			Rank:     i + 1,
			TeamID:   team.Id,
			TeamName: team.Name,
			Region:   team.Region.Name,
			Score:    team.Score,
		})
	}

	result := internal.GameOverResult{
		Reason:        reason,
		FailedIndex:   failedIndex,
		FinalRankings: rankings,
	}
	if gs != nil {
		result.TotalTurnsPlayed = gs.CurrentTurn
		result.FinalIndices = gs.Indices
	}
	return result
}
