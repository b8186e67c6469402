package ws

import "github.com/truongvq/kienquoc-backend/internal"

// StateProjector redacts GAME_STATE snapshots per viewer role. Everything
// else passes through untouched. It only ever works on copies; the snapshot
// handed to Broadcast is shared across recipients and the canonical room is
// not involved at all.
type StateProjector struct{}

func (StateProjector) Project(msg any, info ConnInfo) (any, bool) {
	state, ok := msg.(internal.Message[internal.RoomView])
	if !ok || state.Type != internal.MsgGameState {
		return msg, true
	}
	return internal.Message[internal.RoomView]{
		Type: state.Type,
		Data: ProjectRoomView(state.Data, info.Role, info.TeamID),
	}, true
}

// ProjectRoomView applies role-based redaction to a room snapshot:
//   - host: sees everything (snapshots never carry credentials to begin with)
//   - player: sees only its own team's placements and resources, on the team
//     entry, on board cells, and on the project contribution list
//   - spectator: sees no placements or resources at all
func ProjectRoomView(view internal.RoomView, role internal.ClientRole, teamID string) internal.RoomView {
	if role == internal.RoleHost {
		return view
	}

	teams := make([]internal.TeamView, 0, len(view.Teams))
	for _, team := range view.Teams {
		if !(role == internal.RolePlayer && team.Id == teamID) {
			team.Resources = nil
			team.Placements = []internal.Placement{}
		}
		teams = append(teams, team)
	}
	view.Teams = teams

	if view.Game == nil {
		return view
	}

	game := *view.Game

	board := make([]internal.BoardCell, len(game.Board))
	for i, cell := range game.Board {
		filtered := make([]internal.CellPlacement, 0, len(cell.Placements))
		for _, p := range cell.Placements {
			if role == internal.RolePlayer && p.TeamID == teamID {
				filtered = append(filtered, p)
			}
		}
		cell.Placements = filtered
		board[i] = cell
	}
	game.Board = board

	if game.Project != nil {
		project := *game.Project
		contributions := make([]internal.ProjectContribution, 0, len(project.Contributions))
		for _, c := range project.Contributions {
			if role == internal.RolePlayer && c.TeamID == teamID {
				contributions = append(contributions, c)
			}
		}
		project.Contributions = contributions
		game.Project = &project
	}

	view.Game = &game
	return view
}
