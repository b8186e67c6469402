package ws

import (
	"testing"

	"github.com/truongvq/kienquoc-backend/internal"
)

func sampleView() internal.RoomView {
	resourcesA, resourcesB := 6, 14
	return internal.RoomView{
		Code:   "123456",
		Status: internal.StatusPlaying,
		Teams: []internal.TeamView{
			{
				Id:         "team-a",
				Resources:  &resourcesA,
				Placements: []internal.Placement{{CellID: "cell-0-0", Amount: 5}, {CellID: "project-center", Amount: 3}},
			},
			{
				Id:         "team-b",
				Resources:  &resourcesB,
				Placements: []internal.Placement{{CellID: "cell-0-1", Amount: 2}},
			},
		},
		Game: &internal.GameStateView{
			CurrentTurn:  1,
			CurrentPhase: internal.PhaseAction,
			Board: []internal.BoardCell{
				{
					Id: "cell-0-0",
					Placements: []internal.CellPlacement{
						{TeamID: "team-a", Amount: 5},
						{TeamID: "team-b", Amount: 2},
					},
				},
			},
			Project: &internal.ProjectStatus{
				TotalContributed: 3,
				Contributions: []internal.ProjectContribution{
					{TeamID: "team-a", Amount: 3},
				},
			},
		},
	}
}

func TestProjectRoomViewHostSeesEverything(t *testing.T) {
	view := ProjectRoomView(sampleView(), internal.RoleHost, "")

	for _, team := range view.Teams {
		if team.Resources == nil {
			t.Fatalf("host must see resources for %s", team.Id)
		}
	}
	if len(view.Game.Board[0].Placements) != 2 {
		t.Fatalf("host must see all board placements")
	}
	if len(view.Game.Project.Contributions) != 1 {
		t.Fatalf("host must see project contributions")
	}
}

func TestProjectRoomViewPlayerSeesOnlyOwnTeam(t *testing.T) {
	view := ProjectRoomView(sampleView(), internal.RolePlayer, "team-a")

	for _, team := range view.Teams {
		if team.Id == "team-a" {
			if team.Resources == nil || len(team.Placements) != 2 {
				t.Fatalf("player must keep its own resources and placements")
			}
			continue
		}
		if team.Resources != nil {
			t.Fatalf("other team's resources must be hidden")
		}
		if len(team.Placements) != 0 {
			t.Fatalf("other team's placements must be hidden")
		}
	}

	placements := view.Game.Board[0].Placements
	if len(placements) != 1 || placements[0].TeamID != "team-a" {
		t.Fatalf("board cells must only show the player's own placements, got %+v", placements)
	}
	contributions := view.Game.Project.Contributions
	if len(contributions) != 1 || contributions[0].TeamID != "team-a" {
		t.Fatalf("project must only show the player's own contribution, got %+v", contributions)
	}
	// Aggregates stay visible.
	if view.Game.Project.TotalContributed != 3 {
		t.Fatalf("project totals must remain visible")
	}
}

func TestProjectRoomViewSpectatorSeesNoPlacements(t *testing.T) {
	view := ProjectRoomView(sampleView(), internal.RoleSpectator, "")

	for _, team := range view.Teams {
		if team.Resources != nil || len(team.Placements) != 0 {
			t.Fatalf("spectator must not see team %s internals", team.Id)
		}
	}
	if len(view.Game.Board[0].Placements) != 0 {
		t.Fatalf("spectator must not see board placements")
	}
	if len(view.Game.Project.Contributions) != 0 {
		t.Fatalf("spectator must not see project contributions")
	}
	// Public scoreboard facts survive.
	if view.Game.CurrentPhase != internal.PhaseAction || view.Code != "123456" {
		t.Fatalf("public fields must pass through")
	}
}

func TestProjectRoomViewDoesNotMutateInput(t *testing.T) {
	original := sampleView()
	_ = ProjectRoomView(original, internal.RoleSpectator, "")

	if original.Teams[0].Resources == nil || len(original.Teams[0].Placements) != 2 {
		t.Fatalf("projection must not touch the shared snapshot's teams")
	}
	if len(original.Game.Board[0].Placements) != 2 {
		t.Fatalf("projection must not touch the shared snapshot's board")
	}
	if len(original.Game.Project.Contributions) != 1 {
		t.Fatalf("projection must not touch the shared snapshot's project")
	}
}

func TestStateProjectorPassesOtherMessagesThrough(t *testing.T) {
	msg := internal.Message[internal.TeamEventData]{
		Type: internal.MsgTeamSubmitted,
		Data: internal.TeamEventData{TeamID: "team-a"},
	}
	out, keep := StateProjector{}.Project(msg, ConnInfo{Role: internal.RoleSpectator})
	if !keep {
		t.Fatalf("non-state messages must never be dropped")
	}
	if out != any(msg) {
		t.Fatalf("non-state messages must pass through unchanged")
	}
}

func TestStateProjectorRedactsGameState(t *testing.T) {
	msg := internal.Message[internal.RoomView]{Type: internal.MsgGameState, Data: sampleView()}
	out, keep := StateProjector{}.Project(msg, ConnInfo{Role: internal.RoleSpectator})
	if !keep {
		t.Fatalf("state messages must be delivered, redacted")
	}
	projected, ok := out.(internal.Message[internal.RoomView])
	if !ok {
		t.Fatalf("expected a RoomView message, got %T", out)
	}
	if projected.Data.Teams[0].Resources != nil {
		t.Fatalf("expected spectator redaction applied")
	}
}
