package room

import (
	"errors"
	"testing"

	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewStore())
}

func TestCreateRoomBuildsFiveTeams(t *testing.T) {
	svc := newTestService(t)
	room, err := svc.CreateRoom("Thầy Quang")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if len(room.Code) != config.RoomCodeLength {
		t.Fatalf("expected %d-character code, got %q", config.RoomCodeLength, room.Code)
	}
	if room.HostToken == "" {
		t.Fatalf("expected a host token")
	}
	if room.Status != internal.StatusWaiting {
		t.Fatalf("expected waiting status, got %s", room.Status)
	}
	if len(room.Teams) != config.NumTeams {
		t.Fatalf("expected %d teams, got %d", config.NumTeams, len(room.Teams))
	}

	seenTokens := make(map[string]bool)
	seenRegions := make(map[string]bool)
	for i, team := range room.Teams {
		if team.Index != i {
			t.Fatalf("expected team index %d, got %d", i, team.Index)
		}
		if team.SessionToken == "" || seenTokens[team.SessionToken] {
			t.Fatalf("expected a unique session token per team")
		}
		seenTokens[team.SessionToken] = true
		if seenRegions[team.Region.ID] {
			t.Fatalf("expected one team per region, %s repeated", team.Region.ID)
		}
		seenRegions[team.Region.ID] = true
		if team.Resources != config.ResourcesPerTurn {
			t.Fatalf("expected starting resources %d, got %d", config.ResourcesPerTurn, team.Resources)
		}
		if team.IsConnected {
			t.Fatalf("teams start disconnected")
		}
	}
}

func TestCreateRoomsAreIndependent(t *testing.T) {
	svc := newTestService(t)
	first, err := svc.CreateRoom("host-1")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	second, err := svc.CreateRoom("host-2")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if first.Code == second.Code {
		t.Fatalf("expected distinct room codes")
	}
	if svc.Store().Len() != 2 {
		t.Fatalf("expected 2 live rooms, got %d", svc.Store().Len())
	}

	// A team credential from one room is worthless in the other.
	team := first.Teams[0]
	if svc.ValidateSessionToken(second.Code, team.Id, team.SessionToken) {
		t.Fatalf("session token must not cross rooms")
	}
	if !svc.ValidateSessionToken(first.Code, team.Id, team.SessionToken) {
		t.Fatalf("session token must work in its own room")
	}
}

func TestValidateSessionToken(t *testing.T) {
	svc := newTestService(t)
	room, err := svc.CreateRoom("host")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	team := room.Teams[0]

	tests := []struct {
		name   string
		code   string
		teamID string
		token  string
		valid  bool
	}{
		{"valid", room.Code, team.Id, team.SessionToken, true},
		{"wrong token", room.Code, team.Id, "nope", false},
		{"empty token", room.Code, team.Id, "", false},
		{"another team's token", room.Code, team.Id, room.Teams[1].SessionToken, false},
		{"unknown team", room.Code, "ghost", team.SessionToken, false},
		{"unknown room", "000000", team.Id, team.SessionToken, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.ValidateSessionToken(tt.code, tt.teamID, tt.token); got != tt.valid {
				t.Fatalf("expected %t, got %t", tt.valid, got)
			}
		})
	}
}

func TestValidateHostToken(t *testing.T) {
	svc := newTestService(t)
	room, err := svc.CreateRoom("host")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if !svc.ValidateHostToken(room.Code, room.HostToken) {
		t.Fatalf("expected host token to validate")
	}
	if svc.ValidateHostToken(room.Code, "nope") {
		t.Fatalf("expected wrong host token rejected")
	}
}

func TestDeleteRoomRequiresHostToken(t *testing.T) {
	svc := newTestService(t)
	room, err := svc.CreateRoom("host")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if err := svc.DeleteRoom(room.Code, "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeleteRoom(room.Code, room.HostToken); err != nil {
		t.Fatalf("expected delete with host token to succeed: %v", err)
	}
	if err := svc.DeleteRoom(room.Code, room.HostToken); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound after delete, got %v", err)
	}
}

func TestGetTeam(t *testing.T) {
	svc := newTestService(t)
	room, err := svc.CreateRoom("host")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if got := svc.GetTeam(room.Code, room.Teams[2].Id); got == nil || got.Index != 2 {
		t.Fatalf("expected team at index 2, got %+v", got)
	}
	if svc.GetTeam(room.Code, "ghost") != nil {
		t.Fatalf("expected nil for unknown team")
	}

	if got := svc.GetTeamByIndex(room.Code, 3); got == nil || got.Id != room.Teams[3].Id {
		t.Fatalf("expected team at index 3, got %+v", got)
	}
	if svc.GetTeamByIndex(room.Code, 7) != nil {
		t.Fatalf("expected nil for out-of-range index")
	}
}
