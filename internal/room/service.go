package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/config"
	"github.com/truongvq/kienquoc-backend/internal/utils"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrUnauthorized = errors.New("invalid host token")
)

// Service owns room lifecycle and credential checks on top of a Store.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() *Store {
	return s.store
}

// CreateRoom builds a room with 5 pre-created teams, one per region, each
// with its own session token, and registers it under a fresh code.
func (s *Service) CreateRoom(hostName string) (*internal.Room, error) {
	teams := make([]*internal.Team, 0, config.NumTeams)
	for i := 0; i < config.NumTeams; i++ {
		region, ok := config.RegionByIndex(i)
		if !ok {
			return nil, fmt.Errorf("no region for team index %d", i)
		}
		teams = append(teams, &internal.Team{
			Id:           uuid.NewString(),
			Index:        i,
			Name:         fmt.Sprintf("Đội %d", i+1),
			Region:       region,
			SessionToken: uuid.NewString(),
			Resources:    config.ResourcesPerTurn,
			Placements:   []internal.Placement{},
		})
	}

	room := &internal.Room{
		HostName:  hostName,
		HostToken: uuid.NewString(),
		Status:    internal.StatusWaiting,
		Teams:     teams,
		CreatedAt: time.Now(),
	}

	// Retry on code collision; with a 6-digit space this resolves fast.
	for attempt := 0; attempt < 100; attempt++ {
		room.Code = utils.GenerateCode(config.RoomCodeLength, config.RoomCodeCharset)
		if s.store.Put(room) {
			return room, nil
		}
	}
	return nil, errors.New("could not allocate a room code")
}

// GetRoom looks a room up by code.
func (s *Service) GetRoom(code string) (*internal.Room, error) {
	room := s.store.Get(code)
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// DeleteRoom removes a room after checking the host token.
func (s *Service) DeleteRoom(code, hostToken string) error {
	room := s.store.Get(code)
	if room == nil {
		return ErrRoomNotFound
	}
	room.Mu.RLock()
	valid := room.HostToken == hostToken
	room.Mu.RUnlock()
	if !valid {
		return ErrUnauthorized
	}
	s.store.Delete(code)
	return nil
}

// ValidateHostToken reports whether the token matches the room's host token.
func (s *Service) ValidateHostToken(code, token string) bool {
	room := s.store.Get(code)
	if room == nil {
		return false
	}
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return room.HostToken == token
}

// ValidateSessionToken reports whether the token matches the team's session
// token in the given room.
func (s *Service) ValidateSessionToken(code, teamID, token string) bool {
	room := s.store.Get(code)
	if room == nil {
		return false
	}
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	team := room.FindTeam(teamID)
	return team != nil && token != "" && team.SessionToken == token
}

// GetTeam returns the team with the given id, or nil.
func (s *Service) GetTeam(code, teamID string) *internal.Team {
	room := s.store.Get(code)
	if room == nil {
		return nil
	}
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return room.FindTeam(teamID)
}

// GetTeamByIndex returns the team at display index 0-4, or nil.
func (s *Service) GetTeamByIndex(code string, index int) *internal.Team {
	room := s.store.Get(code)
	if room == nil {
		return nil
	}
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return room.TeamByIndex(index)
}

// ConnectedTeamCount counts teams with a live connection in the room.
func (s *Service) ConnectedTeamCount(code string) int {
	room := s.store.Get(code)
	if room == nil {
		return 0
	}
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return room.ConnectedTeamCount()
}
