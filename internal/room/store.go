package room

import (
	"sync"

	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/utils"
)

// Store is the registry of live rooms keyed by room code. Every core
// operation takes an explicit room reference obtained here; there is no
// process-wide current room.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*internal.Room),
	}
}

// Get returns the room for a code, or nil if none exists.
func (s *Store) Get(code string) *internal.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[utils.NormalizeRoomCode(code)]
}

// Put registers a room under its code. Returns false if the code is taken.
func (s *Store) Put(room *internal.Room) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := utils.NormalizeRoomCode(room.Code)
	if _, exists := s.rooms[code]; exists {
		return false
	}
	s.rooms[code] = room
	return true
}

// Delete removes a room. Returns false if it was not registered.
func (s *Store) Delete(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	code = utils.NormalizeRoomCode(code)
	if _, exists := s.rooms[code]; !exists {
		return false
	}
	delete(s.rooms, code)
	return true
}

// Len reports the number of live rooms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
