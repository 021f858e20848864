package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MemoryRoomStore keeps the room directory in process memory.
// Its lifetime is the lifetime of the process; there is no persistence.
type MemoryRoomStore struct {
	rooms *SyncMap[string, Room]
	newID func() string
	now   func() time.Time
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{
		rooms: NewSyncMap[string, Room](),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (s *MemoryRoomStore) ListRooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	s.rooms.RRange(func(_ string, room Room) bool {
		rooms = append(rooms, room)
		return true
	})
	return rooms, nil
}

func (s *MemoryRoomStore) CreateRoom(ctx context.Context, name, id string) (*Room, error) {
	if id == "" {
		id = s.newID()
	}
	room := Room{
		ID:        id,
		Name:      name,
		CreatedAt: s.now(),
		UserCount: 0,
	}
	// Store replaces any room already keyed by this id.
	s.rooms.Store(id, room)
	return &room, nil
}

func (s *MemoryRoomStore) DeleteRoom(ctx context.Context, id string) error {
	if _, ok := s.rooms.LoadAndDelete(id); !ok {
		return ErrRoomNotFound
	}
	return nil
}

// Seed installs rooms directly, preserving their ids, creation times, and
// user counts. It is meant for the demo rooms created at process start.
func (s *MemoryRoomStore) Seed(rooms ...Room) {
	for _, room := range rooms {
		s.rooms.Store(room.ID, room)
	}
}

// DefaultRooms returns the demo rooms installed at process start.
// The user counts are cosmetic; nothing keeps them in sync with the
// participants that actually post to these rooms.
func DefaultRooms() []Room {
	now := time.Now()
	return []Room{
		{ID: "room1", Name: "General Discussion", CreatedAt: now, UserCount: 5},
		{ID: "room2", Name: "Tech Talk", CreatedAt: now, UserCount: 3},
		{ID: "room3", Name: "Random Chat", CreatedAt: now, UserCount: 8},
	}
}
