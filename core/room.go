package core

import (
	"context"
	"errors"
	"time"
)

// Room represents a chat room in the directory.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	// UserCount is set once when the room is created or seeded.
	// It is not reconciled with the room's actual participants.
	UserCount int `json:"userCount"`
}

var (
	// ErrRoomNotFound is returned when the referenced room is not in the directory.
	ErrRoomNotFound = errors.New("room not found")
)

type RoomStore interface {
	// ListRooms returns every room in the directory.
	// No ordering is guaranteed. A nil slice means the directory is empty.
	ListRooms(ctx context.Context) ([]Room, error)

	// CreateRoom adds a room with the given name to the directory.
	// If id is empty a new id is generated. An existing room with the
	// same id is replaced, not merged: the new room starts with a fresh
	// creation time and a user count of zero.
	CreateRoom(ctx context.Context, name, id string) (*Room, error)

	// DeleteRoom removes the room with the given id.
	// If the room does not exist, it returns ErrRoomNotFound.
	DeleteRoom(ctx context.Context, id string) error
}
