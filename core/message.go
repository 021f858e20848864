package core

import (
	"context"
	"errors"
	"time"
)

const (
	// UserMessage indicates that the message was typed by a participant.
	UserMessage MessageType = "user"
	// SystemMessage indicates that the message was emitted by the room itself,
	// e.g. a join announcement.
	SystemMessage MessageType = "system"
)

// MessageType represents the type of a chat message.
// It is used to determine how the message should be presented.
type MessageType string

// Message represents a chat message sent by a guest to a room.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Sender    string      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	RoomID    string      `json:"roomId"`
	Type      MessageType `json:"type"`
}

var (
	// ErrMessageNotFound is returned when the referenced message does not
	// exist in the room, or the room has no messages at all.
	ErrMessageNotFound = errors.New("message not found")
)

// MessageCreateInput represents the input for appending a message to a room.
type MessageCreateInput struct {
	Text   string      `json:"text" validate:"required"`
	Sender string      `json:"sender" validate:"required"`
	RoomID string      `json:"roomId" validate:"required"`
	Type   MessageType `json:"type" validate:"omitempty,oneof=user system"`
}

// Validate validates the message input.
func (m *MessageCreateInput) Validate() error {
	return validate.Struct(m)
}

type MessageStore interface {
	// RoomMessages returns the room's message sequence in insertion order.
	// An unknown room is indistinguishable from an empty one: both return
	// a nil slice and no error.
	RoomMessages(ctx context.Context, roomID string) ([]Message, error)

	// RoomUsers returns the participant set of the room: the distinct
	// sender names of every message ever appended to it. The set only
	// grows; there is no leave event. An unknown room returns a nil slice.
	RoomUsers(ctx context.Context, roomID string) ([]string, error)

	// AppendMessage assigns an id and timestamp to the message, appends it
	// to the room's sequence, and adds the sender to the room's participant
	// set. The sequence and the set are created on first use. If the input
	// type is empty it defaults to UserMessage.
	AppendMessage(ctx context.Context, input MessageCreateInput) (*Message, error)

	// DeleteMessage removes the first message with the given id from the
	// room's sequence, leaving the order of the remaining messages intact.
	// If the room has no messages or the id is not found, it returns
	// ErrMessageNotFound.
	DeleteMessage(ctx context.Context, roomID, messageID string) error
}
