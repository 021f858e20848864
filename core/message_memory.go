package core

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// MemoryMessageStore keeps every room's message sequence and participant
// set in process memory. Sequences are append-only apart from explicit
// deletes; participant sets only grow.
type MemoryMessageStore struct {
	messages *SyncMap[string, []Message]
	users    *SyncMap[string, map[string]struct{}]
	newID    func() string
	now      func() time.Time
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{
		messages: NewSyncMap[string, []Message](),
		users:    NewSyncMap[string, map[string]struct{}](),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *MemoryMessageStore) RoomMessages(ctx context.Context, roomID string) ([]Message, error) {
	seq, ok := s.messages.Load(roomID)
	if !ok {
		return nil, nil
	}
	// The caller must not observe later appends through the returned slice.
	return slices.Clone(seq), nil
}

func (s *MemoryMessageStore) RoomUsers(ctx context.Context, roomID string) ([]string, error) {
	set, ok := s.users.Load(roomID)
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *MemoryMessageStore) AppendMessage(ctx context.Context, input MessageCreateInput) (*Message, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Type == "" {
		input.Type = UserMessage
	}

	message := Message{
		ID:        s.newID(),
		Text:      input.Text,
		Sender:    input.Sender,
		Timestamp: s.now(),
		RoomID:    input.RoomID,
		Type:      input.Type,
	}

	s.messages.Update(input.RoomID, func(seq []Message, _ bool) ([]Message, bool) {
		return append(seq, message), true
	})
	s.users.Update(input.RoomID, func(set map[string]struct{}, ok bool) (map[string]struct{}, bool) {
		if !ok {
			set = make(map[string]struct{})
		}
		set[input.Sender] = struct{}{}
		return set, true
	})

	return &message, nil
}

func (s *MemoryMessageStore) DeleteMessage(ctx context.Context, roomID, messageID string) error {
	err := ErrMessageNotFound
	s.messages.Update(roomID, func(seq []Message, ok bool) ([]Message, bool) {
		if !ok {
			return nil, false
		}
		for i, m := range seq {
			if m.ID == messageID {
				err = nil
				return slices.Delete(slices.Clone(seq), i, i+1), true
			}
		}
		return nil, false
	})
	return err
}
