package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoomStore_CreateRoom(t *testing.T) {

	t.Run("create room with generated id", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryRoomStore()

		room, err := store.CreateRoom(ctx, "Demo", "")
		require.Nil(t, err)
		require.NotNil(t, room)
		assert.NotEmpty(t, room.ID)
		assert.Equal(t, "Demo", room.Name)
		assert.Equal(t, 0, room.UserCount)
		assert.False(t, room.CreatedAt.IsZero())

		rooms, err := store.ListRooms(ctx)
		require.Nil(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, *room, rooms[0])
	})

	t.Run("create room with supplied id", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryRoomStore()

		room, err := store.CreateRoom(ctx, "Demo", "room1")
		require.Nil(t, err)
		assert.Equal(t, "room1", room.ID)
	})

	t.Run("create room with existing id replaces it", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryRoomStore()
		// deterministic clock so the replacement's creation time is observable
		tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		store.now = func() time.Time {
			tick = tick.Add(time.Minute)
			return tick
		}

		store.Seed(Room{ID: "room1", Name: "Old", CreatedAt: tick, UserCount: 5})

		room, err := store.CreateRoom(ctx, "New", "room1")
		require.Nil(t, err)
		assert.Equal(t, "room1", room.ID)
		assert.Equal(t, "New", room.Name)
		assert.Equal(t, 0, room.UserCount)
		assert.True(t, room.CreatedAt.After(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

		rooms, err := store.ListRooms(ctx)
		require.Nil(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "New", rooms[0].Name)
	})

	t.Run("generated ids come from the injected generator", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryRoomStore()
		store.newID = func() string { return "fixed-id" }

		room, err := store.CreateRoom(ctx, "Demo", "")
		require.Nil(t, err)
		assert.Equal(t, "fixed-id", room.ID)
	})
}

func TestMemoryRoomStore_DeleteRoom(t *testing.T) {

	t.Run("delete existing room", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryRoomStore()
		room, err := store.CreateRoom(ctx, "Demo", "")
		require.Nil(t, err)

		err = store.DeleteRoom(ctx, room.ID)
		require.Nil(t, err)

		rooms, err := store.ListRooms(ctx)
		require.Nil(t, err)
		assert.Empty(t, rooms)
	})

	t.Run("delete nonexistent room", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryRoomStore()

		err := store.DeleteRoom(ctx, "missing")
		assert.Equal(t, ErrRoomNotFound, err)
	})
}

func TestMemoryRoomStore_Seed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRoomStore()
	store.Seed(DefaultRooms()...)

	rooms, err := store.ListRooms(ctx)
	require.Nil(t, err)
	require.Len(t, rooms, 3)

	counts := make(map[string]int)
	for _, room := range rooms {
		counts[room.ID] = room.UserCount
	}
	assert.Equal(t, map[string]int{"room1": 5, "room2": 3, "room3": 8}, counts)
}
