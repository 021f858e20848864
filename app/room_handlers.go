package guestchat

import (
	"encoding/json"
	"net/http"

	"example.com/guestchat/core"
	"example.com/guestchat/pkg/router"
)

type RoomHandler struct {
	roomStore core.RoomStore
}

func NewRoomHandler(roomStore core.RoomStore) *RoomHandler {
	return &RoomHandler{roomStore: roomStore}
}

type CreateRoomPayload struct {
	Name string `json:"name" validate:"required"`
	// ID is optional; the store generates one when it is omitted.
	ID string `json:"id"`
}

type ListRoomsResponse struct {
	Rooms []core.Room `json:"rooms"`
}

type CreateRoomResponse struct {
	Room    *core.Room `json:"room"`
	Success bool       `json:"success"`
}

type DeleteRoomResponse struct {
	Success bool `json:"success"`
}

func (h *RoomHandler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) error {
	rooms, err := h.roomStore.ListRooms(r.Context())
	if err != nil {
		return err
	}

	if rooms == nil {
		rooms = []core.Room{}
	}

	return writeJSON(w, http.StatusOK, ListRoomsResponse{Rooms: rooms})
}

func (h *RoomHandler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) error {
	var payload CreateRoomPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return router.NewJsonError(http.StatusBadRequest, "Invalid request body")
	}
	r.Body.Close()

	if err := validate.Struct(payload); err != nil {
		return router.NewJsonError(http.StatusBadRequest, "Room name is required")
	}

	room, err := h.roomStore.CreateRoom(r.Context(), payload.Name, payload.ID)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, CreateRoomResponse{Room: room, Success: true})
}

func (h *RoomHandler) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) error {
	roomID := r.URL.Query().Get("roomId")
	if roomID == "" {
		return router.NewJsonError(http.StatusBadRequest, "Room ID is required")
	}

	if err := h.roomStore.DeleteRoom(r.Context(), roomID); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, DeleteRoomResponse{Success: true})
}
