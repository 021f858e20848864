package guestchat

import (
	"encoding/json"
	"net/http"

	"example.com/guestchat/core"
	"example.com/guestchat/pkg/router"
)

type MessageHandler struct {
	messageStore core.MessageStore
}

func NewMessageHandler(messageStore core.MessageStore) *MessageHandler {
	return &MessageHandler{messageStore: messageStore}
}

type ListMessagesResponse struct {
	Messages []core.Message `json:"messages"`
	Users    []string       `json:"users"`
}

type CreateMessageResponse struct {
	Message *core.Message `json:"message"`
	Success bool          `json:"success"`
}

type DeleteMessageResponse struct {
	Success bool `json:"success"`
}

func (h *MessageHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) error {
	roomID := r.URL.Query().Get("roomId")
	if roomID == "" {
		return router.NewJsonError(http.StatusBadRequest, "Room ID is required")
	}

	messages, err := h.messageStore.RoomMessages(r.Context(), roomID)
	if err != nil {
		return err
	}
	users, err := h.messageStore.RoomUsers(r.Context(), roomID)
	if err != nil {
		return err
	}

	// an unknown room reads as empty collections, never an error
	if messages == nil {
		messages = []core.Message{}
	}
	if users == nil {
		users = []string{}
	}

	return writeJSON(w, http.StatusOK, ListMessagesResponse{Messages: messages, Users: users})
}

func (h *MessageHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) error {
	var payload core.MessageCreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return router.NewJsonError(http.StatusBadRequest, "Invalid request body")
	}
	r.Body.Close()

	if err := payload.Validate(); err != nil {
		return router.NewJsonError(http.StatusBadRequest, "Text, sender, and roomId are required")
	}

	message, err := h.messageStore.AppendMessage(r.Context(), payload)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, CreateMessageResponse{Message: message, Success: true})
}

func (h *MessageHandler) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	roomID := query.Get("roomId")
	messageID := query.Get("messageId")
	if roomID == "" || messageID == "" {
		return router.NewJsonError(http.StatusBadRequest, "Room ID and Message ID are required")
	}

	if err := h.messageStore.DeleteMessage(r.Context(), roomID, messageID); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, DeleteMessageResponse{Success: true})
}
