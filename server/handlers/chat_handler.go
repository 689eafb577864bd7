package handlers

import (
	"net/http"

	"review-explorer/models"
	services "review-explorer/service"
)

// ChatRequest is the body of POST /v1/places/current/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatHandler struct {
	controllers ControllerSource
	chat        *services.ChatService
}

func NewChatHandler(controllers ControllerSource, chat *services.ChatService) *ChatHandler {
	return &ChatHandler{controllers: controllers, chat: chat}
}

// GetGreeting returns the assistant's opening message for the current place.
func (h *ChatHandler) GetGreeting(w http.ResponseWriter, r *http.Request) {
	place, err := currentPlace(h.controllers, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, []models.ChatMessage{h.chat.Greeting(place)})
}

// PostMessage answers a question about the current place.
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	place, err := currentPlace(h.controllers, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	messages, err := h.chat.Reply(place, req.Message)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}
