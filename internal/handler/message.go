package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shark/internal/service"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func chatIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "chatId"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	chatID, ok := chatIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	messages, err := h.svc.List(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			writeError(w, http.StatusNotFound, "chat not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type sendMessageRequest struct {
	Mine bool   `json:"mine"`
	Text string `json:"text"`
}

// SendMessage persists the message and pushes it to every live WebSocket
// connection. The response carries the stored row (status "Sent").
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, ok := chatIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	req := sendMessageRequest{Mine: true}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	msg, err := h.svc.Send(r.Context(), chatID, req.Mine, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatNotFound):
			writeError(w, http.StatusNotFound, "chat not found")
		case errors.Is(err, service.ErrEmptyText):
			writeError(w, http.StatusBadRequest, "text required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to send message")
		}
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
