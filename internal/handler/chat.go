package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shark/internal/model"
	"github.com/shark/internal/repository"
)

type ChatHandler struct {
	repo *repository.ChatRepository
}

func NewChatHandler(repo *repository.ChatRepository) *ChatHandler {
	return &ChatHandler{repo: repo}
}

func (h *ChatHandler) GetChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get chats")
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

type createChatRequest struct {
	Kind     model.ChatKind `json:"kind"`
	Title    string         `json:"title"`
	Verified bool           `json:"verified"`
}

// CreateChat creates a chat or returns the existing one with the same kind
// and title (case-insensitive). Repeating the call is safe.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	switch req.Kind {
	case model.ChatKindDirect, model.ChatKindGroup, model.ChatKindChannel:
	default:
		writeError(w, http.StatusBadRequest, "invalid kind")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	chat, err := h.repo.GetOrCreate(r.Context(), req.Kind, title, req.Verified)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}
	writeJSON(w, http.StatusOK, chat)
}
