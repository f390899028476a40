package handler

import (
	"net/http"

	"github.com/shark/internal/repository"
)

type ContactHandler struct {
	repo *repository.ContactRepository
}

func NewContactHandler(repo *repository.ContactRepository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// GetContacts returns the contact list, optionally filtered by ?q= over
// name and username.
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.repo.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get contacts")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}
