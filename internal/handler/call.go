package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shark/internal/model"
	"github.com/shark/internal/repository"
)

type CallHandler struct {
	repo *repository.CallLogRepository
}

func NewCallHandler(repo *repository.CallLogRepository) *CallHandler {
	return &CallHandler{repo: repo}
}

func (h *CallHandler) GetCallLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get call logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type addCallLogRequest struct {
	Name      string              `json:"name"`
	Type      model.CallType      `json:"type"`
	Direction model.CallDirection `json:"direction"`
	Time      string              `json:"time"`
}

func (h *CallHandler) AddCallLog(w http.ResponseWriter, r *http.Request) {
	var req addCallLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	switch req.Type {
	case model.CallTypeVoice, model.CallTypeVideo:
	default:
		writeError(w, http.StatusBadRequest, "invalid type")
		return
	}
	switch req.Direction {
	case model.CallIncoming, model.CallOutgoing, model.CallMissed:
	default:
		writeError(w, http.StatusBadRequest, "invalid direction")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	cl := &model.CallLog{Name: req.Name, Type: req.Type, Direction: req.Direction, Time: req.Time}
	if err := h.repo.Create(r.Context(), cl); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add call log")
		return
	}
	writeJSON(w, http.StatusOK, cl)
}
