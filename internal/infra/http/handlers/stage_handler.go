package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type StageHandler struct {
	Pipeline *usecase.StagePipeline
}

func NewStageHandler(pipeline *usecase.StagePipeline) *StageHandler {
	return &StageHandler{Pipeline: pipeline}
}

type setStageRequest struct {
	Stage entity.Stage `json:"stage"`
}

func (h *StageHandler) HandleSetStage(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	businessID := chi.URLParam(r, "id")

	var req setStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Pipeline.SetStage(r.Context(), owner, businessID, req.Stage); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordStageTransition(string(req.Stage))
	writeJSON(w, http.StatusOK, entity.StageAssignment{BusinessID: businessID, Stage: req.Stage})
}

func (h *StageHandler) HandleGetStage(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	businessID := chi.URLParam(r, "id")

	stage, err := h.Pipeline.StageOf(r.Context(), owner, businessID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity.StageAssignment{BusinessID: businessID, Stage: stage})
}

func (h *StageHandler) HandleListStages(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	assignments, err := h.Pipeline.All(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assignments)
}
