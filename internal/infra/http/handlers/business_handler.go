package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type BusinessHandler struct {
	Repo  entity.BusinessRepositoryInterface
	Store usecase.PipelineStore
}

func NewBusinessHandler(repo entity.BusinessRepositoryInterface, store usecase.PipelineStore) *BusinessHandler {
	return &BusinessHandler{Repo: repo, Store: store}
}

func (h *BusinessHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	items, err := h.Repo.List(r.Context(), owner)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}
	if items == nil {
		items = []entity.Business{}
	}

	writeJSON(w, http.StatusOK, items)
}

type importRequest struct {
	Businesses []entity.Business `json:"businesses"`
}

// HandleImport recebe o lote já mapeado pelo importador de planilha (a UI
// de mapeamento de campos é colaborador externo).
func (h *BusinessHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Businesses) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "VALIDATION_ERROR", Message: "lote vazio"})
		return
	}

	for i := range req.Businesses {
		if req.Businesses[i].Source == "" {
			req.Businesses[i].Source = entity.SourceDirectory
		}
		if len(req.Businesses[i].Emails) > entity.MaxBusinessEmails {
			req.Businesses[i].Emails = req.Businesses[i].Emails[:entity.MaxBusinessEmails]
		}
	}

	if err := h.Repo.UpsertMany(r.Context(), owner, req.Businesses); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": len(req.Businesses)})
}

type toggleStarRequest struct {
	Kind entity.StarKind `json:"kind"`
}

func (h *BusinessHandler) HandleToggleStar(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	businessID := chi.URLParam(r, "id")

	var req toggleStarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Kind.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "VALIDATION_ERROR", Message: "kind deve ser directory ou external"})
		return
	}

	starred, err := h.Store.ToggleStar(r.Context(), owner, businessID, req.Kind)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	middleware.RecordStarToggle(string(req.Kind))
	writeJSON(w, http.StatusOK, map[string]bool{"starred": starred})
}

func (h *BusinessHandler) HandleGetThread(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	businessID := chi.URLParam(r, "id")

	threads, err := h.Store.Threads(r.Context(), owner)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	thread := threads[businessID]
	if thread == nil {
		thread = entity.EmailThread{}
	}
	writeJSON(w, http.StatusOK, thread)
}
