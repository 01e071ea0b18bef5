package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type EmailHandler struct {
	Ingest   *usecase.IngestEmailUseCase
	Outreach *usecase.SendOutreachUseCase
}

func NewEmailHandler(ingest *usecase.IngestEmailUseCase, outreach *usecase.SendOutreachUseCase) *EmailHandler {
	return &EmailHandler{Ingest: ingest, Outreach: outreach}
}

// HandleListUnmatched expõe o filtro de e-mails sem dono.
func (h *EmailHandler) HandleListUnmatched(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	records, err := h.Ingest.ListUnmatched(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []entity.EmailRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// HandleRematch reprocessa os sem-dono contra a lista atual de negócios.
// Disparo sempre manual.
func (h *EmailHandler) HandleRematch(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	matched, err := h.Ingest.Rematch(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"matched": matched})
}

func (h *EmailHandler) HandleSendOutreach(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var input usecase.SendOutreachInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.OwnerID = owner

	output, err := h.Outreach.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
