package handlers

import (
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

// MigrationHandler expõe o bootstrap de sessão: checar se há dados locais
// e rodar a transferência única para o Remote Store.
type MigrationHandler struct {
	Migrate *usecase.MigrateLocalDataUseCase
}

func NewMigrationHandler(migrate *usecase.MigrateLocalDataUseCase) *MigrationHandler {
	return &MigrationHandler{Migrate: migrate}
}

func (h *MigrationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	status, err := h.Migrate.CheckStatus(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *MigrationHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	receipt, err := h.Migrate.Execute(r.Context(), owner)
	if err != nil {
		// "nada para migrar" e "migração falhou" pedem ações diferentes
		// do usuário; o writeError devolve 409 vs 500 com códigos distintos.
		if errors.Is(err, usecase.ErrNoLocalData) {
			middleware.RecordMigrationRun("no_local_data")
		} else {
			middleware.RecordMigrationRun("failed")
		}
		writeError(w, err)
		return
	}

	middleware.RecordMigrationRun("success")
	writeJSON(w, http.StatusOK, receipt)
}
