package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError mapeia a taxonomia de erros dos usecases para HTTP.
// NO_LOCAL_DATA vira 409 para o front distinguir de falha real de migração.
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Code: "INTERNAL_ERROR", Message: err.Error()}
	status := http.StatusInternalServerError

	switch e := err.(type) {
	case *usecase.DomainError:
		resp.Code = e.Code
		switch e.Code {
		case "NO_LOCAL_DATA":
			status = http.StatusConflict
		case "UNKNOWN_BUSINESS":
			status = http.StatusNotFound
		default:
			status = http.StatusBadRequest
		}
	case *usecase.TechnicalError:
		resp.Code = e.Code
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ownerID lê o dono da sessão. Autenticação real fica no gateway na frente;
// aqui só exigimos o header.
func ownerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := ownerID(r)
	if owner == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Code:    "MISSING_USER",
			Message: "header X-User-ID é obrigatório",
		})
		return "", false
	}
	return owner, true
}
