package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/database"
	"github.com/confexa/confexa-backoffice/internal/infra/localstore"
	"github.com/confexa/confexa-backoffice/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// PagedResponse embrulha listas paginadas do catálogo e do painel.
type PagedResponse struct {
	Items   any    `json:"items"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Mode    string `json:"mode,omitempty"` // "local-only" em modo degradado
}

// writeDegraded responde uma leitura servida do store local. O campo mode
// avisa o painel para mostrar o banner de modo degradado.
func writeDegraded(w http.ResponseWriter, records []localstore.Record) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": records,
		"total": len(records),
		"mode":  "local-only",
	})
}

// writeUseCaseError traduz a taxonomia de erro dos usecases para HTTP.
// Nada aqui é fatal: toda falha vira notificação e o painel recarrega.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *usecase.TransitionError:
		status := http.StatusBadRequest
		switch e.Code {
		case "LEAD_NOT_FOUND":
			status = http.StatusNotFound
		case "WIN_PRICE_REQUIRED":
			status = http.StatusUnprocessableEntity
		}
		writeErrorResponse(w, status, e.Code, e.Message)

	case *usecase.DomainError:
		status := http.StatusBadRequest
		switch e.Code {
		case "JOB_NOT_FOUND":
			status = http.StatusNotFound
		case "JOB_CLOSED":
			status = http.StatusConflict
		}
		writeErrorResponse(w, status, e.Code, e.Message)

	case *usecase.TechnicalError:
		log.Printf("❌ Erro técnico: %s", e.Message)
		writeErrorResponse(w, http.StatusInternalServerError, e.Code, "Erro interno, tente novamente")

	default:
		if database.IsPermissionDenied(err) {
			writePermissionDenied(w)
			return
		}
		if isNotFound(err) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		if database.IsDuplicate(err) {
			writeErrorResponse(w, http.StatusConflict, "DUPLICATE", "Registro duplicado")
			return
		}
		log.Printf("❌ Erro inesperado: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno, tente novamente")
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		entity.ErrLeadNotFound,
		entity.ErrNewsNotFound,
		entity.ErrJobNotFound,
		entity.ErrProductNotFound,
		entity.ErrShowroomItemNotFound,
		entity.ErrMessageNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// writePermissionDenied: mensagem amigável e distinta. Negação de acesso
// nunca dispara fallback local.
func writePermissionDenied(w http.ResponseWriter) {
	writeErrorResponse(w, http.StatusForbidden, "PERMISSION_DENIED",
		"Seu usuário não tem permissão para esta operação")
}
