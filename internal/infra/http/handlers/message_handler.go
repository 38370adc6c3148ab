package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// MessageHandler é a caixa de entrada do painel: contatos, sugestões e
// candidaturas recebidas pelos formulários públicos.
type MessageHandler struct {
	Repo  entity.MessageRepositoryInterface
	Guard *repository.Guard
}

func NewMessageHandler(repo entity.MessageRepositoryInterface, guard *repository.Guard) *MessageHandler {
	return &MessageHandler{Repo: repo, Guard: guard}
}

// HandleList (GET /admin/messages?kind=contact|suggestion|application)
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	kind := r.URL.Query().Get("kind")
	if kind != "" && !entity.IsValidMessageKind(kind) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_KIND",
			"kind deve ser contact, suggestion ou application")
		return
	}

	items, total, err := h.Repo.List(r.Context(), page, perPage, kind)
	if err != nil {
		if records, ok := h.Guard.ReadFallback(repository.FamilyMessages, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{Items: items, Total: total, Page: page, PerPage: perPage})
}

// HandleMarkRead (POST /admin/messages/{id}/read)
func (h *MessageHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.MarkRead(r.Context(), id); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"read": true})
}

// HandleDelete (DELETE /admin/messages/{id})
func (h *MessageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome, err := h.Guard.Delete(r.Context(), repository.FamilyMessages, id, func(c context.Context) error {
		return h.Repo.Delete(c, id)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "local_only": outcome.LocalOnly})
}
