package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
	"github.com/confexa/confexa-backoffice/internal/usecase"
)

// PipelineHandler é o Kanban do painel: carregar colunas, arrastar cards,
// fechar vendas e apagar leads.
type PipelineHandler struct {
	LoadUC   *usecase.LoadPipelineUseCase
	UpdateUC *usecase.UpdateLeadStatusUseCase
	WinUC    *usecase.MarkLeadWonUseCase
	Leads    entity.LeadRepositoryInterface
	Events   entity.LeadEventRepositoryInterface
	Guard    *repository.Guard
}

func NewPipelineHandler(
	loadUC *usecase.LoadPipelineUseCase,
	updateUC *usecase.UpdateLeadStatusUseCase,
	winUC *usecase.MarkLeadWonUseCase,
	leads entity.LeadRepositoryInterface,
	events entity.LeadEventRepositoryInterface,
	guard *repository.Guard,
) *PipelineHandler {
	return &PipelineHandler{
		LoadUC:   loadUC,
		UpdateUC: updateUC,
		WinUC:    winUC,
		Leads:    leads,
		Events:   events,
		Guard:    guard,
	}
}

// HandleLoad (GET /admin/pipeline?filter=all|vip|wholesale|this-week)
func (h *PipelineHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	output, err := h.LoadUC.Execute(r.Context(), filter)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeUseCaseError(w, err)
			return
		}
		// Remoto fora do ar: serve a cópia local em modo degradado.
		if records, ok := h.Guard.ReadFallback(repository.FamilyLeads, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleUpdateStatus (PATCH /admin/leads/{id}/status)
func (h *PipelineHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var body struct {
		LeadStatus string `json:"lead_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.UpdateUC.Execute(r.Context(), leadID, body.LeadStatus)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleWin (POST /admin/leads/{id}/win) — o win wizard. Sem preço positivo
// não tem won.
func (h *PipelineHandler) HandleWin(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var input usecase.MarkLeadWonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	input.LeadID = leadID

	output, err := h.WinUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleDelete (DELETE /admin/leads/{id})
func (h *PipelineHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	outcome, err := h.Guard.Delete(r.Context(), repository.FamilyLeads, leadID, func(c context.Context) error {
		return h.Leads.Delete(c, leadID)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":    true,
		"local_only": outcome.LocalOnly,
	})
}

// HandleEvents (GET /admin/leads/{id}/events) — trilha de auditoria do card.
func (h *PipelineHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	events, err := h.Events.ListByLead(r.Context(), leadID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	if events == nil {
		events = []*entity.LeadEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
