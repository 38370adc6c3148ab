package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// UpdateLeadStatusUseCase move um card do Kanban para qualquer coluna exceto
// "won" — fechamento de venda passa obrigatoriamente pelo MarkLeadWonUseCase,
// que exige o preço final. Transições para trás (ex: lost -> negotiating) são
// permitidas; o rastro fica na tabela de eventos.
type UpdateLeadStatusUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Events entity.LeadEventRepositoryInterface
	Guard  *repository.Guard
}

func NewUpdateLeadStatusUseCase(
	repo entity.LeadRepositoryInterface,
	events entity.LeadEventRepositoryInterface,
	guard *repository.Guard,
) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Repo: repo, Events: events, Guard: guard}
}

type UpdateLeadStatusOutput struct {
	Lead      *entity.Lead `json:"lead"`
	Changed   bool         `json:"changed"`
	LocalOnly bool         `json:"local_only,omitempty"`
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, leadID, target string) (*UpdateLeadStatusOutput, error) {
	if !entity.IsValidStatus(target) {
		return nil, &TransitionError{
			Code:    "INVALID_STATUS",
			Message: "status deve ser new, contacted, negotiating, won ou lost",
		}
	}

	// A única ramificação de verdade da máquina de estados: mover para won
	// sem preço final não existe. O painel redireciona para o win wizard.
	if target == entity.StatusWon {
		return nil, &TransitionError{
			Code:    "WIN_PRICE_REQUIRED",
			Message: "fechar como won exige o preço final da venda",
		}
	}

	lead, err := uc.Repo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &TransitionError{
				Code:    "LEAD_NOT_FOUND",
				Message: "lead não existe mais — recarregue o funil",
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao buscar lead: " + err.Error(),
		}
	}

	from := entity.NormalizeStatus(lead.Status)
	if from == target {
		// Soltar o card na própria coluna. Nada a fazer.
		return &UpdateLeadStatusOutput{Lead: lead, Changed: false}, nil
	}

	// Reflete a transição no struct antes de gravar: é esse retrato que vai
	// para o store local se o remoto estiver fora.
	now := time.Now()
	lead.Status = target
	lead.UpdatedAt = now
	lead.FinalSalePrice = nil
	lead.Salesperson = ""
	lead.SaleNotes = ""
	if target == entity.StatusLost {
		lead.ClosedAt = &now
	} else {
		lead.ClosedAt = nil
	}

	outcome, err := uc.write(ctx, lead, func(c context.Context) error {
		return uc.Repo.UpdateStatus(c, leadID, target)
	})
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &TransitionError{
				Code:    "LEAD_NOT_FOUND",
				Message: "lead não existe mais — recarregue o funil",
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao mover lead: " + err.Error(),
		}
	}

	uc.recordEvent(ctx, lead.ID, from, target)
	middleware.RecordTransition(from, target)

	return &UpdateLeadStatusOutput{
		Lead:      lead,
		Changed:   true,
		LocalOnly: outcome.LocalOnly,
	}, nil
}

func (uc *UpdateLeadStatusUseCase) write(ctx context.Context, lead *entity.Lead, remote func(context.Context) error) (repository.Outcome, error) {
	if uc.Guard == nil {
		return repository.Outcome{}, remote(ctx)
	}
	return uc.Guard.Write(ctx, repository.FamilyLeads, lead, lead.ID, remote)
}

// recordEvent é best-effort: auditoria não pode derrubar a transição.
func (uc *UpdateLeadStatusUseCase) recordEvent(ctx context.Context, leadID, from, to string) {
	if uc.Events == nil {
		return
	}
	ev := &entity.LeadEvent{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		FromStatus: from,
		ToStatus:   to,
		CreatedAt:  time.Now(),
	}
	if err := uc.Events.Record(ctx, ev); err != nil {
		log.Printf("⚠️ Falha ao gravar evento de transição (%s: %s -> %s): %v", leadID, from, to, err)
	}
}
