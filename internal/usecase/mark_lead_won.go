package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/queue"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// MarkLeadWonUseCase é o win wizard: a única porta de entrada para o status
// "won". Preço final positivo é obrigatório e validado antes de qualquer
// escrita — sem preço, o status não muda.
type MarkLeadWonUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Events entity.LeadEventRepositoryInterface
	Guard  *repository.Guard
	Queue  QueueProducerInterface
}

func NewMarkLeadWonUseCase(
	repo entity.LeadRepositoryInterface,
	events entity.LeadEventRepositoryInterface,
	guard *repository.Guard,
	producer QueueProducerInterface,
) *MarkLeadWonUseCase {
	return &MarkLeadWonUseCase{Repo: repo, Events: events, Guard: guard, Queue: producer}
}

type MarkLeadWonInput struct {
	LeadID         string  `json:"-"`
	FinalSalePrice float64 `json:"final_sale_price"`
	Salesperson    string  `json:"salesperson"`
	SaleNotes      string  `json:"sale_notes"`
}

type MarkLeadWonOutput struct {
	Lead      *entity.Lead `json:"lead"`
	LocalOnly bool         `json:"local_only,omitempty"`
}

func (uc *MarkLeadWonUseCase) Execute(ctx context.Context, input MarkLeadWonInput) (*MarkLeadWonOutput, error) {
	if input.FinalSalePrice <= 0 {
		return nil, &TransitionError{
			Code:    "WIN_PRICE_REQUIRED",
			Message: "preço final da venda deve ser maior que zero",
		}
	}

	lead, err := uc.Repo.FindByID(ctx, input.LeadID)
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

	now := time.Now()
	price := input.FinalSalePrice
	lead.Status = entity.StatusWon
	lead.FinalSalePrice = &price
	lead.Salesperson = input.Salesperson
	lead.SaleNotes = input.SaleNotes
	lead.ClosedAt = &now
	lead.UpdatedAt = now

	saleClose := entity.SaleClose{
		FinalSalePrice: input.FinalSalePrice,
		Salesperson:    input.Salesperson,
		SaleNotes:      input.SaleNotes,
	}

	outcome, err := uc.write(ctx, lead, func(c context.Context) error {
		return uc.Repo.MarkWon(c, input.LeadID, saleClose)
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
			Message: "falha ao fechar venda: " + err.Error(),
		}
	}

	uc.recordEvent(ctx, lead.ID, from)
	middleware.RecordTransition(from, entity.StatusWon)
	middleware.RecordDealWon()

	// Aviso ao comercial é best-effort: a venda já está fechada no banco.
	if uc.Queue != nil {
		payload := queue.NotificationPayload{
			Event:          queue.EventDealWon,
			LeadID:         lead.ID,
			ClientName:     lead.ClientName,
			ClientCompany:  lead.ClientCompany,
			FinalSalePrice: input.FinalSalePrice,
			Salesperson:    input.Salesperson,
		}
		if err := uc.Queue.PublishNotification(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar deal.won para %s: %v", lead.ID, err)
		}
	}

	return &MarkLeadWonOutput{Lead: lead, LocalOnly: outcome.LocalOnly}, nil
}

func (uc *MarkLeadWonUseCase) write(ctx context.Context, lead *entity.Lead, remote func(context.Context) error) (repository.Outcome, error) {
	if uc.Guard == nil {
		return repository.Outcome{}, remote(ctx)
	}
	return uc.Guard.Write(ctx, repository.FamilyLeads, lead, lead.ID, remote)
}

func (uc *MarkLeadWonUseCase) recordEvent(ctx context.Context, leadID, from string) {
	if uc.Events == nil {
		return
	}
	ev := &entity.LeadEvent{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		FromStatus: from,
		ToStatus:   entity.StatusWon,
		CreatedAt:  time.Now(),
	}
	if err := uc.Events.Record(ctx, ev); err != nil {
		log.Printf("⚠️ Falha ao gravar evento de fechamento (%s): %v", leadID, err)
	}
}
