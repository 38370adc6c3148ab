package usecase

import (
	"context"
	"log"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/queue"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// Pedido a partir dessa quantidade já entra marcado como alto potencial.
const highPotentialQuantity = 500

// SubmitQuoteUseCase recebe o formulário de orçamento do site e abre o lead
// no funil (coluna "new").
type SubmitQuoteUseCase struct {
	Leads entity.LeadRepositoryInterface
	Guard *repository.Guard
	Queue QueueProducerInterface
}

func NewSubmitQuoteUseCase(
	leads entity.LeadRepositoryInterface,
	guard *repository.Guard,
	producer QueueProducerInterface,
) *SubmitQuoteUseCase {
	return &SubmitQuoteUseCase{Leads: leads, Guard: guard, Queue: producer}
}

type SubmitQuoteInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	ProductInterest string `json:"product_interest"`
	Quantity        int    `json:"quantity"`
	Message         string `json:"message"`
	Wholesale       bool   `json:"wholesale"`
}

type SubmitQuoteOutput struct {
	ID        string `json:"id"`
	Msg       string `json:"msg"`
	LocalOnly bool   `json:"local_only,omitempty"`
}

func (uc *SubmitQuoteUseCase) Execute(ctx context.Context, input SubmitQuoteInput) (*SubmitQuoteOutput, error) {
	validationErrors := ValidateQuoteInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	var tags []string
	if input.Wholesale {
		tags = append(tags, entity.TagWholesale)
	}
	if input.Quantity >= highPotentialQuantity {
		tags = append(tags, entity.TagHighPotential)
	}

	lead, err := entity.NewLead(
		input.Name, input.Email, input.Phone, input.Company,
		input.ProductInterest, input.Quantity, input.Message, tags,
	)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	outcome, err := uc.write(ctx, lead)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao registrar orçamento: " + err.Error(),
		}
	}

	middleware.RecordFormSubmission("quote")

	// Aviso ao comercial é best-effort.
	if uc.Queue != nil && !outcome.LocalOnly {
		payload := queue.NotificationPayload{
			Event:           queue.EventLeadCaptured,
			LeadID:          lead.ID,
			ClientName:      lead.ClientName,
			ClientEmail:     lead.ClientEmail,
			ClientCompany:   lead.ClientCompany,
			ProductInterest: lead.ProductInterest,
			Quantity:        lead.Quantity,
		}
		if err := uc.Queue.PublishNotification(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar lead.captured para %s: %v", lead.ID, err)
		}
	}

	msg := "Orçamento recebido! Nossa equipe comercial entra em contato em breve."
	return &SubmitQuoteOutput{
		ID:        lead.ID,
		Msg:       msg,
		LocalOnly: outcome.LocalOnly,
	}, nil
}

func (uc *SubmitQuoteUseCase) write(ctx context.Context, lead *entity.Lead) (repository.Outcome, error) {
	if uc.Guard == nil {
		return repository.Outcome{}, uc.Leads.Create(ctx, lead)
	}
	return uc.Guard.Write(ctx, repository.FamilyLeads, lead, lead.ID, func(c context.Context) error {
		return uc.Leads.Create(c, lead)
	})
}
