package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/queue"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// SubmitMessageUseCase atende os formulários de contato, sugestão e
// candidatura a vaga. Os três viram registros na mesma tabela de mensagens,
// diferenciados pelo kind.
type SubmitMessageUseCase struct {
	Messages entity.MessageRepositoryInterface
	Jobs     entity.JobRepositoryInterface
	Guard    *repository.Guard
	Queue    QueueProducerInterface
}

func NewSubmitMessageUseCase(
	messages entity.MessageRepositoryInterface,
	jobs entity.JobRepositoryInterface,
	guard *repository.Guard,
	producer QueueProducerInterface,
) *SubmitMessageUseCase {
	return &SubmitMessageUseCase{Messages: messages, Jobs: jobs, Guard: guard, Queue: producer}
}

type SubmitMessageInput struct {
	Kind    string `json:"-"`
	JobID   string `json:"-"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Content string `json:"content"`
}

type SubmitMessageOutput struct {
	ID        string `json:"id"`
	Msg       string `json:"msg"`
	LocalOnly bool   `json:"local_only,omitempty"`
}

func (uc *SubmitMessageUseCase) Execute(ctx context.Context, input SubmitMessageInput) (*SubmitMessageOutput, error) {
	validationErrors := ValidateMessageInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	message, err := entity.NewMessage(input.Kind, input.Name, input.Email, input.Phone, input.Content)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	// Candidatura precisa apontar para uma vaga que existe e está aberta.
	if input.Kind == entity.MessageKindApplication {
		job, err := uc.Jobs.FindByID(ctx, input.JobID)
		if err != nil {
			if errors.Is(err, entity.ErrJobNotFound) {
				return nil, &DomainError{
					Code:    "JOB_NOT_FOUND",
					Message: "vaga não encontrada",
				}
			}
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "falha ao validar vaga: " + err.Error(),
			}
		}
		if !job.Active {
			return nil, &DomainError{
				Code:    "JOB_CLOSED",
				Message: "esta vaga não está mais aberta",
			}
		}
		message.JobID = &job.ID
	}

	outcome, err := uc.write(ctx, message)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao registrar mensagem: " + err.Error(),
		}
	}

	middleware.RecordFormSubmission(input.Kind)

	if uc.Queue != nil && !outcome.LocalOnly {
		summary := input.Content
		if len(summary) > 200 {
			summary = summary[:200] + "..."
		}
		payload := queue.NotificationPayload{
			Event:       queue.EventMessageReceived,
			MessageKind: message.Kind,
			MessageFrom: message.Name,
			Summary:     summary,
		}
		if err := uc.Queue.PublishNotification(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar message.received (%s): %v", message.ID, err)
		}
	}

	return &SubmitMessageOutput{
		ID:        message.ID,
		Msg:       "Mensagem recebida, obrigado pelo contato!",
		LocalOnly: outcome.LocalOnly,
	}, nil
}

func (uc *SubmitMessageUseCase) write(ctx context.Context, message *entity.Message) (repository.Outcome, error) {
	if uc.Guard == nil {
		return repository.Outcome{}, uc.Messages.Create(ctx, message)
	}
	return uc.Guard.Write(ctx, repository.FamilyMessages, message, message.ID, func(c context.Context) error {
		return uc.Messages.Create(c, message)
	})
}
