package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/queue"
)

func TestMarkLeadWon_PrecoZeroRejeitadoAntesDeQualquerEscrita(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewMarkLeadWonUseCase(repo, nil, nil, nil)

	out, err := uc.Execute(context.Background(), MarkLeadWonInput{
		LeadID:         "lead-1",
		FinalSalePrice: 0,
	})

	assert.Nil(t, out)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, "WIN_PRICE_REQUIRED", err.(*TransitionError).Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkWon", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkLeadWon_PrecoNegativoRejeitado(t *testing.T) {
	uc := NewMarkLeadWonUseCase(new(MockLeadRepository), nil, nil, nil)

	out, err := uc.Execute(context.Background(), MarkLeadWonInput{
		LeadID:         "lead-1",
		FinalSalePrice: -10,
	})

	assert.Nil(t, out)
	assert.Equal(t, "WIN_PRICE_REQUIRED", err.(*TransitionError).Code)
}

func TestMarkLeadWon_FechamentoCompleto(t *testing.T) {
	repo := new(MockLeadRepository)
	events := new(MockLeadEventRepository)
	producer := new(MockQueueProducer)

	lead := makeLead("lead-1", entity.StatusNegotiating, nil, time.Now())
	lead.ClientCompany = "Loja da Maria"

	repo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	repo.On("MarkWon", mock.Anything, "lead-1", entity.SaleClose{
		FinalSalePrice: 4500,
		Salesperson:    "Carlos",
		SaleNotes:      "300 camisetas",
	}).Return(nil)
	events.On("Record", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishNotification", mock.Anything, mock.Anything).Return(nil)

	uc := NewMarkLeadWonUseCase(repo, events, nil, producer)
	out, err := uc.Execute(context.Background(), MarkLeadWonInput{
		LeadID:         "lead-1",
		FinalSalePrice: 4500,
		Salesperson:    "Carlos",
		SaleNotes:      "300 camisetas",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusWon, out.Lead.Status)
	assert.Equal(t, 4500.0, *out.Lead.FinalSalePrice)
	assert.Equal(t, "Carlos", out.Lead.Salesperson)
	assert.NotNil(t, out.Lead.ClosedAt)

	producer.AssertCalled(t, "PublishNotification", mock.Anything, mock.MatchedBy(func(p queue.NotificationPayload) bool {
		return p.Event == queue.EventDealWon && p.FinalSalePrice == 4500
	}))
	events.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(ev *entity.LeadEvent) bool {
		return ev.FromStatus == entity.StatusNegotiating && ev.ToStatus == entity.StatusWon
	}))
}

func TestMarkLeadWon_FilaForaDoArNaoDesfazAVenda(t *testing.T) {
	repo := new(MockLeadRepository)
	producer := new(MockQueueProducer)

	lead := makeLead("lead-1", entity.StatusNegotiating, nil, time.Now())
	repo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	repo.On("MarkWon", mock.Anything, "lead-1", mock.Anything).Return(nil)
	producer.On("PublishNotification", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := NewMarkLeadWonUseCase(repo, nil, nil, producer)
	out, err := uc.Execute(context.Background(), MarkLeadWonInput{
		LeadID:         "lead-1",
		FinalSalePrice: 100,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusWon, out.Lead.Status)
}

func TestMarkLeadWon_LeadSumiu(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "fantasma").Return(nil, entity.ErrLeadNotFound)

	uc := NewMarkLeadWonUseCase(repo, nil, nil, nil)
	out, err := uc.Execute(context.Background(), MarkLeadWonInput{
		LeadID:         "fantasma",
		FinalSalePrice: 100,
	})

	assert.Nil(t, out)
	assert.Equal(t, "LEAD_NOT_FOUND", err.(*TransitionError).Code)
}
