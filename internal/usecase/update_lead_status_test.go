package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

func TestUpdateLeadStatus_StatusInvalido(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadStatusUseCase(repo, nil, nil)

	out, err := uc.Execute(context.Background(), "lead-1", "arquivado")

	assert.Nil(t, out)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, "INVALID_STATUS", err.(*TransitionError).Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateLeadStatus_WonExigeWizard(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadStatusUseCase(repo, nil, nil)

	out, err := uc.Execute(context.Background(), "lead-1", entity.StatusWon)

	assert.Nil(t, out)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, "WIN_PRICE_REQUIRED", err.(*TransitionError).Code)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatus_LeadSumiu(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "fantasma").Return(nil, entity.ErrLeadNotFound)

	uc := NewUpdateLeadStatusUseCase(repo, nil, nil)
	out, err := uc.Execute(context.Background(), "fantasma", entity.StatusContacted)

	assert.Nil(t, out)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, "LEAD_NOT_FOUND", err.(*TransitionError).Code)
}

func TestUpdateLeadStatus_MesmaColunaNaoEscreve(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := makeLead("lead-1", entity.StatusContacted, nil, time.Now())
	repo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)

	uc := NewUpdateLeadStatusUseCase(repo, nil, nil)
	out, err := uc.Execute(context.Background(), "lead-1", entity.StatusContacted)

	assert.NoError(t, err)
	assert.False(t, out.Changed)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatus_SairDeWonLimpaVenda(t *testing.T) {
	repo := new(MockLeadRepository)
	events := new(MockLeadEventRepository)

	price := 999.0
	closedAt := time.Now().AddDate(0, 0, -1)
	lead := makeLead("lead-1", entity.StatusWon, nil, time.Now().AddDate(0, 0, -10))
	lead.FinalSalePrice = &price
	lead.Salesperson = "Carlos"
	lead.SaleNotes = "pedido grande"
	lead.ClosedAt = &closedAt

	repo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	repo.On("UpdateStatus", mock.Anything, "lead-1", entity.StatusNegotiating).Return(nil)
	events.On("Record", mock.Anything, mock.Anything).Return(nil)

	uc := NewUpdateLeadStatusUseCase(repo, events, nil)
	out, err := uc.Execute(context.Background(), "lead-1", entity.StatusNegotiating)

	assert.NoError(t, err)
	assert.True(t, out.Changed)
	// Invariante: preço de venda só existe em won, closed_at só em won/lost.
	assert.Nil(t, out.Lead.FinalSalePrice)
	assert.Empty(t, out.Lead.Salesperson)
	assert.Empty(t, out.Lead.SaleNotes)
	assert.Nil(t, out.Lead.ClosedAt)

	events.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(ev *entity.LeadEvent) bool {
		return ev.FromStatus == entity.StatusWon && ev.ToStatus == entity.StatusNegotiating
	}))
}

func TestUpdateLeadStatus_LostGanhaClosedAt(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := makeLead("lead-1", entity.StatusNegotiating, nil, time.Now())

	repo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	repo.On("UpdateStatus", mock.Anything, "lead-1", entity.StatusLost).Return(nil)

	uc := NewUpdateLeadStatusUseCase(repo, nil, nil)
	out, err := uc.Execute(context.Background(), "lead-1", entity.StatusLost)

	assert.NoError(t, err)
	assert.NotNil(t, out.Lead.ClosedAt)
	assert.Nil(t, out.Lead.FinalSalePrice)
}

func TestUpdateLeadStatus_AuditoriaNaoDerrubaTransicao(t *testing.T) {
	repo := new(MockLeadRepository)
	events := new(MockLeadEventRepository)
	lead := makeLead("lead-1", entity.StatusNew, nil, time.Now())

	repo.On("FindByID", mock.Anything, "lead-1").Return(lead, nil)
	repo.On("UpdateStatus", mock.Anything, "lead-1", entity.StatusContacted).Return(nil)
	events.On("Record", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := NewUpdateLeadStatusUseCase(repo, events, nil)
	out, err := uc.Execute(context.Background(), "lead-1", entity.StatusContacted)

	assert.NoError(t, err)
	assert.True(t, out.Changed)
}
