package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

func wonLead(id string, price float64, closedAt time.Time) *entity.Lead {
	return &entity.Lead{
		ID:             id,
		ClientName:     "Cliente " + id,
		Status:         entity.StatusWon,
		FinalSalePrice: &price,
		ClosedAt:       &closedAt,
	}
}

func TestComputeLedger_TotaisDoMes(t *testing.T) {
	repo := new(MockLeadRepository)
	now := time.Now()

	deals := []*entity.Lead{
		wonLead("a", 100, now),
		wonLead("b", 200, now),
		wonLead("c", 300, now),
	}
	repo.On("ListWon", mock.Anything, mock.Anything, mock.Anything).Return(deals, nil)
	repo.On("CountAll", mock.Anything).Return(30, nil)

	uc := NewComputeLedgerUseCase(repo)
	out, err := uc.Execute(context.Background(), PeriodThisMonth)

	assert.NoError(t, err)
	assert.Equal(t, 600.0, out.TotalRevenue)
	assert.Equal(t, 3, out.TotalDeals)
	assert.Equal(t, 200.0, out.AvgDeal)
	// 3 vendas sobre 30 leads de todos os tempos.
	assert.Equal(t, 10.0, out.ConversionRate)
}

func TestComputeLedger_FunilVazioNaoDivideporZero(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListWon", mock.Anything, mock.Anything, mock.Anything).Return([]*entity.Lead{}, nil)
	repo.On("CountAll", mock.Anything).Return(0, nil)

	uc := NewComputeLedgerUseCase(repo)
	out, err := uc.Execute(context.Background(), PeriodAll)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, out.TotalRevenue)
	assert.Equal(t, 0, out.TotalDeals)
	assert.Equal(t, 0.0, out.AvgDeal)
	assert.Equal(t, 0.0, out.ConversionRate)
	assert.NotNil(t, out.Deals)
}

func TestComputeLedger_PeriodoInvalido(t *testing.T) {
	repo := new(MockLeadRepository)

	uc := NewComputeLedgerUseCase(repo)
	out, err := uc.Execute(context.Background(), "ontem")

	assert.Nil(t, out)
	assert.True(t, IsDomainError(err))
}

func TestPeriodBounds_LastMonth(t *testing.T) {
	// 15 de março: last-month = [1 fev, 1 mar).
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	from, to := periodBounds(now, PeriodLastMonth)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *to)
}

func TestPeriodBounds_LastMonthVirandoAno(t *testing.T) {
	// Janeiro: last-month é dezembro do ano anterior.
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	from, to := periodBounds(now, PeriodLastMonth)

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *to)
}

func TestPeriodBounds_AllSemLimites(t *testing.T) {
	from, to := periodBounds(time.Now(), PeriodAll)

	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestPeriodBounds_ThisYear(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	from, to := periodBounds(now, PeriodThisYear)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Nil(t, to)
}

func TestLedgerOutput_WriteCSV(t *testing.T) {
	closedAt := time.Date(2026, time.July, 3, 14, 30, 0, 0, time.UTC)
	price := 1250.50

	out := &LedgerOutput{
		Deals: []*entity.Lead{
			{
				ID:              "lead-1",
				ClientName:      "Maria",
				ClientCompany:   "Loja da Maria",
				ProductInterest: "camisetas",
				Quantity:        300,
				FinalSalePrice:  &price,
				Salesperson:     "Carlos",
				ClosedAt:        &closedAt,
			},
		},
	}

	var buf bytes.Buffer
	err := out.WriteCSV(&buf)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "id,client_name,client_company,product_interest,quantity,final_sale_price,salesperson,closed_at", lines[0])
	assert.Contains(t, lines[1], "1250.50")
	assert.Contains(t, lines[1], "2026-07-03T14:30:00Z")
}
