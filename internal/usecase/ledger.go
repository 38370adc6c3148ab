package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

// ComputeLedgerUseCase deriva o relatório de vendas sobre os leads "won":
// receita, número de negócios, ticket médio e taxa de conversão.
type ComputeLedgerUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewComputeLedgerUseCase(repo entity.LeadRepositoryInterface) *ComputeLedgerUseCase {
	return &ComputeLedgerUseCase{Repo: repo}
}

type LedgerOutput struct {
	Period         string         `json:"period"`
	TotalRevenue   float64        `json:"total_revenue"`
	TotalDeals     int            `json:"total_deals"`
	AvgDeal        float64        `json:"avg_deal"`
	ConversionRate float64        `json:"conversion_rate"`
	Deals          []*entity.Lead `json:"deals"`
}

func IsValidPeriod(period string) bool {
	switch period {
	case PeriodAll, PeriodThisMonth, PeriodLastMonth, PeriodThisYear:
		return true
	}
	return false
}

func (uc *ComputeLedgerUseCase) Execute(ctx context.Context, period string) (*LedgerOutput, error) {
	if period == "" {
		period = PeriodAll
	}
	if !IsValidPeriod(period) {
		return nil, &DomainError{
			Code:    "INVALID_PERIOD",
			Message: "período deve ser all, this-month, last-month ou this-year",
		}
	}

	from, to := periodBounds(time.Now(), period)

	deals, err := uc.Repo.ListWon(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// A conversão é calculada contra o volume de leads de TODOS os tempos,
	// não o do período. Assimetria intencional: responde "de tudo que entrou,
	// quanto virou venda".
	totalLeadsEver, err := uc.Repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	var totalRevenue float64
	for _, deal := range deals {
		if deal.FinalSalePrice != nil {
			totalRevenue += *deal.FinalSalePrice
		}
	}

	totalDeals := len(deals)

	// Nunca divide por zero: funil vazio dá relatório zerado, não erro.
	avgDeal := 0.0
	if totalDeals > 0 {
		avgDeal = totalRevenue / float64(totalDeals)
	}

	conversionRate := 0.0
	if totalLeadsEver > 0 {
		conversionRate = roundOneDecimal(float64(totalDeals) / float64(totalLeadsEver) * 100)
	}

	if deals == nil {
		deals = []*entity.Lead{}
	}

	return &LedgerOutput{
		Period:         period,
		TotalRevenue:   totalRevenue,
		TotalDeals:     totalDeals,
		AvgDeal:        avgDeal,
		ConversionRate: conversionRate,
		Deals:          deals,
	}, nil
}

// periodBounds calcula o intervalo [from, to) de closed_at. Limite nil
// significa aberto daquele lado; o teto implícito de todos os períodos que
// terminam "agora" fica por conta do closed_at nunca estar no futuro.
func periodBounds(now time.Time, period string) (from, to *time.Time) {
	switch period {
	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &start, nil
	case PeriodLastMonth:
		currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start := currentMonthStart.AddDate(0, -1, 0)
		return &start, &currentMonthStart
	case PeriodThisYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return &start, nil
	default: // all
		return nil, nil
	}
}

func roundOneDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}

// WriteCSV exporta a lista de vendas do período para o painel baixar.
func (o *LedgerOutput) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "client_name", "client_company", "product_interest", "quantity", "final_sale_price", "salesperson", "closed_at"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, deal := range o.Deals {
		price := ""
		if deal.FinalSalePrice != nil {
			price = fmt.Sprintf("%.2f", *deal.FinalSalePrice)
		}
		closedAt := ""
		if deal.ClosedAt != nil {
			closedAt = deal.ClosedAt.Format(time.RFC3339)
		}

		row := []string{
			deal.ID,
			deal.ClientName,
			deal.ClientCompany,
			deal.ProductInterest,
			strconv.Itoa(deal.Quantity),
			price,
			deal.Salesperson,
			closedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
