package usecase

import (
	"context"
	"time"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

// LoadPipelineUseCase monta a visão do Kanban: todos os leads, filtrados e
// particionados nas cinco colunas de status.
type LoadPipelineUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewLoadPipelineUseCase(repo entity.LeadRepositoryInterface) *LoadPipelineUseCase {
	return &LoadPipelineUseCase{Repo: repo}
}

type PipelineColumn struct {
	Status string         `json:"status"`
	Count  int            `json:"count"`
	Leads  []*entity.Lead `json:"leads"`
}

type PipelineOutput struct {
	Filter  string           `json:"filter"`
	Total   int              `json:"total"`
	Columns []PipelineColumn `json:"columns"`
}

func IsValidFilter(filter string) bool {
	switch filter {
	case FilterAll, FilterVIP, FilterWholesale, FilterThisWeek:
		return true
	}
	return false
}

func (uc *LoadPipelineUseCase) Execute(ctx context.Context, filter string) (*PipelineOutput, error) {
	if filter == "" {
		filter = FilterAll
	}
	if !IsValidFilter(filter) {
		return nil, &DomainError{
			Code:    "INVALID_FILTER",
			Message: "filtro deve ser all, vip, wholesale ou this-week",
		}
	}

	// O repositório já devolve em ordem de criação decrescente; o filtro e o
	// particionamento são daqui pra frente.
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	buckets := make(map[string][]*entity.Lead, len(entity.PipelineStatuses))
	for _, status := range entity.PipelineStatuses {
		buckets[status] = []*entity.Lead{}
	}

	total := 0
	for _, lead := range leads {
		if !matchesFilter(lead, filter, now) {
			continue
		}
		// Status ausente ou desconhecido cai em "new". Lead nunca é descartado.
		status := entity.NormalizeStatus(lead.Status)
		buckets[status] = append(buckets[status], lead)
		total++
	}

	columns := make([]PipelineColumn, 0, len(entity.PipelineStatuses))
	for _, status := range entity.PipelineStatuses {
		columns = append(columns, PipelineColumn{
			Status: status,
			Count:  len(buckets[status]),
			Leads:  buckets[status],
		})
	}

	return &PipelineOutput{
		Filter:  filter,
		Total:   total,
		Columns: columns,
	}, nil
}

// Os filtros são mutuamente exclusivos, um por carregamento do board.
func matchesFilter(lead *entity.Lead, filter string, now time.Time) bool {
	switch filter {
	case FilterVIP:
		return lead.HasTag(entity.TagVIP) || lead.HasTag(entity.TagHighPotential)
	case FilterWholesale:
		return lead.HasTag(entity.TagWholesale)
	case FilterThisWeek:
		return !lead.CreatedAt.Before(now.AddDate(0, 0, -7))
	default:
		return true
	}
}
