package usecase

import (
	"context"

	"github.com/confexa/confexa-backoffice/internal/infra/queue"
)

// Filtros do Kanban. Literais fazem parte do contrato com o painel.
const (
	FilterAll       = "all"
	FilterVIP       = "vip"
	FilterWholesale = "wholesale"
	FilterThisWeek  = "this-week"
)

// Períodos do relatório de vendas.
const (
	PeriodAll       = "all"
	PeriodThisMonth = "this-month"
	PeriodLastMonth = "last-month"
	PeriodThisYear  = "this-year"
)

type QueueProducerInterface interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}

// ObjectStorage é o bucket hospedado (upload de imagem do painel).
type ObjectStorage interface {
	Upload(path string, data []byte, contentType string) (string, error)
	Delete(path string) error
}
