package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status do funil de vendas. Os literais fazem parte do contrato com o painel
// e com o site público — não renomear.
const (
	StatusNew         = "new"
	StatusContacted   = "contacted"
	StatusNegotiating = "negotiating"
	StatusWon         = "won"
	StatusLost        = "lost"
)

// PipelineStatuses na ordem das colunas do Kanban.
var PipelineStatuses = []string{StatusNew, StatusContacted, StatusNegotiating, StatusWon, StatusLost}

// Tags de lead reconhecidas pelos filtros do painel.
const (
	TagVIP           = "vip"
	TagWholesale     = "wholesale"
	TagHighPotential = "high_potential"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

type Lead struct {
	ID              string     `json:"id"`
	ClientName      string     `json:"client_name"`
	ClientEmail     string     `json:"client_email,omitempty"`
	ClientPhone     string     `json:"client_phone,omitempty"`
	ClientCompany   string     `json:"client_company,omitempty"`
	ProductInterest string     `json:"product_interest,omitempty"`
	Quantity        int        `json:"quantity,omitempty"`
	Message         string     `json:"message,omitempty"`
	Tags            []string   `json:"lead_tags"`
	Status          string     `json:"lead_status"`
	FinalSalePrice  *float64   `json:"final_sale_price,omitempty"`
	Salesperson     string     `json:"salesperson,omitempty"`
	SaleNotes       string     `json:"sale_notes,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewLead cria um lead vindo do formulário de orçamento do site.
func NewLead(name, email, phone, company, productInterest string, quantity int, message string, tags []string) (*Lead, error) {
	lead := &Lead{
		ID:              uuid.New().String(),
		ClientName:      name,
		ClientEmail:     email,
		ClientPhone:     phone,
		ClientCompany:   company,
		ProductInterest: productInterest,
		Quantity:        quantity,
		Message:         message,
		Tags:            tags,
		Status:          StatusNew,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.ClientName) == "" {
		return errors.New("client_name is required")
	}
	return nil
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusNegotiating, StatusWon, StatusLost:
		return true
	}
	return false
}

// NormalizeStatus: lead sem status (ou com valor que o banco não deveria ter
// deixado entrar) conta como "new". Nunca descartamos o registro.
func NormalizeStatus(s string) string {
	if IsValidStatus(s) {
		return s
	}
	return StatusNew
}

func (l *Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsClosed indica status terminal (won ou lost).
func (l *Lead) IsClosed() bool {
	return l.Status == StatusWon || l.Status == StatusLost
}

// SaleClose carrega os dados obrigatórios do fechamento "won".
type SaleClose struct {
	FinalSalePrice float64
	Salesperson    string
	SaleNotes      string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)

	// UpdateStatus muda para qualquer status exceto won. Limpa os campos de
	// venda (invariante: final_sale_price existe sse status == won) e seta
	// closed_at apenas quando o alvo é lost.
	UpdateStatus(ctx context.Context, id, status string) error

	// MarkWon grava status=won junto com os dados do fechamento.
	MarkWon(ctx context.Context, id string, close SaleClose) error

	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int, error)

	// ListWon retorna leads won com closed_at dentro do intervalo
	// [from, to). Ponteiro nil desliga o limite correspondente.
	ListWon(ctx context.Context, from, to *time.Time) ([]*Lead, error)
}

// LeadEvent é o rastro de auditoria de cada transição do Kanban.
type LeadEvent struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type LeadEventRepositoryInterface interface {
	Record(ctx context.Context, ev *LeadEvent) error
	ListByLead(ctx context.Context, leadID string) ([]*LeadEvent, error)
}
