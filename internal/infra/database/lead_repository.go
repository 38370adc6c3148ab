package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, client_name,
	COALESCE(client_email, ''), COALESCE(client_phone, ''), COALESCE(client_company, ''),
	COALESCE(product_interest, ''), COALESCE(quantity, 0), COALESCE(message, ''),
	COALESCE(lead_tags, '{}'), COALESCE(lead_status, 'new'),
	final_sale_price, COALESCE(salesperson, ''), COALESCE(sale_notes, ''),
	closed_at, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.ClientName,
		&lead.ClientEmail,
		&lead.ClientPhone,
		&lead.ClientCompany,
		&lead.ProductInterest,
		&lead.Quantity,
		&lead.Message,
		pq.Array(&lead.Tags),
		&lead.Status,
		&lead.FinalSalePrice,
		&lead.Salesperson,
		&lead.SaleNotes,
		&lead.ClosedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, client_name, client_email, client_phone, client_company,
			product_interest, quantity, message, lead_tags, lead_status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.ClientName,
		nullString(lead.ClientEmail),
		nullString(lead.ClientPhone),
		nullString(lead.ClientCompany),
		nullString(lead.ProductInterest),
		lead.Quantity,
		nullString(lead.Message),
		pq.Array(lead.Tags),
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return err
}

// List retorna o funil inteiro, mais recente primeiro. O particionamento em
// colunas e os filtros do Kanban acontecem na camada de usecase.
func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateStatus nunca recebe "won" (o usecase intercepta antes). Os campos de
// venda são limpos e closed_at só fica preenchido quando o alvo é lost —
// é isso que mantém o invariante final_sale_price <=> won.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE leads SET
			lead_status = $2,
			updated_at = NOW(),
			closed_at = CASE WHEN $2 = 'lost' THEN NOW() ELSE NULL END,
			final_sale_price = NULL,
			salesperson = NULL,
			sale_notes = NULL
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) MarkWon(ctx context.Context, id string, close entity.SaleClose) error {
	query := `
		UPDATE leads SET
			lead_status = 'won',
			final_sale_price = $2,
			salesperson = $3,
			sale_notes = $4,
			closed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		id,
		close.FinalSalePrice,
		nullString(close.Salesperson),
		nullString(close.SaleNotes),
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

func (r *LeadRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total)
	return total, err
}

// ListWon filtra por closed_at em [from, to). Limite nil = sem limite.
func (r *LeadRepository) ListWon(ctx context.Context, from, to *time.Time) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_status = 'won'`
	args := []any{}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND closed_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND closed_at < $%d", len(args))
	}
	query += ` ORDER BY closed_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
