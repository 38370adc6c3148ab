package database

import (
	"context"
	"database/sql"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type LeadEventRepository struct {
	DB *sql.DB
}

func NewLeadEventRepository(db *sql.DB) *LeadEventRepository {
	return &LeadEventRepository{DB: db}
}

func (r *LeadEventRepository) Record(ctx context.Context, ev *entity.LeadEvent) error {
	query := `
		INSERT INTO lead_events (id, lead_id, from_status, to_status, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		ev.ID,
		ev.LeadID,
		ev.FromStatus,
		ev.ToStatus,
		nullString(ev.Note),
		ev.CreatedAt,
	)
	return err
}

func (r *LeadEventRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.LeadEvent, error) {
	query := `
		SELECT id, lead_id, from_status, to_status, COALESCE(note, ''), created_at
		FROM lead_events
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.LeadEvent
	for rows.Next() {
		var ev entity.LeadEvent
		if err := rows.Scan(&ev.ID, &ev.LeadID, &ev.FromStatus, &ev.ToStatus, &ev.Note, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
