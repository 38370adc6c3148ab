package database

import (
	"context"
	"database/sql"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	query := `
		INSERT INTO messages (id, kind, job_id, name, email, phone, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		m.ID,
		m.Kind,
		m.JobID,
		m.Name,
		nullString(m.Email),
		nullString(m.Phone),
		m.Content,
		m.Read,
		m.CreatedAt,
	)
	return err
}

func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, entity.ErrMessageNotFound)
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *MessageRepository) List(ctx context.Context, page, perPage int, kind string) ([]*entity.Message, int, error) {
	where := ""
	countArgs := []any{}
	if kind != "" {
		where = " WHERE kind = $1"
		countArgs = append(countArgs, kind)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, kind, job_id, name, COALESCE(email, ''), COALESCE(phone, ''), content, read, created_at
		FROM messages` + where

	args := countArgs
	if kind != "" {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, perPage, offset(page, perPage))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(
			&m.ID, &m.Kind, &m.JobID, &m.Name, &m.Email, &m.Phone,
			&m.Content, &m.Read, &m.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, &m)
	}
	return items, total, rows.Err()
}
