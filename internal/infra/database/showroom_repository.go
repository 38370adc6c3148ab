package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type ShowroomRepository struct {
	DB *sql.DB
}

func NewShowroomRepository(db *sql.DB) *ShowroomRepository {
	return &ShowroomRepository{DB: db}
}

func (r *ShowroomRepository) Create(ctx context.Context, item *entity.ShowroomItem) error {
	query := `
		INSERT INTO showroom_items (id, title, description, image_url, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.Title,
		nullString(item.Description),
		item.ImageURL,
		item.SortOrder,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

func (r *ShowroomRepository) Update(ctx context.Context, item *entity.ShowroomItem) error {
	query := `
		UPDATE showroom_items SET
			title = $2, description = $3, image_url = $4, sort_order = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.Title,
		nullString(item.Description),
		item.ImageURL,
		item.SortOrder,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, entity.ErrShowroomItemNotFound)
}

func (r *ShowroomRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM showroom_items WHERE id = $1`, id)
	return err
}

func (r *ShowroomRepository) FindByID(ctx context.Context, id string) (*entity.ShowroomItem, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), image_url, sort_order, created_at, updated_at
		FROM showroom_items WHERE id = $1
	`

	var item entity.ShowroomItem
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Description, &item.ImageURL,
		&item.SortOrder, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrShowroomItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShowroomRepository) List(ctx context.Context, page, perPage int) ([]*entity.ShowroomItem, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM showroom_items`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, COALESCE(description, ''), image_url, sort_order, created_at, updated_at
		FROM showroom_items
		ORDER BY sort_order ASC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, perPage, offset(page, perPage))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*entity.ShowroomItem
	for rows.Next() {
		var item entity.ShowroomItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.ImageURL,
			&item.SortOrder, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, &item)
	}
	return items, total, rows.Err()
}
