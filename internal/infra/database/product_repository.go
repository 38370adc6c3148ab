package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, description, image_url, min_order_qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullString(p.Category),
		nullString(p.Description),
		nullString(p.ImageURL),
		p.MinOrderQty,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, category = $3, description = $4, image_url = $5,
			min_order_qty = $6, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullString(p.Category),
		nullString(p.Description),
		nullString(p.ImageURL),
		p.MinOrderQty,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, entity.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), COALESCE(description, ''),
		       COALESCE(image_url, ''), min_order_qty, created_at, updated_at
		FROM products WHERE id = $1
	`

	var p entity.Product
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Description,
		&p.ImageURL, &p.MinOrderQty, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, page, perPage int, category string) ([]*entity.Product, int, error) {
	where := ""
	countArgs := []any{}
	if category != "" {
		where = " WHERE category = $1"
		countArgs = append(countArgs, category)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, COALESCE(category, ''), COALESCE(description, ''),
		       COALESCE(image_url, ''), min_order_qty, created_at, updated_at
		FROM products` + where

	args := countArgs
	if category != "" {
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

	var items []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description,
			&p.ImageURL, &p.MinOrderQty, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	return items, total, rows.Err()
}
