package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type NewsRepository struct {
	DB *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

func (r *NewsRepository) Create(ctx context.Context, n *entity.News) error {
	query := `
		INSERT INTO news (id, title, summary, body, image_url, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		n.ID,
		n.Title,
		nullString(n.Summary),
		n.Body,
		nullString(n.ImageURL),
		n.Published,
		n.PublishedAt,
		n.CreatedAt,
		n.UpdatedAt,
	)
	return err
}

func (r *NewsRepository) Update(ctx context.Context, n *entity.News) error {
	query := `
		UPDATE news SET
			title = $2, summary = $3, body = $4, image_url = $5,
			published = $6, published_at = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		n.ID,
		n.Title,
		nullString(n.Summary),
		n.Body,
		nullString(n.ImageURL),
		n.Published,
		n.PublishedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, entity.ErrNewsNotFound)
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	return err
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (*entity.News, error) {
	query := `
		SELECT id, title, COALESCE(summary, ''), body, COALESCE(image_url, ''),
		       published, published_at, created_at, updated_at
		FROM news WHERE id = $1
	`

	var n entity.News
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Summary, &n.Body, &n.ImageURL,
		&n.Published, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNewsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsRepository) List(ctx context.Context, page, perPage int, onlyPublished bool) ([]*entity.News, int, error) {
	where := ""
	if onlyPublished {
		where = " WHERE published = TRUE"
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, COALESCE(summary, ''), body, COALESCE(image_url, ''),
		       published, published_at, created_at, updated_at
		FROM news` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, perPage, offset(page, perPage))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*entity.News
	for rows.Next() {
		var n entity.News
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Summary, &n.Body, &n.ImageURL,
			&n.Published, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, &n)
	}
	return items, total, rows.Err()
}

func offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
