package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/confexa/confexa-backoffice/internal/entity"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(ctx context.Context, j *entity.Job) error {
	query := `
		INSERT INTO jobs (id, title, department, location, description, requirements, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		j.ID,
		j.Title,
		nullString(j.Department),
		nullString(j.Location),
		j.Description,
		nullString(j.Requirements),
		j.Active,
		j.CreatedAt,
		j.UpdatedAt,
	)
	return err
}

func (r *JobRepository) Update(ctx context.Context, j *entity.Job) error {
	query := `
		UPDATE jobs SET
			title = $2, department = $3, location = $4, description = $5,
			requirements = $6, active = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		j.ID,
		j.Title,
		nullString(j.Department),
		nullString(j.Location),
		j.Description,
		nullString(j.Requirements),
		j.Active,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, entity.ErrJobNotFound)
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	query := `
		SELECT id, title, COALESCE(department, ''), COALESCE(location, ''),
		       description, COALESCE(requirements, ''), active, created_at, updated_at
		FROM jobs WHERE id = $1
	`

	var j entity.Job
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.Title, &j.Department, &j.Location,
		&j.Description, &j.Requirements, &j.Active, &j.CreatedAt, &j.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) List(ctx context.Context, page, perPage int, onlyActive bool) ([]*entity.Job, int, error) {
	where := ""
	if onlyActive {
		where = " WHERE active = TRUE"
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, COALESCE(department, ''), COALESCE(location, ''),
		       description, COALESCE(requirements, ''), active, created_at, updated_at
		FROM jobs` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, perPage, offset(page, perPage))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Department, &j.Location,
			&j.Description, &j.Requirements, &j.Active, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, &j)
	}
	return items, total, rows.Err()
}
