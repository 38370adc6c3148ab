package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("vaga não encontrada")

type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Department   string    `json:"department,omitempty"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewJob(title, department, location, description, requirements string) (*Job, error) {
	j := &Job{
		ID:           uuid.New().String(),
		Title:        title,
		Department:   department,
		Location:     location,
		Description:  description,
		Requirements: requirements,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := j.Validate(); err != nil {
		return nil, err
	}

	return j, nil
}

func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		return errors.New("description is required")
	}
	return nil
}

type JobRepositoryInterface interface {
	Create(ctx context.Context, j *Job) error
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, page, perPage int, onlyActive bool) ([]*Job, int, error)
}
