package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNewsNotFound = errors.New("notícia não encontrada")

type News struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body"`
	ImageURL    string     `json:"image_url,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewNews(title, summary, body string) (*News, error) {
	n := &News{
		ID:        uuid.New().String(),
		Title:     title,
		Summary:   summary,
		Body:      body,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *News) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return errors.New("body is required")
	}
	return nil
}

type NewsRepositoryInterface interface {
	Create(ctx context.Context, n *News) error
	Update(ctx context.Context, n *News) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*News, error)

	// List pagina por created_at DESC. onlyPublished filtra o site público;
	// o painel admin enxerga tudo.
	List(ctx context.Context, page, perPage int, onlyPublished bool) ([]*News, int, error)
}
