package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrShowroomItemNotFound = errors.New("item de showroom não encontrado")

// ShowroomItem é uma peça da vitrine do site (foto + legenda).
type ShowroomItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewShowroomItem(title, description, imageURL string, sortOrder int) (*ShowroomItem, error) {
	item := &ShowroomItem{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		SortOrder:   sortOrder,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ShowroomItem) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(s.ImageURL) == "" {
		return errors.New("image_url is required")
	}
	return nil
}

type ShowroomRepositoryInterface interface {
	Create(ctx context.Context, item *ShowroomItem) error
	Update(ctx context.Context, item *ShowroomItem) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*ShowroomItem, error)

	// Ordenado por sort_order ASC, depois created_at DESC.
	List(ctx context.Context, page, perPage int) ([]*ShowroomItem, int, error)
}
