package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("produto não encontrado")

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	MinOrderQty int       `json:"min_order_qty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProduct(name, category, description string, minOrderQty int) (*Product, error) {
	p := &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    category,
		Description: description,
		MinOrderQty: minOrderQty,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.MinOrderQty < 0 {
		return errors.New("min_order_qty must not be negative")
	}
	return nil
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Product, error)

	// category vazio lista o catálogo inteiro.
	List(ctx context.Context, page, perPage int, category string) ([]*Product, int, error)
}
