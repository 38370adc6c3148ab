package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tipos de mensagem recebidas pelos formulários do site.
const (
	MessageKindContact     = "contact"
	MessageKindSuggestion  = "suggestion"
	MessageKindApplication = "application"
)

var ErrMessageNotFound = errors.New("mensagem não encontrada")

type Message struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	JobID     *string   `json:"job_id,omitempty"` // só para kind=application
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(kind, name, email, phone, content string) (*Message, error) {
	m := &Message{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func IsValidMessageKind(kind string) bool {
	switch kind {
	case MessageKindContact, MessageKindSuggestion, MessageKindApplication:
		return true
	}
	return false
}

func (m *Message) Validate() error {
	if !IsValidMessageKind(m.Kind) {
		return errors.New("kind must be contact, suggestion or application")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(m.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

type MessageRepositoryInterface interface {
	Create(ctx context.Context, m *Message) error
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, perPage int, kind string) ([]*Message, int, error)
}
