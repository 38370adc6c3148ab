package handlers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/localstore"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

func newTestGuard(t *testing.T) *repository.Guard {
	t.Helper()
	local, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return repository.NewGuard(local)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkWon(ctx context.Context, id string, close entity.SaleClose) error {
	args := m.Called(ctx, id, close)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLeadRepository) ListWon(ctx context.Context, from, to *time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockLeadEventRepository
type MockLeadEventRepository struct {
	mock.Mock
}

func (m *MockLeadEventRepository) Record(ctx context.Context, ev *entity.LeadEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockLeadEventRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.LeadEvent, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeadEvent), args.Error(1)
}

// MockNewsRepository
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, n *entity.News) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNewsRepository) Update(ctx context.Context, n *entity.News) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNewsRepository) FindByID(ctx context.Context, id string) (*entity.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.News), args.Error(1)
}

func (m *MockNewsRepository) List(ctx context.Context, page, perPage int, onlyPublished bool) ([]*entity.News, int, error) {
	args := m.Called(ctx, page, perPage, onlyPublished)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.News), args.Int(1), args.Error(2)
}
