package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/localstore"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	local, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return NewGuard(local)
}

func permissionDenied() error {
	return &pq.Error{Code: "42501", Message: "permission denied for table leads"}
}

func TestGuardWrite_RemotoOKNaoTocaOLocal(t *testing.T) {
	g := newTestGuard(t)

	outcome, err := g.Write(context.Background(), FamilyLeads, map[string]any{"a": 1}, "lead-1",
		func(context.Context) error { return nil })

	assert.NoError(t, err)
	assert.False(t, outcome.LocalOnly)
	assert.Empty(t, g.Local.ReadAll(FamilyLeads))
}

func TestGuardWrite_FalhaGenericaCaiNoLocal(t *testing.T) {
	g := newTestGuard(t)

	lead := &entity.Lead{ID: "lead-1", ClientName: "Maria", Status: entity.StatusNew}
	outcome, err := g.Write(context.Background(), FamilyLeads, lead, lead.ID,
		func(context.Context) error { return errors.New("dial tcp: connection refused") })

	assert.NoError(t, err)
	assert.True(t, outcome.LocalOnly)

	records := g.Local.ReadAll(FamilyLeads)
	require.Len(t, records, 1)
	assert.Equal(t, "Maria", records[0]["client_name"])
}

func TestGuardWrite_PermissaoNegadaNuncaViraFallback(t *testing.T) {
	g := newTestGuard(t)

	outcome, err := g.Write(context.Background(), FamilyLeads, map[string]any{"a": 1}, "lead-1",
		func(context.Context) error { return permissionDenied() })

	assert.Error(t, err)
	assert.False(t, outcome.LocalOnly)
	// Nada foi espelhado: negação de acesso é resposta, não indisponibilidade.
	assert.Empty(t, g.Local.ReadAll(FamilyLeads))
}

func TestGuardWrite_NotFoundSobeComoErro(t *testing.T) {
	g := newTestGuard(t)

	_, err := g.Write(context.Background(), FamilyNews, map[string]any{"a": 1}, "n-1",
		func(context.Context) error { return entity.ErrNewsNotFound })

	assert.ErrorIs(t, err, entity.ErrNewsNotFound)
	assert.Empty(t, g.Local.ReadAll(FamilyNews))
}

func TestGuardDelete_FalhaGenericaRemoveLocalmente(t *testing.T) {
	g := newTestGuard(t)

	_, err := g.Local.Upsert(FamilyJobs, localstore.Record{"title": "x"}, "j-1")
	require.NoError(t, err)

	outcome, err := g.Delete(context.Background(), FamilyJobs, "j-1",
		func(context.Context) error { return errors.New("timeout") })

	assert.NoError(t, err)
	assert.True(t, outcome.LocalOnly)
	assert.Empty(t, g.Local.ReadAll(FamilyJobs))
}

func TestGuardDelete_PermissaoNegadaNaoApagaLocal(t *testing.T) {
	g := newTestGuard(t)

	_, err := g.Local.Upsert(FamilyJobs, localstore.Record{"title": "x"}, "j-1")
	require.NoError(t, err)

	outcome, err := g.Delete(context.Background(), FamilyJobs, "j-1",
		func(context.Context) error { return permissionDenied() })

	assert.Error(t, err)
	assert.False(t, outcome.LocalOnly)
	// A cópia local sobrevive: o delete foi negado, não perdido.
	assert.Len(t, g.Local.ReadAll(FamilyJobs), 1)
}

func TestGuardDelete_RemotoOKLimpaCopiaLocal(t *testing.T) {
	g := newTestGuard(t)

	_, err := g.Local.Upsert(FamilyNews, localstore.Record{"title": "velha"}, "n-1")
	require.NoError(t, err)

	outcome, err := g.Delete(context.Background(), FamilyNews, "n-1",
		func(context.Context) error { return nil })

	assert.NoError(t, err)
	assert.False(t, outcome.LocalOnly)
	assert.Empty(t, g.Local.ReadAll(FamilyNews))
}

func TestReadFallback_SoParaFalhaGenerica(t *testing.T) {
	g := newTestGuard(t)

	_, err := g.Local.Upsert(FamilyProducts, localstore.Record{"name": "camiseta"}, "p-1")
	require.NoError(t, err)

	records, ok := g.ReadFallback(FamilyProducts, errors.New("connection reset"))
	assert.True(t, ok)
	assert.Len(t, records, 1)

	_, ok = g.ReadFallback(FamilyProducts, permissionDenied())
	assert.False(t, ok)

	_, ok = g.ReadFallback(FamilyProducts, nil)
	assert.False(t, ok)
}
