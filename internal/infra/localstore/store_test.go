package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsert_InsereEDepoisFunde(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Upsert("leads", Record{"client_name": "Maria", "lead_status": "new"}, "lead-1")
	require.NoError(t, err)

	// Merge raso: status muda, nome é preservado.
	merged, err := s.Upsert("leads", Record{"lead_status": "contacted"}, "lead-1")
	require.NoError(t, err)

	assert.Equal(t, "Maria", merged["client_name"])
	assert.Equal(t, "contacted", merged["lead_status"])
	assert.Equal(t, "lead-1", merged["id"])

	records := s.ReadAll("leads")
	assert.Len(t, records, 1)
	assert.Equal(t, "Maria", records[0]["client_name"])
}

func TestUpsert_SemIDSintetizaUm(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Upsert("messages", Record{"content": "olá"}, "")
	require.NoError(t, err)

	id, ok := rec["id"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, id)
}

func TestRemove_Idempotente(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Upsert("news", Record{"title": "t"}, "n-1")
	require.NoError(t, err)

	assert.NoError(t, s.Remove("news", "n-1"))
	// Segunda remoção do mesmo id não é erro.
	assert.NoError(t, s.Remove("news", "n-1"))
	assert.Empty(t, s.ReadAll("news"))
}

func TestReadAll_FamiliaVaziaEhSequenciaVazia(t *testing.T) {
	s := openTestStore(t)

	records := s.ReadAll("products")
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReadAll_RegistroPodreEhPulado(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Upsert("jobs", Record{"title": "costureira"}, "j-1")
	require.NoError(t, err)

	// Corrompe um registro por baixo do pano.
	_, err = s.db.Exec(
		`INSERT INTO fallback_records (family, id, doc, updated_at) VALUES ('jobs', 'j-2', '{nope', datetime('now'))`)
	require.NoError(t, err)

	records := s.ReadAll("jobs")
	assert.Len(t, records, 1)
	assert.Equal(t, "costureira", records[0]["title"])
}

func TestCount_PorFamilia(t *testing.T) {
	s := openTestStore(t)

	_, _ = s.Upsert("leads", Record{"a": 1}, "1")
	_, _ = s.Upsert("leads", Record{"a": 2}, "2")
	_, _ = s.Upsert("news", Record{"a": 3}, "3")

	n, err := s.Count("leads")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Count("showroom")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFamiliasNaoSeMisturam(t *testing.T) {
	s := openTestStore(t)

	_, _ = s.Upsert("leads", Record{"kind": "lead"}, "x")
	_, _ = s.Upsert("news", Record{"kind": "news"}, "x")

	leads := s.ReadAll("leads")
	assert.Len(t, leads, 1)
	assert.Equal(t, "lead", leads[0]["kind"])
}
