package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusContacted, NormalizeStatus("contacted"))
	assert.Equal(t, StatusNew, NormalizeStatus(""))
	assert.Equal(t, StatusNew, NormalizeStatus("CONTACTED"))
	assert.Equal(t, StatusNew, NormalizeStatus("arquivado"))
}

func TestNewLead_ComecaEmNew(t *testing.T) {
	lead, err := NewLead("Maria", "maria@example.com", "", "Loja da Maria", "camisetas", 100, "", nil)

	assert.NoError(t, err)
	assert.Equal(t, StatusNew, lead.Status)
	assert.NotEmpty(t, lead.ID)
	assert.Nil(t, lead.FinalSalePrice)
	assert.Nil(t, lead.ClosedAt)
}

func TestNewLead_NomeObrigatorio(t *testing.T) {
	lead, err := NewLead("   ", "x@example.com", "", "", "", 0, "", nil)

	assert.Nil(t, lead)
	assert.Error(t, err)
}

func TestLeadIsClosed(t *testing.T) {
	assert.True(t, (&Lead{Status: StatusWon}).IsClosed())
	assert.True(t, (&Lead{Status: StatusLost}).IsClosed())
	assert.False(t, (&Lead{Status: StatusNegotiating}).IsClosed())
}
