package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_HitEMiss(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("news", "page=1")
	assert.False(t, ok)

	c.Set("news", "page=1", "payload")

	got, ok := c.Get("news", "page=1")
	assert.True(t, ok)
	assert.Equal(t, "payload", got)

	// Assinatura diferente é miss.
	_, ok = c.Get("news", "page=2")
	assert.False(t, ok)
}

func TestCache_ExpiraPorTTL(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set("products", "page=1", "payload")
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("products", "page=1")
	assert.False(t, ok)
}

func TestCache_InvalidateDerrubaAFamiliaInteira(t *testing.T) {
	c := New(time.Minute)

	c.Set("news", "page=1", "a")
	c.Set("news", "page=2", "b")
	c.Set("jobs", "page=1", "c")

	c.Invalidate("news")

	_, ok := c.Get("news", "page=1")
	assert.False(t, ok)
	_, ok = c.Get("news", "page=2")
	assert.False(t, ok)

	// Outras famílias ficam de pé.
	got, ok := c.Get("jobs", "page=1")
	assert.True(t, ok)
	assert.Equal(t, "c", got)
}

func TestCache_TTLInvalidoUsaODefault(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
