package cache

import (
	"sync"
	"time"
)

// DefaultTTL da memória de leitura. Curto de propósito: o painel tolera
// cinco minutos de staleness, não mais.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value    any
	storedAt time.Time
}

// Cache é o memo de leitura do site público. As chaves vivem agrupadas por
// família de entidade (news, products...) para que a invalidação seja
// explícita e atacadista: qualquer mutação na família derruba a família
// inteira, nunca chaves avulsas espalhadas pelos call sites.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	families map[string]map[string]entry
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:      ttl,
		families: make(map[string]map[string]entry),
	}
}

// Get retorna o valor se a assinatura existe e ainda não expirou.
func (c *Cache) Get(family, signature string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fam, ok := c.families[family]
	if !ok {
		return nil, false
	}
	e, ok := fam[signature]
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) > c.ttl {
		delete(fam, signature)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(family, signature string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fam, ok := c.families[family]
	if !ok {
		fam = make(map[string]entry)
		c.families[family] = fam
	}
	fam[signature] = entry{value: value, storedAt: time.Now()}
}

// Invalidate derruba a família inteira.
func (c *Cache) Invalidate(family string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.families, family)
}
