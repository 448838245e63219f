package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PedrohFolster/inkspiration/internal/dto"
)

type lruEntry struct {
	value     dto.ProfessionalDTO
	expiresAt time.Time
}

type LRU struct {
	cache *lru.Cache[uint, lruEntry]
	ttl   time.Duration
	now   func() time.Time
}

func NewLRU(size int, ttl time.Duration) (*LRU, error) {
	c, err := lru.New[uint, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c, ttl: ttl, now: time.Now}, nil
}

func (c *LRU) Get(_ context.Context, id uint) (*dto.ProfessionalDTO, bool) {
	e, ok := c.cache.Get(id)
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.cache.Remove(id)
		return nil, false
	}
	v := e.value
	return &v, true
}

func (c *LRU) Set(_ context.Context, p *dto.ProfessionalDTO) {
	if p == nil {
		return
	}
	c.cache.Add(p.ID, lruEntry{value: *p, expiresAt: c.now().Add(c.ttl)})
}

func (c *LRU) Invalidate(_ context.Context, id uint) {
	c.cache.Remove(id)
}
