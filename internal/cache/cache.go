package cache

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/config"
	"github.com/PedrohFolster/inkspiration/internal/dto"
)

// ProfessionalCache holds fully loaded professional profiles keyed by id.
type ProfessionalCache interface {
	Get(ctx context.Context, id uint) (*dto.ProfessionalDTO, bool)
	Set(ctx context.Context, p *dto.ProfessionalDTO)
	Invalidate(ctx context.Context, id uint)
}

// New builds the in-process LRU and, when REDIS_ADDR is set, puts Redis
// behind it.
func New(cfg *config.Config, log *zap.Logger) (ProfessionalCache, error) {
	local, err := NewLRU(cfg.CacheSize, cfg.CacheTTL())
	if err != nil {
		return nil, err
	}

	if !cfg.RedisEnabled() {
		log.Info("cache.redis.disabled")
		return local, nil
	}

	remote, err := NewRedis(cfg, log)
	if err != nil {
		return nil, err
	}

	return NewLayered(local, remote), nil
}

// Layered reads through its tiers in order and back-fills the faster ones.
type Layered struct {
	tiers []ProfessionalCache
}

func NewLayered(tiers ...ProfessionalCache) *Layered {
	return &Layered{tiers: tiers}
}

func (l *Layered) Get(ctx context.Context, id uint) (*dto.ProfessionalDTO, bool) {
	for i, t := range l.tiers {
		p, ok := t.Get(ctx, id)
		if !ok {
			continue
		}
		for j := 0; j < i; j++ {
			l.tiers[j].Set(ctx, p)
		}
		return p, true
	}
	return nil, false
}

func (l *Layered) Set(ctx context.Context, p *dto.ProfessionalDTO) {
	for _, t := range l.tiers {
		t.Set(ctx, p)
	}
}

func (l *Layered) Invalidate(ctx context.Context, id uint) {
	for _, t := range l.tiers {
		t.Invalidate(ctx, id)
	}
}

// Close releases every tier that holds a connection.
func (l *Layered) Close() error {
	var errs []error
	for _, t := range l.tiers {
		if c, ok := t.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// Close shuts the cache down if it owns resources.
func Close(c ProfessionalCache) error {
	if cl, ok := c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, uint) (*dto.ProfessionalDTO, bool) { return nil, false }
func (Nop) Set(context.Context, *dto.ProfessionalDTO)              {}
func (Nop) Invalidate(context.Context, uint)                       {}
