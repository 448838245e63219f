package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/config"
	"github.com/PedrohFolster/inkspiration/internal/dto"
)

func TestLRU_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(2, time.Minute)
	require.NoError(t, err)

	c.Set(ctx, &dto.ProfessionalDTO{ID: 1, UserID: 10})
	got, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, uint(10), got.UserID)

	// returned values are copies
	got.UserID = 99
	again, _ := c.Get(ctx, 1)
	assert.Equal(t, uint(10), again.UserID)

	c.Invalidate(ctx, 1)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestLRU_Evicts(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(2, time.Minute)
	require.NoError(t, err)

	c.Set(ctx, &dto.ProfessionalDTO{ID: 1})
	c.Set(ctx, &dto.ProfessionalDTO{ID: 2})
	c.Set(ctx, &dto.ProfessionalDTO{ID: 3})

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 3)
	assert.True(t, ok)
}

func TestLRU_Expires(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(4, time.Minute)
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, &dto.ProfessionalDTO{ID: 5})
	now = now.Add(2 * time.Minute)

	_, ok := c.Get(ctx, 5)
	assert.False(t, ok)
}

func TestLayered_BackFillsFasterTier(t *testing.T) {
	ctx := context.Background()
	fast, _ := NewLRU(4, time.Minute)
	slow, _ := NewLRU(4, time.Minute)
	l := NewLayered(fast, slow)

	slow.Set(ctx, &dto.ProfessionalDTO{ID: 7})

	_, ok := l.Get(ctx, 7)
	require.True(t, ok)
	_, ok = fast.Get(ctx, 7)
	assert.True(t, ok)

	l.Invalidate(ctx, 7)
	_, ok = fast.Get(ctx, 7)
	assert.False(t, ok)
	_, ok = slow.Get(ctx, 7)
	assert.False(t, ok)
}

func TestNew_WithoutRedisIsLocal(t *testing.T) {
	c, err := New(&config.Config{CacheSize: 8, CacheTTLSeconds: 60}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LRU{}, c)
}

func TestNop(t *testing.T) {
	var c ProfessionalCache = Nop{}
	c.Set(context.Background(), &dto.ProfessionalDTO{ID: 1})
	_, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)
}
