package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/config"
	"github.com/PedrohFolster/inkspiration/internal/dto"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedis(cfg *config.Config, log *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{client: client, ttl: cfg.CacheTTL(), log: log.Named("cache")}, nil
}

func professionalKey(id uint) string {
	return fmt.Sprintf("professional:%d", id)
}

func (r *Redis) Get(ctx context.Context, id uint) (*dto.ProfessionalDTO, bool) {
	raw, err := r.client.Get(ctx, professionalKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("cache.get.failed", zap.Uint("professional_id", id), zap.Error(err))
		}
		return nil, false
	}

	var p dto.ProfessionalDTO
	if err := json.Unmarshal(raw, &p); err != nil {
		r.log.Warn("cache.decode.failed", zap.Uint("professional_id", id), zap.Error(err))
		return nil, false
	}
	return &p, true
}

func (r *Redis) Set(ctx context.Context, p *dto.ProfessionalDTO) {
	if p == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, professionalKey(p.ID), raw, r.ttl).Err(); err != nil {
		r.log.Warn("cache.set.failed", zap.Uint("professional_id", p.ID), zap.Error(err))
	}
}

func (r *Redis) Invalidate(ctx context.Context, id uint) {
	if err := r.client.Del(ctx, professionalKey(id)).Err(); err != nil {
		r.log.Warn("cache.invalidate.failed", zap.Uint("professional_id", id), zap.Error(err))
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
