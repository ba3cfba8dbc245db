// Package cache
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

type Adapter string

const (
	RedisAdapter Adapter = "redis"
)

type Config struct {
	Adapter Adapter
	URL     string
	DB      int

	IsFlush            bool
	DefaultExpiredTime time.Duration

	Logger *zap.Logger
}

// Client caches serving-layer snapshots so dashboard reads do not contend
// with core writes. A miss always falls through to the core.
type Client interface {
	UpdateSupplyInfo(ctx context.Context, info *types.SupplyInfo) error
	SupplyInfo(ctx context.Context) (*types.SupplyInfo, error)

	UpdateReserveStatus(ctx context.Context, status *types.ReserveStatus) error
	ReserveStatus(ctx context.Context) (*types.ReserveStatus, error)

	UpdateServerStatus(ctx context.Context, status *types.ServerStatus) error
	ServerStatus(ctx context.Context) (*types.ServerStatus, error)
}

func New(cfg Config) (Client, error) {
	switch cfg.Adapter {
	case RedisAdapter:
		return newRedis(cfg)
	}
	return nil, errors.New("invalid cache config")
}

func newRedis(cfg Config) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.URL,
		DB:   cfg.DB,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	if cfg.IsFlush {
		msg, err := redisClient.FlushAll(context.Background()).Result()
		if err != nil || msg != "OK" {
			return nil, err
		}
	}

	logger := cfg.Logger.With(zap.String("cache", "redis"))
	client := &Redis{
		cfg:    cfg,
		client: redisClient,
		logger: logger,
	}
	return client, nil
}
