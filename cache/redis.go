// Package cache
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

const (
	KeySupplyInfo    = "#supply#info"
	KeyReserveStatus = "#reserves#status"
	KeyServerStatus  = "#server#status"
)

type Redis struct {
	cfg    Config
	client *redis.Client

	logger *zap.Logger
}

func (c *Redis) UpdateSupplyInfo(ctx context.Context, info *types.SupplyInfo) error {
	return c.setJSON(ctx, KeySupplyInfo, info, c.expiry())
}

func (c *Redis) SupplyInfo(ctx context.Context) (*types.SupplyInfo, error) {
	var info *types.SupplyInfo
	if err := c.getJSON(ctx, KeySupplyInfo, &info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Redis) UpdateReserveStatus(ctx context.Context, status *types.ReserveStatus) error {
	return c.setJSON(ctx, KeyReserveStatus, status, c.expiry())
}

func (c *Redis) ReserveStatus(ctx context.Context) (*types.ReserveStatus, error) {
	var status *types.ReserveStatus
	if err := c.getJSON(ctx, KeyReserveStatus, &status); err != nil {
		return nil, err
	}
	return status, nil
}

func (c *Redis) UpdateServerStatus(ctx context.Context, status *types.ServerStatus) error {
	return c.setJSON(ctx, KeyServerStatus, status, 0)
}

func (c *Redis) ServerStatus(ctx context.Context) (*types.ServerStatus, error) {
	var status *types.ServerStatus
	if err := c.getJSON(ctx, KeyServerStatus, &status); err != nil {
		return nil, err
	}
	return status, nil
}

func (c *Redis) setJSON(ctx context.Context, key string, value interface{}, expiry time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if _, err := c.client.Set(ctx, key, string(data), expiry).Result(); err != nil {
		c.logger.Warn("Cannot set cache key", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (c *Redis) getJSON(ctx context.Context, key string, out interface{}) error {
	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(result), out)
}

func (c *Redis) expiry() time.Duration {
	if c.cfg.DefaultExpiredTime > 0 {
		return c.cfg.DefaultExpiredTime
	}
	return 12 * time.Hour
}
