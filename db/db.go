// Package db
package db

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type Adapter string

const (
	MGO Adapter = "mgo"
)

type Config struct {
	DbAdapter Adapter
	DbName    string
	URL       string
	MinConn   int
	MaxConn   int
	FlushDB   bool

	Logger *zap.Logger
}

// Client durably stores transaction and proposal records handed over by the
// serving layer. The core never requires it; writes are best-effort.
type Client interface {
	ping() error
	dropDatabase(ctx context.Context) error

	ITxs
	IProposal
}

func NewClient(cfg Config) (Client, error) {
	switch cfg.DbAdapter {
	case MGO:
		return newMongoDB(cfg)
	default:
		return nil, errors.New("invalid db config")
	}
}
