// Package server
package server

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/analytics"
	"github.com/dacr-network/dacr-backend/cache"
	"github.com/dacr-network/dacr-backend/currency"
	"github.com/dacr-network/dacr-backend/db"
	"github.com/dacr-network/dacr-backend/distribution"
	"github.com/dacr-network/dacr-backend/governance"
	"github.com/dacr-network/dacr-backend/ledger"
	"github.com/dacr-network/dacr-backend/reserve"
	"github.com/dacr-network/dacr-backend/types"
)

type Config struct {
	StorageAdapter db.Adapter
	StorageURI     string
	StorageDB      string
	StorageMinConn int
	StorageMaxConn int
	StorageIsFlush bool

	CacheAdapter     cache.Adapter
	CacheURL         string
	CacheDB          int
	CacheIsFlush     bool
	CacheExpiredTime time.Duration

	InitialSupply   decimal.Decimal
	MinReserveRatio decimal.Decimal
	PegValue        decimal.Decimal
	ReserveWeights  map[types.ReserveType]decimal.Decimal

	VotingPeriod    time.Duration
	ExecutionDelay  time.Duration
	QuorumThreshold decimal.Decimal

	Logger *zap.Logger
}

// Server wires the core components together and owns the orchestration the
// request layer calls into. Every component is built exactly once per process
// and injected here; handlers never construct their own.
type Server struct {
	Logger *zap.Logger

	reservePool *reserve.Pool
	supply      *currency.Controller
	txStore     *ledger.Store
	rewards     *distribution.Engine
	gov         *governance.Engine
	collector   *analytics.Collector

	dbClient    db.Client    // optional persistence collaborator
	cacheClient cache.Client // optional snapshot cache
}

func New(cfg Config) (*Server, error) {
	cfg.Logger.Info("Create new server instance")

	pool, err := reserve.NewPool(reserve.Config{
		Weights: cfg.ReserveWeights,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	collector := analytics.NewCollector(analytics.Config{Logger: cfg.Logger})
	txStore := ledger.NewStore(ledger.Config{Logger: cfg.Logger})

	supply := currency.NewController(currency.Config{
		InitialSupply:   cfg.InitialSupply,
		MinReserveRatio: cfg.MinReserveRatio,
		PegValue:        cfg.PegValue,
		Reserves:        pool,
		Ledger:          txStore,
		Notifier:        collector,
		Logger:          cfg.Logger,
	})

	rewards := distribution.NewEngine(distribution.Config{Logger: cfg.Logger})

	srv := &Server{
		Logger:      cfg.Logger,
		reservePool: pool,
		supply:      supply,
		txStore:     txStore,
		rewards:     rewards,
		collector:   collector,
	}

	srv.gov = governance.NewEngine(governance.Config{
		VotingPeriod:    cfg.VotingPeriod,
		ExecutionDelay:  cfg.ExecutionDelay,
		QuorumThreshold: cfg.QuorumThreshold,
		Executors:       srv.proposalExecutors(),
		Logger:          cfg.Logger,
	})

	if cfg.CacheAdapter != "" {
		cacheClient, err := cache.New(cache.Config{
			Adapter:            cfg.CacheAdapter,
			URL:                cfg.CacheURL,
			DB:                 cfg.CacheDB,
			IsFlush:            cfg.CacheIsFlush,
			DefaultExpiredTime: cfg.CacheExpiredTime,
			Logger:             cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		srv.cacheClient = cacheClient
	}

	if cfg.StorageAdapter != "" {
		dbClient, err := db.NewClient(db.Config{
			DbAdapter: cfg.StorageAdapter,
			DbName:    cfg.StorageDB,
			URL:       cfg.StorageURI,
			MinConn:   cfg.StorageMinConn,
			MaxConn:   cfg.StorageMaxConn,
			FlushDB:   cfg.StorageIsFlush,
			Logger:    cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		srv.dbClient = dbClient
	}

	return srv, nil
}
