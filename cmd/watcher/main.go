package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/cache"
	"github.com/dacr-network/dacr-backend/cfg"
	"github.com/dacr-network/dacr-backend/db"
	"github.com/dacr-network/dacr-backend/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		panic(err.Error())
	}

	serviceCfg, err := cfg.New()
	if err != nil {
		panic(err.Error())
	}

	logger, err := newLogger(serviceCfg)
	if err != nil {
		panic("cannot init logger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	waitExit := make(chan bool)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for range sigCh {
			cancel()
			waitExit <- true
		}
	}()

	srvConfig := server.Config{
		StorageAdapter: db.Adapter(serviceCfg.StorageDriver),
		StorageURI:     serviceCfg.StorageURI,
		StorageDB:      serviceCfg.StorageDB,
		StorageMinConn: serviceCfg.StorageMinConn,
		StorageMaxConn: serviceCfg.StorageMaxConn,
		StorageIsFlush: serviceCfg.StorageIsFlush,

		CacheAdapter:     cache.Adapter(serviceCfg.CacheEngine),
		CacheURL:         serviceCfg.CacheURL,
		CacheDB:          serviceCfg.CacheDB,
		CacheIsFlush:     serviceCfg.CacheIsFlush,
		CacheExpiredTime: serviceCfg.CacheExpiredTime,

		InitialSupply:   serviceCfg.InitialSupply,
		MinReserveRatio: serviceCfg.MinReserveRatio,
		PegValue:        serviceCfg.PegValue,
		ReserveWeights:  serviceCfg.ReserveWeights,

		VotingPeriod:    serviceCfg.VotingPeriod,
		ExecutionDelay:  serviceCfg.ExecutionDelay,
		QuorumThreshold: serviceCfg.QuorumThreshold,

		Logger: logger.With(zap.String("service", "watcher")),
	}
	srv, err := server.New(srvConfig)
	if err != nil {
		logger.Panic(err.Error())
	}

	go watcher(ctx, srv, serviceCfg.SweepInterval)
	<-waitExit
}

// watcher drives the time-gated governance transitions. Without it no
// proposal ever activates or resolves.
func watcher(ctx context.Context, srv *server.Server, interval time.Duration) {
	srv.Logger.Info("Start governance sweep...", zap.Duration("interval", interval))
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			srv.ProcessProposals(ctx)
			srv.SnapshotReserves(ctx)
		}
	}
}
