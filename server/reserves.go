package server

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

func (s *Server) AddReserve(ctx context.Context, rt types.ReserveType, amount decimal.Decimal) error {
	if err := s.reservePool.Add(rt, amount); err != nil {
		return err
	}
	s.snapshotReserves(ctx)
	return nil
}

func (s *Server) RemoveReserve(ctx context.Context, rt types.ReserveType, amount decimal.Decimal) error {
	if err := s.reservePool.Remove(rt, amount); err != nil {
		return err
	}
	s.snapshotReserves(ctx)
	return nil
}

func (s *Server) ReserveStatus(ctx context.Context) *types.ReserveStatus {
	if s.cacheClient != nil {
		if status, err := s.cacheClient.ReserveStatus(ctx); err == nil && status != nil {
			return status
		}
	}
	return s.currentReserveStatus()
}

func (s *Server) ValidateReserves() bool {
	return s.reservePool.Validate()
}

// SnapshotReserves records the current reserve state without mutating it.
// The watcher calls this on every sweep so reserve metrics have points even
// across quiet periods.
func (s *Server) SnapshotReserves(ctx context.Context) {
	s.snapshotReserves(ctx)
}

// snapshotReserves reports the post-mutation state to analytics and refreshes
// the cache. Both are best-effort.
func (s *Server) snapshotReserves(ctx context.Context) {
	status := s.currentReserveStatus()
	s.collector.RecordReserveState(status.Reserves, status.Time)
	if s.cacheClient != nil {
		if err := s.cacheClient.UpdateReserveStatus(ctx, status); err != nil {
			s.Logger.Warn("Cannot update reserve cache", zap.Error(err))
		}
	}
}

func (s *Server) currentReserveStatus() *types.ReserveStatus {
	return &types.ReserveStatus{
		Reserves: s.reservePool.Status(),
		Total:    s.reservePool.TotalValuation(),
		Time:     time.Now().UTC(),
	}
}
