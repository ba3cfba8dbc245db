package server

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

// IssueCurrency mints to recipient; the supply controller ledgers the record
// atomically with the supply change, this layer fans the result out to the
// collaborators.
func (s *Server) IssueCurrency(ctx context.Context, amount decimal.Decimal, reason, recipient string) (*types.Transaction, error) {
	tx, err := s.supply.Issue(amount, reason, recipient)
	if err != nil {
		return nil, err
	}
	s.collector.RecordTransaction(amount, recipient, tx.Time)
	s.persistTx(ctx, tx)
	s.refreshSupplyCache(ctx)
	return tx, nil
}

func (s *Server) BurnCurrency(ctx context.Context, amount decimal.Decimal, reason, holder string) (*types.Transaction, error) {
	tx, err := s.supply.Burn(amount, reason, holder)
	if err != nil {
		return nil, err
	}
	s.collector.RecordTransaction(amount, holder, tx.Time)
	s.persistTx(ctx, tx)
	s.refreshSupplyCache(ctx)
	return tx, nil
}

// TransferCurrency moves value between addresses without touching supply.
func (s *Server) TransferCurrency(ctx context.Context, amount decimal.Decimal, sender, recipient string, metadata map[string]string) (*types.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transfer amount %s: %w", amount, types.ErrInvalidArgument)
	}
	tx := s.txStore.Create(types.TxTransfer, amount, recipient, sender, metadata)
	if err := s.txStore.Execute(tx.ID); err != nil {
		return nil, err
	}
	tx = s.txStore.Get(tx.ID)
	s.collector.RecordTransaction(amount, sender, tx.Time)
	s.persistTx(ctx, tx)
	return tx, nil
}

func (s *Server) SupplyInfo(ctx context.Context) *types.SupplyInfo {
	if s.cacheClient != nil {
		if info, err := s.cacheClient.SupplyInfo(ctx); err == nil && info != nil {
			return info
		}
	}
	return &types.SupplyInfo{
		TotalSupply: s.supply.Supply(),
		Time:        time.Now().UTC(),
	}
}

func (s *Server) persistTx(ctx context.Context, tx *types.Transaction) {
	if s.dbClient == nil {
		return
	}
	if err := s.dbClient.InsertTx(ctx, tx); err != nil {
		s.Logger.Warn("Cannot persist transaction", zap.String("id", tx.ID), zap.Error(err))
	}
}

func (s *Server) refreshSupplyCache(ctx context.Context) {
	if s.cacheClient == nil {
		return
	}
	info := &types.SupplyInfo{
		TotalSupply: s.supply.Supply(),
		Time:        time.Now().UTC(),
	}
	if err := s.cacheClient.UpdateSupplyInfo(ctx, info); err != nil {
		s.Logger.Warn("Cannot update supply cache", zap.Error(err))
	}
}
