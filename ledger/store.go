// Package ledger
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

// ExecHook runs domain-specific logic when a pending transaction executes.
// A hook error fails the transaction instead of completing it.
type ExecHook func(tx *types.Transaction) error

type Config struct {
	// Hook is optional. When nil, Execute only performs the status transition.
	Hook ExecHook

	Logger *zap.Logger
}

// Store is the append-only transaction ledger. Records live in exactly one of
// three indices: pending, completed or failed. Completed and failed records
// are never mutated again.
type Store struct {
	mu        sync.Mutex
	pending   map[string]*types.Transaction
	completed map[string]*types.Transaction
	failed    map[string]*types.Transaction

	hook   ExecHook
	logger *zap.Logger
}

func NewStore(cfg Config) *Store {
	return &Store{
		pending:   make(map[string]*types.Transaction),
		completed: make(map[string]*types.Transaction),
		failed:    make(map[string]*types.Transaction),
		hook:      cfg.Hook,
		logger:    cfg.Logger.With(zap.String("component", "ledger")),
	}
}

// Create records a new pending transaction. Amount validation is the caller's
// contract; the store does not re-check it.
func (s *Store) Create(txType types.TransactionType, amount decimal.Decimal, recipient, sender string, metadata map[string]string) *types.Transaction {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	tx := &types.Transaction{
		ID:        uuid.New().String(),
		Type:      txType,
		Amount:    amount,
		Sender:    sender,
		Recipient: recipient,
		Time:      time.Now().UTC(),
		Status:    types.TxStatusPending,
		Metadata:  metadata,
	}

	s.mu.Lock()
	s.pending[tx.ID] = tx
	s.mu.Unlock()

	s.logger.Info("Created transaction", zap.String("id", tx.ID), zap.String("type", string(txType)))
	return copyTx(tx)
}

// Execute finalizes a pending transaction. The transition is one-shot: once a
// record leaves the pending index, re-invoking Execute on its id reports not
// found.
func (s *Store) Execute(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.pending[id]
	if !ok {
		return fmt.Errorf("pending transaction %s: %w", id, types.ErrNotFound)
	}

	if s.hook != nil {
		if err := s.hook(tx); err != nil {
			tx.Status = types.TxStatusFailed
			s.failed[id] = tx
			delete(s.pending, id)
			s.logger.Error("Transaction execution failed", zap.String("id", id), zap.Error(err))
			return fmt.Errorf("execute transaction %s: %v: %w", id, err, types.ErrInternalFault)
		}
	}

	tx.Status = types.TxStatusCompleted
	s.completed[id] = tx
	delete(s.pending, id)
	s.logger.Info("Executed transaction", zap.String("id", id))
	return nil
}

// Get looks an id up across all three indices.
func (s *Store) Get(id string) *types.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx, ok := s.completed[id]; ok {
		return copyTx(tx)
	}
	if tx, ok := s.pending[id]; ok {
		return copyTx(tx)
	}
	if tx, ok := s.failed[id]; ok {
		return copyTx(tx)
	}
	return nil
}

// ByAddress filters completed transactions where the address is sender or
// recipient. Zero values for txType and status mean no filter.
func (s *Store) ByAddress(address string, txType types.TransactionType, status types.TransactionStatus) []*types.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []*types.Transaction
	for _, tx := range s.completed {
		if tx.Sender != address && tx.Recipient != address {
			continue
		}
		if txType != "" && tx.Type != txType {
			continue
		}
		if status != "" && tx.Status != status {
			continue
		}
		txs = append(txs, copyTx(tx))
	}
	return txs
}

// History returns completed transactions inside [start, end], ascending by
// timestamp. Nil bounds are open.
func (s *Store) History(start, end *time.Time) []*types.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []*types.Transaction
	for _, tx := range s.completed {
		if start != nil && tx.Time.Before(*start) {
			continue
		}
		if end != nil && tx.Time.After(*end) {
			continue
		}
		txs = append(txs, copyTx(tx))
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Time.Before(txs[j].Time)
	})
	return txs
}

func copyTx(tx *types.Transaction) *types.Transaction {
	cp := *tx
	cp.Metadata = make(map[string]string, len(tx.Metadata))
	for k, v := range tx.Metadata {
		cp.Metadata[k] = v
	}
	return &cp
}
