// Package reserve
package reserve

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

type Config struct {
	// Weights must cover every category in types.ReserveTypes and sum to 1.
	Weights map[types.ReserveType]decimal.Decimal

	Logger *zap.Logger
}

// Pool holds the weighted balances backing the currency. Balances never go
// negative; weights are fixed for the life of the pool.
type Pool struct {
	mu       sync.RWMutex
	balances map[types.ReserveType]decimal.Decimal
	weights  map[types.ReserveType]decimal.Decimal

	logger *zap.Logger
}

func NewPool(cfg Config) (*Pool, error) {
	weights := make(map[types.ReserveType]decimal.Decimal, len(types.ReserveTypes))
	balances := make(map[types.ReserveType]decimal.Decimal, len(types.ReserveTypes))
	sum := decimal.Zero
	for _, rt := range types.ReserveTypes {
		w, ok := cfg.Weights[rt]
		if !ok {
			return nil, fmt.Errorf("missing weight for reserve %s: %w", rt, types.ErrInvalidArgument)
		}
		weights[rt] = w
		balances[rt] = decimal.Zero
		sum = sum.Add(w)
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("reserve weights sum to %s, want 1: %w", sum, types.ErrInvalidArgument)
	}
	return &Pool{
		balances: balances,
		weights:  weights,
		logger:   cfg.Logger.With(zap.String("component", "reserve")),
	}, nil
}

func (p *Pool) Add(rt types.ReserveType, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("reserve add amount %s: %w", amount, types.ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	balance, ok := p.balances[rt]
	if !ok {
		return fmt.Errorf("unknown reserve %s: %w", rt, types.ErrInvalidArgument)
	}
	p.balances[rt] = balance.Add(amount)
	p.logger.Info("Added to reserves", zap.String("reserve", string(rt)), zap.String("amount", amount.String()))
	return nil
}

func (p *Pool) Remove(rt types.ReserveType, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("reserve remove amount %s: %w", amount, types.ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	balance, ok := p.balances[rt]
	if !ok {
		return fmt.Errorf("unknown reserve %s: %w", rt, types.ErrInvalidArgument)
	}
	if amount.GreaterThan(balance) {
		return fmt.Errorf("reserve %s holds %s, cannot remove %s: %w", rt, balance, amount, types.ErrPreconditionFailed)
	}
	p.balances[rt] = balance.Sub(amount)
	p.logger.Info("Removed from reserves", zap.String("reserve", string(rt)), zap.String("amount", amount.String()))
	return nil
}

// TotalValuation returns the USD-equivalent value of the pool, the sum of
// balance*weight over every category.
func (p *Pool) TotalValuation() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalValuation()
}

func (p *Pool) totalValuation() decimal.Decimal {
	total := decimal.Zero
	for _, rt := range types.ReserveTypes {
		total = total.Add(p.balances[rt].Mul(p.weights[rt]))
	}
	return total
}

func (p *Pool) Status() map[types.ReserveType]decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	status := make(map[types.ReserveType]decimal.Decimal, len(p.balances))
	for rt, balance := range p.balances {
		status[rt] = balance
	}
	return status
}

// Validate is the minimal health check on the pool. Stronger solvency rules
// belong here when they exist.
func (p *Pool) Validate() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalValuation().GreaterThan(decimal.Zero)
}
