// Package currency
package currency

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/ledger"
	"github.com/dacr-network/dacr-backend/types"
)

// SystemAccount is the counterparty recorded on burns.
const SystemAccount = "dacr"

// ValuationSource reports the current weighted valuation of the reserve pool.
type ValuationSource interface {
	TotalValuation() decimal.Decimal
}

// SupplyNotifier receives fire-and-forget supply change notifications.
type SupplyNotifier interface {
	RecordSupplyChange(supply decimal.Decimal)
}

type Config struct {
	InitialSupply   decimal.Decimal
	MinReserveRatio decimal.Decimal
	// PegValue is the USD target per unit of currency; 1 in the standard
	// configuration.
	PegValue decimal.Decimal

	Reserves ValuationSource
	Ledger   *ledger.Store
	// Notifier is optional.
	Notifier SupplyNotifier

	Logger *zap.Logger
}

// Controller owns the total supply counter. Issuance is gated by the reserve
// ratio; the ratio check, the supply mutation and the ledger record happen
// under one lock so no interleaved issuance can over-issue against a stale
// ratio.
type Controller struct {
	mu              sync.Mutex
	totalSupply     decimal.Decimal
	minReserveRatio decimal.Decimal
	pegValue        decimal.Decimal

	reserves ValuationSource
	txStore  *ledger.Store
	notifier SupplyNotifier

	logger *zap.Logger
}

func NewController(cfg Config) *Controller {
	return &Controller{
		totalSupply:     cfg.InitialSupply,
		minReserveRatio: cfg.MinReserveRatio,
		pegValue:        cfg.PegValue,
		reserves:        cfg.Reserves,
		txStore:         cfg.Ledger,
		notifier:        cfg.Notifier,
		logger:          cfg.Logger.With(zap.String("component", "currency")),
	}
}

// Issue mints new currency to recipient and ledgers the movement as one
// completed issuance record.
func (c *Controller) Issue(amount decimal.Decimal, reason, recipient string) (*types.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("issuance amount %s: %w", amount, types.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ratio := c.reserveRatio()
	if ratio.LessThan(c.minReserveRatio) {
		c.logger.Warn("Reserve requirements not met for issuance",
			zap.String("ratio", ratio.String()),
			zap.String("min", c.minReserveRatio.String()))
		return nil, fmt.Errorf("reserve ratio %s below minimum %s: %w", ratio, c.minReserveRatio, types.ErrPreconditionFailed)
	}

	c.totalSupply = c.totalSupply.Add(amount)
	tx := c.txStore.Create(types.TxIssuance, amount, recipient, "", map[string]string{"reason": reason})
	if err := c.txStore.Execute(tx.ID); err != nil {
		// Roll the counter back so a hook fault cannot leave phantom supply.
		c.totalSupply = c.totalSupply.Sub(amount)
		return nil, err
	}

	c.logger.Info("Issued currency", zap.String("amount", amount.String()), zap.String("reason", reason))
	if c.notifier != nil {
		c.notifier.RecordSupplyChange(c.totalSupply)
	}
	return c.txStore.Get(tx.ID), nil
}

// Burn removes currency from circulation and ledgers it.
func (c *Controller) Burn(amount decimal.Decimal, reason, holder string) (*types.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("burn amount %s: %w", amount, types.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if amount.GreaterThan(c.totalSupply) {
		return nil, fmt.Errorf("burn %s exceeds supply %s: %w", amount, c.totalSupply, types.ErrPreconditionFailed)
	}

	c.totalSupply = c.totalSupply.Sub(amount)
	tx := c.txStore.Create(types.TxBurn, amount, SystemAccount, holder, map[string]string{"reason": reason})
	if err := c.txStore.Execute(tx.ID); err != nil {
		c.totalSupply = c.totalSupply.Add(amount)
		return nil, err
	}

	c.logger.Info("Burned currency", zap.String("amount", amount.String()), zap.String("reason", reason))
	if c.notifier != nil {
		c.notifier.RecordSupplyChange(c.totalSupply)
	}
	return c.txStore.Get(tx.ID), nil
}

func (c *Controller) Supply() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSupply
}

// SetMinReserveRatio is the parameter-change hook used by governance.
func (c *Controller) SetMinReserveRatio(ratio decimal.Decimal) error {
	if ratio.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("min reserve ratio %s: %w", ratio, types.ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Info("Min reserve ratio changed",
		zap.String("old", c.minReserveRatio.String()),
		zap.String("new", ratio.String()))
	c.minReserveRatio = ratio
	return nil
}

// reserveRatio is weighted reserve valuation against the pegged value of the
// outstanding supply. An empty supply is fully backed by definition.
func (c *Controller) reserveRatio() decimal.Decimal {
	if c.totalSupply.LessThanOrEqual(decimal.Zero) {
		return c.pegValue
	}
	return c.reserves.TotalValuation().Div(c.totalSupply.Mul(c.pegValue))
}
