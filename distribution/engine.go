// Package distribution
package distribution

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

// tierBracket pairs a tier with its entry threshold and base reward rate.
// Brackets are ordered ascending by threshold; the effective tier is the
// highest bracket whose threshold <= balance.
type tierBracket struct {
	tier      types.RewardTier
	threshold decimal.Decimal
	baseRate  decimal.Decimal
}

var tierBrackets = []tierBracket{
	{types.TierBasic, decimal.NewFromInt(0), decimal.NewFromInt(1)},
	{types.TierIntermediate, decimal.NewFromInt(100), decimal.NewFromInt(2)},
	{types.TierAdvanced, decimal.NewFromInt(1000), decimal.NewFromInt(5)},
	{types.TierPremium, decimal.NewFromInt(10000), decimal.NewFromInt(10)},
}

// multiplierFunc computes the reward multiplier for one reward type from the
// activity metadata. Adding a reward type means adding a table entry.
type multiplierFunc func(metadata map[string]string) (decimal.Decimal, error)

var multipliers = map[types.RewardType]multiplierFunc{
	types.RewardTaskCompletion: func(metadata map[string]string) (decimal.Decimal, error) {
		return metaDecimal(metadata, "complexity", decimal.NewFromInt(1))
	},
	types.RewardEngagement: func(metadata map[string]string) (decimal.Decimal, error) {
		duration, err := metaDecimal(metadata, "duration", decimal.Zero)
		if err != nil {
			return decimal.Zero, err
		}
		// duration is seconds; an hour of engagement doubles the base rate
		return decimal.NewFromInt(1).Add(duration.Div(decimal.NewFromInt(3600))), nil
	},
	types.RewardMilestone: func(metadata map[string]string) (decimal.Decimal, error) {
		importance, err := metaDecimal(metadata, "importance", decimal.NewFromInt(1))
		if err != nil {
			return decimal.Zero, err
		}
		return importance.Mul(decimal.NewFromInt(2)), nil
	},
	types.RewardContribution: func(metadata map[string]string) (decimal.Decimal, error) {
		impact, err := metaDecimal(metadata, "impact", decimal.NewFromInt(1))
		if err != nil {
			return decimal.Zero, err
		}
		return impact.Mul(decimal.NewFromFloat(1.5)), nil
	},
}

type Config struct {
	Logger *zap.Logger
}

// Engine pays tiered rewards into per-user balances and keeps each user's
// tier consistent with their cumulative balance.
type Engine struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	tiers    map[string]types.RewardTier

	logger *zap.Logger
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		balances: make(map[string]decimal.Decimal),
		tiers:    make(map[string]types.RewardTier),
		logger:   cfg.Logger.With(zap.String("component", "distribution")),
	}
}

// CalculateReward returns base_rate(tier) * multiplier(rewardType, metadata).
func (e *Engine) CalculateReward(userID string, rewardType types.RewardType, metadata map[string]string) (decimal.Decimal, error) {
	fn, ok := multipliers[rewardType]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown reward type %s: %w", rewardType, types.ErrInvalidArgument)
	}
	multiplier, err := fn(metadata)
	if err != nil {
		return decimal.Zero, err
	}

	tier := e.GetTier(userID)
	return baseRate(tier).Mul(multiplier), nil
}

// Distribute credits amount to the user and recomputes their tier.
func (e *Engine) Distribute(userID string, amount decimal.Decimal, rewardType types.RewardType) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.balances[userID] = e.balances[userID].Add(amount)
	e.updateTier(userID)

	e.logger.Info("Distributed reward",
		zap.String("user", userID),
		zap.String("amount", amount.String()),
		zap.String("type", string(rewardType)))
	return nil
}

// GetTier returns the user's tier, registering new users at basic.
func (e *Engine) GetTier(userID string) types.RewardTier {
	e.mu.Lock()
	defer e.mu.Unlock()
	tier, ok := e.tiers[userID]
	if !ok {
		tier = types.TierBasic
		e.tiers[userID] = tier
	}
	return tier
}

func (e *Engine) GetBalance(userID string) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balances[userID]
}

// updateTier walks brackets ascending and keeps the last threshold the
// balance clears. Callers hold the lock.
func (e *Engine) updateTier(userID string) {
	balance := e.balances[userID]
	newTier := types.TierBasic
	for _, bracket := range tierBrackets {
		if balance.GreaterThanOrEqual(bracket.threshold) {
			newTier = bracket.tier
		} else {
			break
		}
	}
	if e.tiers[userID] != newTier {
		e.tiers[userID] = newTier
		e.logger.Info("User tier updated", zap.String("user", userID), zap.String("tier", string(newTier)))
	}
}

func baseRate(tier types.RewardTier) decimal.Decimal {
	for _, bracket := range tierBrackets {
		if bracket.tier == tier {
			return bracket.baseRate
		}
	}
	return decimal.NewFromInt(1)
}

// metaDecimal reads a decimal-convertible scalar out of activity metadata,
// falling back when the key is absent.
func metaDecimal(metadata map[string]string, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw, ok := metadata[key]
	if !ok || raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("metadata %s=%q: %w", key, raw, types.ErrInvalidArgument)
	}
	return d, nil
}
