package server

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dacr-network/dacr-backend/currency"
	"github.com/dacr-network/dacr-backend/types"
)

type RewardSummary struct {
	UserID  string            `json:"userId"`
	Tier    types.RewardTier  `json:"tier"`
	Balance decimal.Decimal   `json:"balance"`
	Tx      *types.Transaction `json:"tx,omitempty"`
}

// DistributeReward computes the reward for the activity, credits it and
// ledgers the payout as a completed reward transaction.
func (s *Server) DistributeReward(ctx context.Context, userID string, rewardType types.RewardType, metadata map[string]string) (*RewardSummary, error) {
	amount, err := s.rewards.CalculateReward(userID, rewardType, metadata)
	if err != nil {
		return nil, err
	}
	if err := s.rewards.Distribute(userID, amount, rewardType); err != nil {
		return nil, err
	}

	tx := s.txStore.Create(types.TxReward, amount, userID, currency.SystemAccount, map[string]string{"rewardType": string(rewardType)})
	if err := s.txStore.Execute(tx.ID); err != nil {
		return nil, err
	}
	tx = s.txStore.Get(tx.ID)
	s.collector.RecordTransaction(amount, userID, tx.Time)
	s.persistTx(ctx, tx)

	return &RewardSummary{
		UserID:  userID,
		Tier:    s.rewards.GetTier(userID),
		Balance: s.rewards.GetBalance(userID),
		Tx:      tx,
	}, nil
}

func (s *Server) RewardAccount(userID string) *RewardSummary {
	return &RewardSummary{
		UserID:  userID,
		Tier:    s.rewards.GetTier(userID),
		Balance: s.rewards.GetBalance(userID),
	}
}
