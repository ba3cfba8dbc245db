package server

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/governance"
	"github.com/dacr-network/dacr-backend/types"
)

func (s *Server) CreateProposal(ctx context.Context, creator string, pType types.ProposalType, title, description string, parameterChanges map[string]string) *types.Proposal {
	p := s.gov.CreateProposal(creator, pType, title, description, parameterChanges)
	s.persistProposal(ctx, p)
	return p
}

func (s *Server) CastVote(ctx context.Context, proposalID, voter string, support bool, weight decimal.Decimal) error {
	if err := s.gov.CastVote(proposalID, voter, support, weight); err != nil {
		return err
	}
	s.persistProposal(ctx, s.gov.GetProposal(proposalID))
	return nil
}

// ProcessProposals is the sweep entry point the scheduler drives.
func (s *Server) ProcessProposals(ctx context.Context) {
	s.gov.ProcessProposals()
	if s.dbClient == nil {
		return
	}
	for _, p := range s.gov.GetProposals("") {
		s.persistProposal(ctx, p)
	}
}

func (s *Server) ExecuteProposal(ctx context.Context, proposalID string) error {
	if err := s.gov.ExecuteProposal(proposalID); err != nil {
		return err
	}
	s.persistProposal(ctx, s.gov.GetProposal(proposalID))
	return nil
}

func (s *Server) GetProposal(proposalID string) *types.Proposal {
	return s.gov.GetProposal(proposalID)
}

func (s *Server) GetProposals(status types.ProposalStatus) []*types.Proposal {
	return s.gov.GetProposals(status)
}

func (s *Server) GetVotes(proposalID string) []*types.Vote {
	return s.gov.GetVotes(proposalID)
}

// proposalExecutors builds the per-type execution hooks governance dispatches
// to. Parameter and reserve changes land on the supply controller and the
// pool; the remaining types only record that they ran.
func (s *Server) proposalExecutors() map[types.ProposalType]governance.ExecutorFunc {
	return map[types.ProposalType]governance.ExecutorFunc{
		types.ProposalParameterChange: func(p *types.Proposal) error {
			raw, ok := p.ParameterChanges["min_reserve_ratio"]
			if !ok {
				return fmt.Errorf("parameter change %s carries no known parameter: %w", p.ID, types.ErrInvalidArgument)
			}
			ratio, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("min_reserve_ratio %q: %w", raw, types.ErrInvalidArgument)
			}
			return s.supply.SetMinReserveRatio(ratio)
		},
		types.ProposalReserveAdjustment: func(p *types.Proposal) error {
			rt := types.ReserveType(p.ParameterChanges["reserve"])
			amount, err := decimal.NewFromString(p.ParameterChanges["amount"])
			if err != nil {
				return fmt.Errorf("reserve adjustment amount %q: %w", p.ParameterChanges["amount"], types.ErrInvalidArgument)
			}
			switch p.ParameterChanges["action"] {
			case "add":
				return s.reservePool.Add(rt, amount)
			case "remove":
				return s.reservePool.Remove(rt, amount)
			default:
				return fmt.Errorf("reserve adjustment action %q: %w", p.ParameterChanges["action"], types.ErrInvalidArgument)
			}
		},
		types.ProposalFeatureAddition: func(p *types.Proposal) error {
			s.Logger.Info("Feature addition proposal executed", zap.String("id", p.ID))
			return nil
		},
		types.ProposalPolicyUpdate: func(p *types.Proposal) error {
			s.Logger.Info("Policy update proposal executed", zap.String("id", p.ID))
			return nil
		},
	}
}

func (s *Server) persistProposal(ctx context.Context, p *types.Proposal) {
	if s.dbClient == nil || p == nil {
		return
	}
	if err := s.dbClient.UpsertProposal(ctx, p); err != nil {
		s.Logger.Warn("Cannot persist proposal", zap.String("id", p.ID), zap.Error(err))
	}
}
