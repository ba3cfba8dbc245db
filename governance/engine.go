// Package governance
package governance

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

// ExecutorFunc applies the effect of a passed proposal. The engine guarantees
// the gate conditions; what the effect is belongs to the collaborator that
// registered the executor.
type ExecutorFunc func(p *types.Proposal) error

type Config struct {
	VotingPeriod    time.Duration
	ExecutionDelay  time.Duration
	QuorumThreshold decimal.Decimal

	// Executors maps proposal types to their execution hooks. Types without
	// an entry execute as plain status transitions.
	Executors map[types.ProposalType]ExecutorFunc

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

// Engine owns the proposal lifecycle: pending -> active -> passed/rejected ->
// executed. Time-gated transitions run inside ProcessProposals, which an
// external scheduler drives.
type Engine struct {
	mu        sync.Mutex
	proposals map[string]*types.Proposal
	votes     map[string]map[string]*types.Vote // proposal id -> voter -> live vote

	votingPeriod   time.Duration
	executionDelay time.Duration
	quorum         decimal.Decimal
	executors      map[types.ProposalType]ExecutorFunc
	now            func() time.Time

	logger *zap.Logger
}

func NewEngine(cfg Config) *Engine {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		proposals:      make(map[string]*types.Proposal),
		votes:          make(map[string]map[string]*types.Vote),
		votingPeriod:   cfg.VotingPeriod,
		executionDelay: cfg.ExecutionDelay,
		quorum:         cfg.QuorumThreshold,
		executors:      cfg.Executors,
		now:            now,
		logger:         cfg.Logger.With(zap.String("component", "governance")),
	}
}

func (e *Engine) CreateProposal(creator string, pType types.ProposalType, title, description string, parameterChanges map[string]string) *types.Proposal {
	now := e.now().UTC()
	p := &types.Proposal{
		ID:               uuid.New().String(),
		Type:             pType,
		Title:            title,
		Description:      description,
		Creator:          creator,
		CreationTime:     now,
		Status:           types.ProposalStatusPending,
		VotingEndsAt:     now.Add(e.votingPeriod),
		ExecutionDelay:   e.executionDelay,
		VotesFor:         decimal.Zero,
		VotesAgainst:     decimal.Zero,
		ParameterChanges: parameterChanges,
	}

	e.mu.Lock()
	e.proposals[p.ID] = p
	e.votes[p.ID] = make(map[string]*types.Vote)
	e.mu.Unlock()

	e.logger.Info("Created proposal", zap.String("id", p.ID), zap.String("title", title))
	return copyProposal(p)
}

// CastVote records or replaces the voter's live vote on an active proposal.
// A replacement first backs the previous weight out of whichever tally it
// landed in, so one voter contributes to exactly one side.
func (e *Engine) CastVote(proposalID, voter string, support bool, weight decimal.Decimal) error {
	if weight.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("vote weight %s: %w", weight, types.ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[proposalID]
	if !ok {
		return fmt.Errorf("proposal %s: %w", proposalID, types.ErrNotFound)
	}
	if p.Status != types.ProposalStatusActive {
		return fmt.Errorf("proposal %s is %s, not active: %w", proposalID, p.Status, types.ErrPreconditionFailed)
	}
	if e.now().UTC().After(p.VotingEndsAt) {
		return fmt.Errorf("voting on proposal %s ended at %s: %w", proposalID, p.VotingEndsAt, types.ErrPreconditionFailed)
	}

	if old, voted := e.votes[proposalID][voter]; voted {
		if old.Support {
			p.VotesFor = p.VotesFor.Sub(old.Weight)
		} else {
			p.VotesAgainst = p.VotesAgainst.Sub(old.Weight)
		}
	}

	e.votes[proposalID][voter] = &types.Vote{
		Voter:   voter,
		Weight:  weight,
		Time:    e.now().UTC(),
		Support: support,
	}
	if support {
		p.VotesFor = p.VotesFor.Add(weight)
	} else {
		p.VotesAgainst = p.VotesAgainst.Add(weight)
	}

	e.logger.Info("Recorded vote",
		zap.String("proposal", proposalID),
		zap.String("voter", voter),
		zap.Bool("support", support))
	return nil
}

// ProcessProposals advances every proposal whose time gate has opened:
// pending proposals activate, active proposals past their deadline resolve.
// Resolution requires combined vote weight at or above the quorum floor and a
// strict for-majority; anything else rejects.
func (e *Engine) ProcessProposals() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now().UTC()
	for _, p := range e.proposals {
		switch p.Status {
		case types.ProposalStatusPending:
			p.Status = types.ProposalStatusActive
			e.logger.Info("Proposal activated", zap.String("id", p.ID))

		case types.ProposalStatusActive:
			if !now.After(p.VotingEndsAt) {
				continue
			}
			totalVotes := p.VotesFor.Add(p.VotesAgainst)
			if totalVotes.GreaterThanOrEqual(e.quorum) && p.VotesFor.GreaterThan(p.VotesAgainst) {
				p.Status = types.ProposalStatusPassed
				e.logger.Info("Proposal passed", zap.String("id", p.ID))
			} else {
				p.Status = types.ProposalStatusRejected
				e.logger.Info("Proposal rejected",
					zap.String("id", p.ID),
					zap.String("totalVotes", totalVotes.String()),
					zap.String("quorum", e.quorum.String()))
			}
		}
	}
}

// ExecuteProposal applies a passed proposal once its execution delay has
// elapsed. The executed transition happens only when the hook succeeds, so a
// hook fault leaves the proposal passed and retryable.
func (e *Engine) ExecuteProposal(proposalID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[proposalID]
	if !ok {
		return fmt.Errorf("proposal %s: %w", proposalID, types.ErrNotFound)
	}
	if p.Status != types.ProposalStatusPassed {
		return fmt.Errorf("proposal %s is %s, not passed: %w", proposalID, p.Status, types.ErrPreconditionFailed)
	}
	executableAt := p.VotingEndsAt.Add(p.ExecutionDelay)
	if e.now().UTC().Before(executableAt) {
		return fmt.Errorf("proposal %s executable at %s: %w", proposalID, executableAt, types.ErrPreconditionFailed)
	}

	if fn, ok := e.executors[p.Type]; ok && fn != nil {
		if err := fn(copyProposal(p)); err != nil {
			e.logger.Error("Proposal execution hook failed", zap.String("id", proposalID), zap.Error(err))
			return fmt.Errorf("execute proposal %s: %v: %w", proposalID, err, types.ErrInternalFault)
		}
	}

	p.Status = types.ProposalStatusExecuted
	e.logger.Info("Executed proposal", zap.String("id", proposalID))
	return nil
}

func (e *Engine) GetProposal(proposalID string) *types.Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.proposals[proposalID]
	if !ok {
		return nil
	}
	return copyProposal(p)
}

// GetProposals returns all proposals, filtered by exact status when status is
// non-empty.
func (e *Engine) GetProposals(status types.ProposalStatus) []*types.Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()
	var proposals []*types.Proposal
	for _, p := range e.proposals {
		if status != "" && p.Status != status {
			continue
		}
		proposals = append(proposals, copyProposal(p))
	}
	return proposals
}

func (e *Engine) GetVotes(proposalID string) []*types.Vote {
	e.mu.Lock()
	defer e.mu.Unlock()
	var votes []*types.Vote
	for _, v := range e.votes[proposalID] {
		cp := *v
		votes = append(votes, &cp)
	}
	return votes
}

func copyProposal(p *types.Proposal) *types.Proposal {
	cp := *p
	if p.ParameterChanges != nil {
		cp.ParameterChanges = make(map[string]string, len(p.ParameterChanges))
		for k, v := range p.ParameterChanges {
			cp.ParameterChanges[k] = v
		}
	}
	return &cp
}
