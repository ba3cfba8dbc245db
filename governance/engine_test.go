package governance

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

// testClock is a manually advanced clock wired into the engine's Now hook.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func setupTestGovernance(t *testing.T, executors map[types.ProposalType]ExecutorFunc) (*Engine, *testClock) {
	lgr, err := zap.NewDevelopment()
	assert.Nil(t, err)
	clock := &testClock{current: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
	engine := NewEngine(Config{
		VotingPeriod:    7 * 24 * time.Hour,
		ExecutionDelay:  2 * 24 * time.Hour,
		QuorumThreshold: decimal.NewFromInt(40),
		Executors:       executors,
		Now:             clock.Now,
		Logger:          lgr,
	})
	return engine, clock
}

func newActiveProposal(t *testing.T, engine *Engine) *types.Proposal {
	p := engine.CreateProposal("alice", types.ProposalParameterChange, "Lower reserve floor", "",
		map[string]string{"min_reserve_ratio": "0.9"})
	assert.Equal(t, types.ProposalStatusPending, p.Status)
	engine.ProcessProposals()
	p = engine.GetProposal(p.ID)
	assert.Equal(t, types.ProposalStatusActive, p.Status)
	return p
}

func TestEngine_CreateProposalSchedulesVotingWindow(t *testing.T) {
	engine, clock := setupTestGovernance(t, nil)
	p := engine.CreateProposal("alice", types.ProposalPolicyUpdate, "New policy", "details", nil)
	assert.Equal(t, types.ProposalStatusPending, p.Status)
	assert.Equal(t, clock.current.Add(7*24*time.Hour), p.VotingEndsAt)
	assert.Equal(t, 2*24*time.Hour, p.ExecutionDelay)
}

func TestEngine_CastVoteRequiresActiveProposal(t *testing.T) {
	engine, _ := setupTestGovernance(t, nil)
	p := engine.CreateProposal("alice", types.ProposalPolicyUpdate, "New policy", "", nil)

	err := engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))

	err = engine.CastVote("no-such-id", "bob", true, decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestEngine_CastVoteRejectsNonPositiveWeight(t *testing.T) {
	engine, _ := setupTestGovernance(t, nil)
	p := newActiveProposal(t, engine)

	err := engine.CastVote(p.ID, "bob", true, decimal.Zero)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	err = engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestEngine_CastVoteClosesAtDeadline(t *testing.T) {
	engine, clock := setupTestGovernance(t, nil)
	p := newActiveProposal(t, engine)

	clock.Advance(7*24*time.Hour + time.Minute)
	err := engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))
}

func TestEngine_ReVoteReplacesPreviousWeight(t *testing.T) {
	engine, _ := setupTestGovernance(t, nil)
	p := newActiveProposal(t, engine)

	assert.Nil(t, engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(5)))
	p = engine.GetProposal(p.ID)
	assert.True(t, p.VotesFor.Equal(decimal.NewFromInt(5)))
	assert.True(t, p.VotesAgainst.IsZero())

	// switching sides backs the old weight out first
	assert.Nil(t, engine.CastVote(p.ID, "bob", false, decimal.NewFromInt(3)))
	p = engine.GetProposal(p.ID)
	assert.True(t, p.VotesFor.IsZero())
	assert.True(t, p.VotesAgainst.Equal(decimal.NewFromInt(3)))

	votes := engine.GetVotes(p.ID)
	assert.Equal(t, 1, len(votes))
	assert.Equal(t, "bob", votes[0].Voter)
	assert.False(t, votes[0].Support)
}

func TestEngine_ResolutionOutcomes(t *testing.T) {
	cases := []struct {
		name     string
		forW     int64
		against  int64
		expected types.ProposalStatus
	}{
		{"majority with quorum passes", 60, 10, types.ProposalStatusPassed},
		{"majority against rejects", 10, 60, types.ProposalStatusRejected},
		{"below quorum rejects", 20, 10, types.ProposalStatusRejected},
		{"tie rejects", 25, 25, types.ProposalStatusRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, clock := setupTestGovernance(t, nil)
			p := newActiveProposal(t, engine)
			if tc.forW > 0 {
				assert.Nil(t, engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(tc.forW)))
			}
			if tc.against > 0 {
				assert.Nil(t, engine.CastVote(p.ID, "carol", false, decimal.NewFromInt(tc.against)))
			}
			clock.Advance(7*24*time.Hour + time.Minute)
			engine.ProcessProposals()
			assert.Equal(t, tc.expected, engine.GetProposal(p.ID).Status)
		})
	}
}

func TestEngine_ExecuteWaitsOutTheDelay(t *testing.T) {
	applied := 0
	executors := map[types.ProposalType]ExecutorFunc{
		types.ProposalParameterChange: func(p *types.Proposal) error {
			applied++
			return nil
		},
	}
	engine, clock := setupTestGovernance(t, executors)
	p := newActiveProposal(t, engine)
	assert.Nil(t, engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(60)))

	clock.Advance(7*24*time.Hour + time.Minute)
	engine.ProcessProposals()
	assert.Equal(t, types.ProposalStatusPassed, engine.GetProposal(p.ID).Status)

	// still inside the execution delay
	err := engine.ExecuteProposal(p.ID)
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))
	assert.Equal(t, 0, applied)

	clock.Advance(2 * 24 * time.Hour)
	assert.Nil(t, engine.ExecuteProposal(p.ID))
	assert.Equal(t, 1, applied)
	assert.Equal(t, types.ProposalStatusExecuted, engine.GetProposal(p.ID).Status)

	// executed proposals do not run twice
	err = engine.ExecuteProposal(p.ID)
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))
	assert.Equal(t, 1, applied)
}

func TestEngine_ExecuteHookFaultLeavesProposalRetryable(t *testing.T) {
	fail := true
	executors := map[types.ProposalType]ExecutorFunc{
		types.ProposalParameterChange: func(p *types.Proposal) error {
			if fail {
				return errors.New("collaborator unavailable")
			}
			return nil
		},
	}
	engine, clock := setupTestGovernance(t, executors)
	p := newActiveProposal(t, engine)
	assert.Nil(t, engine.CastVote(p.ID, "bob", true, decimal.NewFromInt(60)))
	clock.Advance(9*24*time.Hour + time.Minute)
	engine.ProcessProposals()

	err := engine.ExecuteProposal(p.ID)
	assert.True(t, errors.Is(err, types.ErrInternalFault))
	assert.Equal(t, types.ProposalStatusPassed, engine.GetProposal(p.ID).Status)

	fail = false
	assert.Nil(t, engine.ExecuteProposal(p.ID))
	assert.Equal(t, types.ProposalStatusExecuted, engine.GetProposal(p.ID).Status)
}

func TestEngine_ExecuteRejectedProposal(t *testing.T) {
	engine, clock := setupTestGovernance(t, nil)
	p := newActiveProposal(t, engine)
	clock.Advance(9*24*time.Hour + time.Minute)
	engine.ProcessProposals()
	assert.Equal(t, types.ProposalStatusRejected, engine.GetProposal(p.ID).Status)

	err := engine.ExecuteProposal(p.ID)
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))
}

func TestEngine_GetProposalsFiltersByStatus(t *testing.T) {
	engine, _ := setupTestGovernance(t, nil)
	engine.CreateProposal("alice", types.ProposalPolicyUpdate, "first", "", nil)
	engine.ProcessProposals()
	engine.CreateProposal("alice", types.ProposalPolicyUpdate, "second", "", nil)

	assert.Equal(t, 2, len(engine.GetProposals("")))
	assert.Equal(t, 1, len(engine.GetProposals(types.ProposalStatusActive)))
	assert.Equal(t, 1, len(engine.GetProposals(types.ProposalStatusPending)))
	assert.Equal(t, 0, len(engine.GetProposals(types.ProposalStatusPassed)))
}

func TestEngine_ReturnedProposalIsACopy(t *testing.T) {
	engine, _ := setupTestGovernance(t, nil)
	p := engine.CreateProposal("alice", types.ProposalParameterChange, "mutate me", "",
		map[string]string{"min_reserve_ratio": "0.9"})

	p.Title = "mutated"
	p.ParameterChanges["min_reserve_ratio"] = "0"

	fresh := engine.GetProposal(p.ID)
	assert.Equal(t, "mutate me", fresh.Title)
	assert.Equal(t, "0.9", fresh.ParameterChanges["min_reserve_ratio"])
}
