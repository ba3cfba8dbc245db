package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProposalType string

const (
	ProposalParameterChange   ProposalType = "parameter_change"
	ProposalReserveAdjustment ProposalType = "reserve_adjustment"
	ProposalFeatureAddition   ProposalType = "feature_addition"
	ProposalPolicyUpdate      ProposalType = "policy_update"
)

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusPassed   ProposalStatus = "passed"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExecuted ProposalStatus = "executed"
)

type Proposal struct {
	ID           string         `json:"id"`
	Type         ProposalType   `json:"type"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Creator      string         `json:"creator"`
	CreationTime time.Time      `json:"creationTime"`
	Status       ProposalStatus `json:"status"`
	VotingEndsAt time.Time      `json:"votingEndsAt"`
	// ExecutionDelay counts from VotingEndsAt, fixed at creation from config.
	ExecutionDelay time.Duration   `json:"executionDelay"`
	VotesFor       decimal.Decimal `json:"votesFor"`
	VotesAgainst   decimal.Decimal `json:"votesAgainst"`
	// ParameterChanges is opaque to the state machine, interpreted only by the
	// executor hook at execution time.
	ParameterChanges map[string]string `json:"parameterChanges,omitempty"`
}

// Vote is the live vote of one voter on one proposal. A re-vote replaces it.
type Vote struct {
	Voter   string          `json:"voter"`
	Weight  decimal.Decimal `json:"weight"`
	Time    time.Time       `json:"time"`
	Support bool            `json:"support"`
}
