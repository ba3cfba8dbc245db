// Package db
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopspring/decimal"

	"github.com/dacr-network/dacr-backend/types"
)

type ProposalRecord struct {
	ID               string            `json:"id" bson:"id"`
	Type             string            `json:"type" bson:"type"`
	Title            string            `json:"title" bson:"title"`
	Description      string            `json:"description" bson:"description"`
	Creator          string            `json:"creator" bson:"creator"`
	CreationTime     time.Time         `json:"creationTime" bson:"creationTime"`
	Status           string            `json:"status" bson:"status"`
	VotingEndsAt     time.Time         `json:"votingEndsAt" bson:"votingEndsAt"`
	ExecutionDelay   int64             `json:"executionDelay" bson:"executionDelay"` // seconds
	VotesFor         string            `json:"votesFor" bson:"votesFor"`
	VotesAgainst     string            `json:"votesAgainst" bson:"votesAgainst"`
	ParameterChanges map[string]string `json:"parameterChanges" bson:"parameterChanges"`
	UpdateTime       int64             `json:"updateTime" bson:"updateTime"`
}

type IProposal interface {
	UpsertProposal(ctx context.Context, p *types.Proposal) error
	ProposalByID(ctx context.Context, id string) (*types.Proposal, error)
	Proposals(ctx context.Context, status types.ProposalStatus) ([]*types.Proposal, error)
}

func (m *mongoDB) UpsertProposal(ctx context.Context, p *types.Proposal) error {
	record := toProposalRecord(p)
	record.UpdateTime = time.Now().Unix()
	model := []mongo.WriteModel{
		mongo.NewUpdateOneModel().SetUpsert(true).SetFilter(bson.M{"id": record.ID}).SetUpdate(bson.M{"$set": record}),
	}
	if _, err := m.db.Collection(cProposals).BulkWrite(ctx, model); err != nil {
		return err
	}
	return nil
}

func (m *mongoDB) ProposalByID(ctx context.Context, id string) (*types.Proposal, error) {
	var record ProposalRecord
	err := m.db.Collection(cProposals).FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromProposalRecord(&record)
}

func (m *mongoDB) Proposals(ctx context.Context, status types.ProposalStatus) ([]*types.Proposal, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	opts := options.Find().SetSort(bson.M{"creationTime": 1})
	cursor, err := m.db.Collection(cProposals).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var proposals []*types.Proposal
	for cursor.Next(ctx) {
		var record ProposalRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		p, err := fromProposalRecord(&record)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}

func toProposalRecord(p *types.Proposal) *ProposalRecord {
	return &ProposalRecord{
		ID:               p.ID,
		Type:             string(p.Type),
		Title:            p.Title,
		Description:      p.Description,
		Creator:          p.Creator,
		CreationTime:     p.CreationTime,
		Status:           string(p.Status),
		VotingEndsAt:     p.VotingEndsAt,
		ExecutionDelay:   int64(p.ExecutionDelay / time.Second),
		VotesFor:         p.VotesFor.String(),
		VotesAgainst:     p.VotesAgainst.String(),
		ParameterChanges: p.ParameterChanges,
	}
}

func fromProposalRecord(record *ProposalRecord) (*types.Proposal, error) {
	votesFor, err := decimal.NewFromString(record.VotesFor)
	if err != nil {
		return nil, err
	}
	votesAgainst, err := decimal.NewFromString(record.VotesAgainst)
	if err != nil {
		return nil, err
	}
	return &types.Proposal{
		ID:               record.ID,
		Type:             types.ProposalType(record.Type),
		Title:            record.Title,
		Description:      record.Description,
		Creator:          record.Creator,
		CreationTime:     record.CreationTime,
		Status:           types.ProposalStatus(record.Status),
		VotingEndsAt:     record.VotingEndsAt,
		ExecutionDelay:   time.Duration(record.ExecutionDelay) * time.Second,
		VotesFor:         votesFor,
		VotesAgainst:     votesAgainst,
		ParameterChanges: record.ParameterChanges,
	}, nil
}
