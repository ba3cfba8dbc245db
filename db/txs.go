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

// TxRecord is the persisted transaction shape. Amounts are stored as strings
// so repeated round trips never lose precision.
type TxRecord struct {
	ID        string            `json:"id" bson:"id"`
	Type      string            `json:"type" bson:"type"`
	Amount    string            `json:"amount" bson:"amount"`
	Sender    string            `json:"sender" bson:"sender"`
	Recipient string            `json:"recipient" bson:"recipient"`
	Time      time.Time         `json:"time" bson:"time"`
	Status    string            `json:"status" bson:"status"`
	Metadata  map[string]string `json:"metadata" bson:"metadata"`
}

type ITxs interface {
	InsertTx(ctx context.Context, tx *types.Transaction) error
	TxByID(ctx context.Context, id string) (*types.Transaction, error)
	TxsByAddress(ctx context.Context, address string) ([]*types.Transaction, error)
}

func (m *mongoDB) InsertTx(ctx context.Context, tx *types.Transaction) error {
	record := toTxRecord(tx)
	model := []mongo.WriteModel{
		mongo.NewUpdateOneModel().SetUpsert(true).SetFilter(bson.M{"id": record.ID}).SetUpdate(bson.M{"$set": record}),
	}
	if _, err := m.db.Collection(cTxs).BulkWrite(ctx, model); err != nil {
		return err
	}
	return nil
}

func (m *mongoDB) TxByID(ctx context.Context, id string) (*types.Transaction, error) {
	var record TxRecord
	err := m.db.Collection(cTxs).FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromTxRecord(&record)
}

func (m *mongoDB) TxsByAddress(ctx context.Context, address string) ([]*types.Transaction, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender": address},
		{"recipient": address},
	}}
	opts := options.Find().SetSort(bson.M{"time": 1})
	cursor, err := m.db.Collection(cTxs).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var txs []*types.Transaction
	for cursor.Next(ctx) {
		var record TxRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		tx, err := fromTxRecord(&record)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func toTxRecord(tx *types.Transaction) *TxRecord {
	return &TxRecord{
		ID:        tx.ID,
		Type:      string(tx.Type),
		Amount:    tx.Amount.String(),
		Sender:    tx.Sender,
		Recipient: tx.Recipient,
		Time:      tx.Time,
		Status:    string(tx.Status),
		Metadata:  tx.Metadata,
	}
}

func fromTxRecord(record *TxRecord) (*types.Transaction, error) {
	amount, err := decimal.NewFromString(record.Amount)
	if err != nil {
		return nil, err
	}
	return &types.Transaction{
		ID:        record.ID,
		Type:      types.TransactionType(record.Type),
		Amount:    amount,
		Sender:    record.Sender,
		Recipient: record.Recipient,
		Time:      record.Time,
		Status:    types.TransactionStatus(record.Status),
		Metadata:  record.Metadata,
	}, nil
}
