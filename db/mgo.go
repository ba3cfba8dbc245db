// Package db
package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	cTxs       = "Transactions"
	cProposals = "Proposals"
)

type mongoDB struct {
	logger *zap.Logger
	client *mongo.Client
	db     *mongo.Database
}

func newMongoDB(cfg Config) (*mongoDB, error) {
	ctx := context.Background()
	mgoOptions := options.Client()
	mgoOptions.ApplyURI(cfg.URL)
	mgoOptions.SetMinPoolSize(uint64(cfg.MinConn))
	mgoOptions.SetMaxPoolSize(uint64(cfg.MaxConn))
	mgoClient, err := mongo.NewClient(mgoOptions)
	if err != nil {
		return nil, err
	}
	if err := mgoClient.Connect(ctx); err != nil {
		return nil, err
	}

	dbClient := &mongoDB{
		logger: cfg.Logger.With(zap.String("db", "mgo")),
		client: mgoClient,
		db:     mgoClient.Database(cfg.DbName),
	}

	if cfg.FlushDB {
		cfg.Logger.Info("Start flush database")
		if err := dbClient.dropDatabase(ctx); err != nil {
			return nil, err
		}
	}

	if err := dbClient.createIndexes(ctx); err != nil {
		return nil, err
	}
	return dbClient, nil
}

func (m *mongoDB) ping() error {
	return m.client.Ping(context.Background(), nil)
}

func (m *mongoDB) dropDatabase(ctx context.Context) error {
	return m.db.Drop(ctx)
}

func (m *mongoDB) createIndexes(ctx context.Context) error {
	txIndexes := []mongo.IndexModel{
		{Keys: bson.M{"id": -1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"sender": 1}},
		{Keys: bson.M{"recipient": 1}},
		{Keys: bson.M{"time": -1}},
	}
	if _, err := m.db.Collection(cTxs).Indexes().CreateMany(ctx, txIndexes); err != nil {
		return err
	}
	proposalIndexes := []mongo.IndexModel{
		{Keys: bson.M{"id": -1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"status": 1}},
	}
	if _, err := m.db.Collection(cProposals).Indexes().CreateMany(ctx, proposalIndexes); err != nil {
		return err
	}
	return nil
}
