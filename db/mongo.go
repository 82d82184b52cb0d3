package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/guildbot/premium-backend/log"
)

// MongoStorage uses an external MongoDB service for storing users, orders,
// the item catalog and the premium entitlements.
type MongoStorage struct {
	client   *mongo.Client
	keysLock sync.RWMutex

	users        *mongo.Collection
	orders       *mongo.Collection
	items        *mongo.Collection
	guildPremium *mongo.Collection
	userPremium  *mongo.Collection
}

// New connects to the MongoDB server and initializes the collections and
// indexes. The provided default items are inserted in the catalog if they
// are not already present.
func New(url, database string, defaultItems []*Item) (*MongoStorage, error) {
	ms := &MongoStorage{}
	if url == "" {
		return nil, fmt.Errorf("mongo URL is not defined")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo database is not defined")
	}
	log.Infow("connecting to mongodb", "url", url, "database", database)
	// preparing connection
	opts := options.Client()
	opts.ApplyURI(url)
	opts.SetMaxConnecting(200)
	timeout := time.Second * 10
	opts.ConnectTimeout = &timeout
	// create a new client with the connection options
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// check if the connection is successful
	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// init the collections
	ms.client = client
	if err := ms.initCollections(database); err != nil {
		return nil, err
	}
	if err := ms.createIndexes(); err != nil {
		return nil, err
	}
	// seed the catalog with the missing default items
	if err := ms.seedItems(defaultItems); err != nil {
		return nil, err
	}
	return ms, nil
}

func (ms *MongoStorage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.client.Disconnect(ctx); err != nil {
		log.Warn(err)
	}
}

// Reset drops every collection and recreates the indexes. Used by tests.
func (ms *MongoStorage) Reset() error {
	log.Infof("resetting database")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, collection := range []*mongo.Collection{
		ms.users, ms.orders, ms.items, ms.guildPremium, ms.userPremium,
	} {
		if err := collection.Drop(ctx); err != nil {
			return err
		}
	}
	return ms.createIndexes()
}
