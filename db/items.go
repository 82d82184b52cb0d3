package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildbot/premium-backend/log"
)

//go:embed items_default.json
var defaultItemsJSON []byte

// ReadItemJSON returns the default catalog items embedded in the binary.
// They are seeded into the items collection on startup.
func ReadItemJSON() ([]*Item, error) {
	var items []*Item
	if err := json.Unmarshal(defaultItemsJSON, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// seedItems inserts the given catalog items if they are not already stored.
// Existing items are left untouched so price changes made through SetItem
// survive restarts.
func (ms *MongoStorage) seedItems(items []*Item) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, item := range items {
		count, err := ms.items.CountDocuments(ctx, bson.M{"_id": item.ItemID})
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := ms.items.InsertOne(ctx, item); err != nil {
			return err
		}
		log.Infow("seeded catalog item", "item", item.ItemID, "amount", item.Amount)
	}
	return nil
}

// Item method returns the catalog item with the given identifier. If the
// item doesn't exist, it returns the specific error.
func (ms *MongoStorage) Item(itemID string) (*Item, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	item := &Item{}
	if err := ms.items.FindOne(ctx, bson.M{"_id": itemID}).Decode(item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Items method returns all catalog items from the database.
func (ms *MongoStorage) Items() ([]*Item, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := ms.items.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("failed to close items cursor", "error", err)
		}
	}()
	var items []*Item
	for cursor.Next(ctx) {
		item := &Item{}
		if err := cursor.Decode(item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SetItem method creates or updates the catalog item in the database.
func (ms *MongoStorage) SetItem(item *Item) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if item.ItemID == "" || !validTargetTypes[item.Type] {
		return ErrInvalidData
	}
	updateDoc, err := dynamicUpdateDocument(item, nil)
	if err != nil {
		return err
	}
	opts := options.Update().SetUpsert(true)
	if _, err := ms.items.UpdateOne(ctx, bson.M{"_id": item.ItemID}, updateDoc, opts); err != nil {
		return err
	}
	return nil
}
