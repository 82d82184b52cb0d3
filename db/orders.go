package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildbot/premium-backend/log"
)

// Order method returns the order with the given identifier. If the order
// doesn't exist, it returns the specific error.
func (ms *MongoStorage) Order(orderID string) (*Order, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// find the order in the database
	order := &Order{}
	if err := ms.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// SetOrder method inserts a new order in the database. Orders are created
// once with the open process state and are never replaced.
func (ms *MongoStorage) SetOrder(order *Order) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if order.OrderID == "" || order.UserID == "" {
		return ErrInvalidData
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if _, err := ms.orders.InsertOne(ctx, order); err != nil {
		return err
	}
	return nil
}

// SetOrderSuccess method marks the order as successful and attaches the raw
// gateway confirmation payload. The update filter requires the open state,
// so an order can transition at most once; a second call returns
// ErrAlreadySuccess and leaves the stored document untouched.
func (ms *MongoStorage) SetOrderSuccess(orderID string, payment map[string]any) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	filter := bson.M{"_id": orderID, "process": OrderOpen}
	updateDoc := bson.M{"$set": bson.M{"process": OrderSuccess, "payment": payment}}
	result, err := ms.orders.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// distinguish a missing order from one already completed
		count, err := ms.orders.CountDocuments(ctx, bson.M{"_id": orderID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadySuccess
	}
	return nil
}

// UserOrders method returns all orders of the given user, most recent first.
func (ms *MongoStorage) UserOrders(userID string) ([]*Order, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := ms.orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("failed to close orders cursor", "error", err)
		}
	}()
	// iterate over the cursor and decode each order
	var orders []*Order
	for cursor.Next(ctx) {
		order := &Order{}
		if err := cursor.Decode(order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
