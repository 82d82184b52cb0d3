package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User method returns the user with the given Discord identifier. If the
// user doesn't exist, it returns the specific error.
func (ms *MongoStorage) User(id string) (*User, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// find the user in the database
	user := &User{}
	if err := ms.users.FindOne(ctx, bson.M{"_id": id}).Decode(user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetUser method creates or updates the user in the database. If the user
// already exists, it updates the fields that have changed.
func (ms *MongoStorage) SetUser(user *User) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if user.ID == "" {
		return ErrInvalidData
	}
	updateDoc, err := dynamicUpdateDocument(user, nil)
	if err != nil {
		return err
	}
	// set upsert to true to create the document if it doesn't exist
	opts := options.Update().SetUpsert(true)
	if _, err := ms.users.UpdateOne(ctx, bson.M{"_id": user.ID}, updateDoc, opts); err != nil {
		return err
	}
	return nil
}

// SetUserPhone method stores the phone number captured during payment
// confirmation on the user document.
func (ms *MongoStorage) SetUserPhone(id, phone string) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	updateDoc := bson.M{"$set": bson.M{"phone": phone}}
	opts := options.Update().SetUpsert(true)
	if _, err := ms.users.UpdateOne(ctx, bson.M{"_id": id}, updateDoc, opts); err != nil {
		return err
	}
	return nil
}

// SetUserGatewayTokens method stores the gateway access and refresh tokens
// obtained from the BrandPay authorization exchange on the user document.
func (ms *MongoStorage) SetUserGatewayTokens(id, accessToken, refreshToken, tokenType string) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	updateDoc := bson.M{"$set": bson.M{
		"tossAccessToken":  accessToken,
		"tossRefreshToken": refreshToken,
		"tossTokenType":    tokenType,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := ms.users.UpdateOne(ctx, bson.M{"_id": id}, updateDoc, opts); err != nil {
		return err
	}
	return nil
}
