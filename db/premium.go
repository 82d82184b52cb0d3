package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PremiumGuild method returns the premium entitlement of the given guild.
// If the guild has never been premium, it returns the specific error.
func (ms *MongoStorage) PremiumGuild(guildID string) (*PremiumGuild, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	premium := &PremiumGuild{}
	if err := ms.guildPremium.FindOne(ctx, bson.M{"_id": guildID}).Decode(premium); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return premium, nil
}

// SetPremiumGuild method creates or updates the premium entitlement of a
// guild.
func (ms *MongoStorage) SetPremiumGuild(premium *PremiumGuild) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if premium.GuildID == "" {
		return ErrInvalidData
	}
	updateDoc, err := dynamicUpdateDocument(premium, []string{"nextPayDate", "lastOrderId"})
	if err != nil {
		return err
	}
	opts := options.Update().SetUpsert(true)
	if _, err := ms.guildPremium.UpdateOne(ctx, bson.M{"_id": premium.GuildID}, updateDoc, opts); err != nil {
		return err
	}
	return nil
}

// PremiumUser method returns the premium entitlement of the given user.
// If the user has never been premium, it returns the specific error.
func (ms *MongoStorage) PremiumUser(userID string) (*PremiumUser, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	premium := &PremiumUser{}
	if err := ms.userPremium.FindOne(ctx, bson.M{"_id": userID}).Decode(premium); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return premium, nil
}

// SetPremiumUser method creates or updates the premium entitlement of a
// user.
func (ms *MongoStorage) SetPremiumUser(premium *PremiumUser) error {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if premium.UserID == "" {
		return ErrInvalidData
	}
	updateDoc, err := dynamicUpdateDocument(premium, []string{"nextPayDate", "lastOrderId"})
	if err != nil {
		return err
	}
	opts := options.Update().SetUpsert(true)
	if _, err := ms.userPremium.UpdateOne(ctx, bson.M{"_id": premium.UserID}, updateDoc, opts); err != nil {
		return err
	}
	return nil
}
