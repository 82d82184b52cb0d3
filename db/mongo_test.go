package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/guildbot/premium-backend/test"
)

var testDB *MongoStorage

// Common test constants
const (
	testUserID     = "U1"
	testOtherUser  = "U2"
	testGuildID    = "G1"
	testItemID     = "premium-1"
	testOrderID    = "11111111-2222-3333-4444-555555555555"
	testPhone      = "+821012345678"
	testItemName   = "Guild Premium (1 month)"
	testItemAmount = int64(4900)
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	// start a MongoDB container for testing
	dbContainer, err := test.StartMongoContainer(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to start MongoDB container: %v", err))
	}

	// get the MongoDB connection string
	mongoURI, err := dbContainer.Endpoint(ctx, "mongodb")
	if err != nil {
		panic(fmt.Sprintf("failed to get MongoDB endpoint: %v", err))
	}

	items, err := ReadItemJSON()
	if err != nil {
		panic(fmt.Sprintf("failed to read the default items: %v", err))
	}

	testDB, err = New(mongoURI, test.RandomDatabaseName(), items)
	if err != nil {
		panic(fmt.Sprintf("failed to create new MongoDB connection: %v", err))
	}

	code := m.Run()

	// close the database connection
	testDB.Close()

	// stop the MongoDB container
	if err := dbContainer.Terminate(ctx); err != nil {
		panic(fmt.Sprintf("failed to stop MongoDB container: %v", err))
	}

	os.Exit(code)
}

// resetDB drops the collections and reseeds the default catalog, leaving a
// clean database for the next test.
func resetDB(c *qt.C) {
	c.Assert(testDB.Reset(), qt.IsNil)
	items, err := ReadItemJSON()
	c.Assert(err, qt.IsNil)
	c.Assert(testDB.seedItems(items), qt.IsNil)
}

// testOrder returns a fresh open order for the worked example used across
// the storage tests.
func testOrder() *Order {
	return &Order{
		OrderID: testOrderID,
		UserID:  testUserID,
		Target:  testGuildID,
		Item:    testItemID,
		Name:    testItemName,
		Amount:  testItemAmount,
		Process: OrderOpen,
		Type:    TargetGuild,
	}
}
