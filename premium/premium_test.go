package premium

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/guildbot/premium-backend/bot"
	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/test"
)

var testDB *db.MongoStorage

const (
	testUserID  = "U1"
	testGuildID = "G1"
	testItemID  = "premium-1"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	dbContainer, err := test.StartMongoContainer(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to start MongoDB container: %v", err))
	}
	mongoURI, err := dbContainer.Endpoint(ctx, "mongodb")
	if err != nil {
		panic(fmt.Sprintf("failed to get MongoDB endpoint: %v", err))
	}
	items, err := db.ReadItemJSON()
	if err != nil {
		panic(fmt.Sprintf("failed to read the default items: %v", err))
	}
	testDB, err = db.New(mongoURI, test.RandomDatabaseName(), items)
	if err != nil {
		panic(fmt.Sprintf("failed to create new MongoDB connection: %v", err))
	}

	code := m.Run()

	testDB.Close()
	if err := dbContainer.Terminate(ctx); err != nil {
		panic(fmt.Sprintf("failed to stop MongoDB container: %v", err))
	}
	os.Exit(code)
}

// resetDB drops the collections and puts the catalog item used by the
// grant tests back in place.
func resetDB(c *qt.C) {
	c.Assert(testDB.Reset(), qt.IsNil)
	c.Assert(testDB.SetItem(&db.Item{
		ItemID:     testItemID,
		Name:       "Guild Premium (1 month)",
		Amount:     4900,
		Type:       db.TargetGuild,
		PeriodDays: 30,
	}), qt.IsNil)
}

// fakeCache is a map-backed bot.Cache used instead of the Redis mirror.
type fakeCache struct {
	guilds map[string]*bot.Guild
	users  map[string]*bot.User
}

func (f *fakeCache) Guild(_ context.Context, id string) (*bot.Guild, error) {
	if guild, ok := f.guilds[id]; ok {
		return guild, nil
	}
	return nil, bot.ErrNotCached
}

func (f *fakeCache) User(_ context.Context, id string) (*bot.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, bot.ErrNotCached
}

func testCache() *fakeCache {
	return &fakeCache{
		guilds: map[string]*bot.Guild{
			testGuildID: {ID: testGuildID, Name: "Test Guild", Icon: "icon-hash"},
		},
		users: map[string]*bot.User{
			testUserID: {ID: testUserID, Username: "tester", Avatar: "avatar-hash", Discriminator: "0001"},
		},
	}
}

func guildOrder(orderID string) *db.Order {
	return &db.Order{
		OrderID: orderID,
		UserID:  testUserID,
		Target:  testGuildID,
		Item:    testItemID,
		Name:    "Guild Premium (1 month)",
		Amount:  4900,
		Process: db.OrderSuccess,
		Type:    db.TargetGuild,
	}
}

func TestGrantGuild(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	before := time.Now()
	c.Assert(service.Grant(guildOrder("order-1")), qt.IsNil)

	entitlement, err := testDB.PremiumGuild(testGuildID)
	c.Assert(err, qt.IsNil)
	c.Assert(entitlement.ActivatedBy, qt.Equals, testUserID)
	c.Assert(entitlement.LastOrderID, qt.Equals, "order-1")
	// premium-1 grants 30 days
	c.Assert(entitlement.NextPayDate.After(before.Add(30*24*time.Hour-time.Minute)), qt.IsTrue)
	c.Assert(entitlement.NextPayDate.Before(before.Add(30*24*time.Hour+time.Minute)), qt.IsTrue)
}

func TestGrantIdempotent(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	c.Assert(service.Grant(guildOrder("order-1")), qt.IsNil)
	first, err := testDB.PremiumGuild(testGuildID)
	c.Assert(err, qt.IsNil)

	// re-granting the same order converges without extending
	c.Assert(service.Grant(guildOrder("order-1")), qt.IsNil)
	second, err := testDB.PremiumGuild(testGuildID)
	c.Assert(err, qt.IsNil)
	c.Assert(second.NextPayDate.Equal(first.NextPayDate), qt.IsTrue)

	// a different order stacks on top of the active entitlement
	c.Assert(service.Grant(guildOrder("order-2")), qt.IsNil)
	third, err := testDB.PremiumGuild(testGuildID)
	c.Assert(err, qt.IsNil)
	c.Assert(third.LastOrderID, qt.Equals, "order-2")
	gained := third.NextPayDate.Sub(first.NextPayDate)
	c.Assert(gained >= 30*24*time.Hour-time.Minute, qt.IsTrue)
	c.Assert(gained <= 30*24*time.Hour+time.Minute, qt.IsTrue)
}

func TestGrantLapsedRestartsFromNow(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	// an entitlement that expired months ago
	c.Assert(testDB.SetPremiumGuild(&db.PremiumGuild{
		GuildID:     testGuildID,
		NextPayDate: time.Now().Add(-90 * 24 * time.Hour),
		ActivatedBy: testUserID,
		LastOrderID: "old-order",
	}), qt.IsNil)

	before := time.Now()
	c.Assert(service.Grant(guildOrder("order-1")), qt.IsNil)
	entitlement, err := testDB.PremiumGuild(testGuildID)
	c.Assert(err, qt.IsNil)
	c.Assert(entitlement.NextPayDate.After(before.Add(30*24*time.Hour-time.Minute)), qt.IsTrue)
	c.Assert(entitlement.NextPayDate.Before(before.Add(30*24*time.Hour+time.Minute)), qt.IsTrue)
}

func TestGrantUser(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	c.Assert(testDB.SetItem(&db.Item{
		ItemID:     "user-premium-1",
		Name:       "User Premium (1 month)",
		Amount:     2900,
		Type:       db.TargetUser,
		PeriodDays: 30,
	}), qt.IsNil)
	order := &db.Order{
		OrderID: "order-1",
		UserID:  testUserID,
		Target:  testUserID,
		Item:    "user-premium-1",
		Process: db.OrderSuccess,
		Type:    db.TargetUser,
	}
	c.Assert(service.Grant(order), qt.IsNil)
	entitlement, err := testDB.PremiumUser(testUserID)
	c.Assert(err, qt.IsNil)
	c.Assert(entitlement.LastOrderID, qt.Equals, "order-1")
}

func TestGrantUnknownItem(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	order := guildOrder("order-1")
	order.Item = "does-not-exist"
	c.Assert(service.Grant(order), qt.IsNotNil)
	// nothing was granted
	_, err := testDB.PremiumGuild(testGuildID)
	c.Assert(err, qt.Equals, db.ErrNotFound)
}

func TestResolverGuild(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	resolver, err := service.Resolver(db.TargetGuild)
	c.Assert(err, qt.IsNil)
	metadata, err := resolver.Metadata(context.Background(), testGuildID)
	c.Assert(err, qt.IsNil)
	c.Assert(metadata.Type, qt.Equals, db.TargetGuild)
	c.Assert(metadata.Name, qt.Equals, "Test Guild")
	c.Assert(metadata.Icon, qt.Equals, "icon-hash")

	// a guild the bot does not know is a cache miss
	_, err = resolver.Metadata(context.Background(), "G404")
	c.Assert(err, qt.Equals, bot.ErrNotCached)

	// no entitlement yet
	_, err = resolver.NextPayDate(testGuildID)
	c.Assert(err, qt.Equals, db.ErrNotFound)

	c.Assert(service.Grant(guildOrder("order-1")), qt.IsNil)
	nextPayDate, err := resolver.NextPayDate(testGuildID)
	c.Assert(err, qt.IsNil)
	c.Assert(nextPayDate.After(time.Now()), qt.IsTrue)
}

func TestResolverUser(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)
	service := New(testDB, testCache())

	resolver, err := service.Resolver(db.TargetUser)
	c.Assert(err, qt.IsNil)
	metadata, err := resolver.Metadata(context.Background(), testUserID)
	c.Assert(err, qt.IsNil)
	c.Assert(metadata.Type, qt.Equals, db.TargetUser)
	c.Assert(metadata.Name, qt.Equals, "tester")
	c.Assert(metadata.Discriminator, qt.Equals, "0001")

	_, err = service.Resolver(db.TargetType("banana"))
	c.Assert(err, qt.IsNotNil)
}
