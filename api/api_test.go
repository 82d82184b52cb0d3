package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/guildbot/premium-backend/bot"
	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/errors"
	"github.com/guildbot/premium-backend/premium"
	"github.com/guildbot/premium-backend/test"
	"github.com/guildbot/premium-backend/toss"
)

var (
	testDB     *db.MongoStorage
	testAPI    *API
	testServer *httptest.Server

	gatewayMu      sync.Mutex
	gatewayHandler http.HandlerFunc
)

// Common test constants
const (
	testUserID  = "U1"
	testOtherID = "U2"
	testGuildID = "G1"
	testItemID  = "premium-1"
)

// setGateway installs the fake gateway behavior for the current test.
func setGateway(handler http.HandlerFunc) {
	gatewayMu.Lock()
	defer gatewayMu.Unlock()
	gatewayHandler = handler
}

func TestMain(m *testing.M) {
	ctx := context.Background()
	// start a MongoDB container for testing
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

	// fake Toss gateway, per-test behavior installed with setGateway
	gatewayServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayMu.Lock()
		handler := gatewayHandler
		gatewayMu.Unlock()
		if handler == nil {
			gatewayJSON(w, http.StatusNotImplemented, map[string]string{
				"code":    "NOT_STUBBED",
				"message": "no gateway behavior installed",
			})
			return
		}
		handler(w, r)
	}))

	cache := testCache()
	testAPI = New(&Config{
		Secret: "test-secret",
		DB:     testDB,
		Toss: toss.NewClient(&toss.Config{
			APIURL:            gatewayServer.URL,
			SecretKey:         "sk_test",
			BrandPaySecretKey: "sk_brandpay_test",
		}),
		Premium: premium.New(testDB, cache),
		Cache:   cache,
	})
	testServer = httptest.NewServer(testAPI.Router())

	code := m.Run()

	testServer.Close()
	gatewayServer.Close()
	testDB.Close()
	if err := dbContainer.Terminate(ctx); err != nil {
		panic(fmt.Sprintf("failed to stop MongoDB container: %v", err))
	}
	os.Exit(code)
}

// resetDB drops the collections and reseeds the default catalog, leaving a
// clean database for the next test.
func resetDB(c *qt.C) {
	c.Assert(testDB.Reset(), qt.IsNil)
	items, err := db.ReadItemJSON()
	c.Assert(err, qt.IsNil)
	for _, item := range items {
		c.Assert(testDB.SetItem(item), qt.IsNil)
	}
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

// userToken returns a signed session token for the given user identifier.
func userToken(c *qt.C, id string) string {
	token, err := testAPI.makeToken(id)
	c.Assert(err, qt.IsNil)
	return token
}

// doRequest performs a request against the test server and returns the
// status code and raw body.
func doRequest(c *qt.C, method, path, token string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		c.Assert(err, qt.IsNil)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, testServer.URL+path, reader)
	c.Assert(err, qt.IsNil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	defer func() {
		c.Assert(resp.Body.Close(), qt.IsNil)
	}()
	data, err := io.ReadAll(resp.Body)
	c.Assert(err, qt.IsNil)
	return resp.StatusCode, data
}

// apiErrorBody mirrors the JSON shape of the API error responses.
type apiErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func decodeError(c *qt.C, data []byte) apiErrorBody {
	body := apiErrorBody{}
	c.Assert(json.Unmarshal(data, &body), qt.IsNil)
	return body
}

// gatewayJSON writes a JSON response with the given status, mimicking the
// gateway's response shape.
func gatewayJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestPing(t *testing.T) {
	c := qt.New(t)
	status, data := doRequest(c, http.MethodGet, pingEndpoint, "", nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(string(data), qt.Equals, ".")
}

func TestItemsPublic(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)

	// no token needed
	status, data := doRequest(c, http.MethodGet, itemsEndpoint, "", nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	items := []*db.Item{}
	c.Assert(json.Unmarshal(data, &items), qt.IsNil)
	c.Assert(len(items) >= 3, qt.IsTrue)
	byID := map[string]*db.Item{}
	for _, item := range items {
		byID[item.ItemID] = item
	}
	c.Assert(byID[testItemID], qt.IsNotNil)
	c.Assert(byID[testItemID].Amount, qt.Equals, int64(4900))
	c.Assert(byID[testItemID].Type, qt.Equals, db.TargetGuild)
}

func TestAuthRequired(t *testing.T) {
	c := qt.New(t)
	status, data := doRequest(c, http.MethodPost, ordersEndpoint, "", &OrderRequest{ItemID: testItemID, GuildID: testGuildID})
	c.Assert(status, qt.Equals, http.StatusUnauthorized)
	body := decodeError(c, data)
	c.Assert(body.Code, qt.Equals, errors.ErrUnauthorized.Code)

	// garbage token
	status, _ = doRequest(c, http.MethodPost, ordersEndpoint, "not-a-jwt", &OrderRequest{ItemID: testItemID, GuildID: testGuildID})
	c.Assert(status, qt.Equals, http.StatusUnauthorized)
}
