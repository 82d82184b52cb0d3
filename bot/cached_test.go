package bot

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
)

// countingCache records how many times each lookup reached the source.
type countingCache struct {
	guilds     map[string]*Guild
	users      map[string]*User
	guildCalls int
	userCalls  int
}

func (f *countingCache) Guild(_ context.Context, id string) (*Guild, error) {
	f.guildCalls++
	if guild, ok := f.guilds[id]; ok {
		return guild, nil
	}
	return nil, ErrNotCached
}

func (f *countingCache) User(_ context.Context, id string) (*User, error) {
	f.userCalls++
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, ErrNotCached
}

func TestCachedLookupGuild(t *testing.T) {
	c := qt.New(t)
	source := &countingCache{
		guilds: map[string]*Guild{"G1": {ID: "G1", Name: "Test Guild"}},
	}
	lookup := NewCachedLookup(source)

	guild, err := lookup.Guild(context.Background(), "G1")
	c.Assert(err, qt.IsNil)
	c.Assert(guild.Name, qt.Equals, "Test Guild")
	// the second hit is served from the LRU
	_, err = lookup.Guild(context.Background(), "G1")
	c.Assert(err, qt.IsNil)
	c.Assert(source.guildCalls, qt.Equals, 1)
}

func TestCachedLookupDoesNotCacheMisses(t *testing.T) {
	c := qt.New(t)
	source := &countingCache{guilds: map[string]*Guild{}, users: map[string]*User{}}
	lookup := NewCachedLookup(source)

	_, err := lookup.Guild(context.Background(), "G404")
	c.Assert(err, qt.Equals, ErrNotCached)
	// the guild shows up in the mirror: the next lookup must see it
	source.guilds["G404"] = &Guild{ID: "G404", Name: "Fresh Guild"}
	guild, err := lookup.Guild(context.Background(), "G404")
	c.Assert(err, qt.IsNil)
	c.Assert(guild.Name, qt.Equals, "Fresh Guild")
	c.Assert(source.guildCalls, qt.Equals, 2)
}

func TestCachedLookupUser(t *testing.T) {
	c := qt.New(t)
	source := &countingCache{
		users: map[string]*User{"U1": {ID: "U1", Username: "tester"}},
	}
	lookup := NewCachedLookup(source)

	user, err := lookup.User(context.Background(), "U1")
	c.Assert(err, qt.IsNil)
	c.Assert(user.Username, qt.Equals, "tester")
	_, err = lookup.User(context.Background(), "U1")
	c.Assert(err, qt.IsNil)
	c.Assert(source.userCalls, qt.Equals, 1)
}
