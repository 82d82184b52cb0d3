package bot

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	lookupCacheSize = 1024
	lookupCacheTTL  = time.Minute
)

// CachedLookup puts a small expirable LRU in front of another Cache, so
// the metadata resolver does not hit Redis on every checkout page reload.
// Negative results are not cached: a guild the bot just joined should show
// up as soon as the mirror has it.
type CachedLookup struct {
	source Cache
	guilds *expirable.LRU[string, *Guild]
	users  *expirable.LRU[string, *User]
}

// NewCachedLookup wraps source with an in-memory LRU layer.
func NewCachedLookup(source Cache) *CachedLookup {
	return &CachedLookup{
		source: source,
		guilds: expirable.NewLRU[string, *Guild](lookupCacheSize, nil, lookupCacheTTL),
		users:  expirable.NewLRU[string, *User](lookupCacheSize, nil, lookupCacheTTL),
	}
}

// Guild returns the cached metadata of the given guild.
func (c *CachedLookup) Guild(ctx context.Context, id string) (*Guild, error) {
	if guild, ok := c.guilds.Get(id); ok {
		return guild, nil
	}
	guild, err := c.source.Guild(ctx, id)
	if err != nil {
		return nil, err
	}
	c.guilds.Add(id, guild)
	return guild, nil
}

// User returns the cached metadata of the given user.
func (c *CachedLookup) User(ctx context.Context, id string) (*User, error) {
	if user, ok := c.users.Get(id); ok {
		return user, nil
	}
	user, err := c.source.User(ctx, id)
	if err != nil {
		return nil, err
	}
	c.users.Add(id, user)
	return user, nil
}
