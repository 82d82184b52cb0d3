// Package bot gives read-only access to the Discord metadata the bot
// process mirrors into Redis: the guilds it is a member of and the users it
// has seen. The payments API never talks to Discord itself, it only reads
// these snapshots.
package bot

import (
	"context"
	"fmt"
)

// ErrNotCached is returned when the requested guild or user is not present
// in the bot's cache mirror.
var ErrNotCached = fmt.Errorf("not present in bot cache")

// Guild is the display metadata of a guild as cached by the bot.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// User is the display metadata of a user as cached by the bot.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
}

// Cache is a read-only lookup over the bot's guild and user caches.
// Implementations return ErrNotCached when the identifier is unknown.
type Cache interface {
	Guild(ctx context.Context, id string) (*Guild, error)
	User(ctx context.Context, id string) (*User, error)
}
