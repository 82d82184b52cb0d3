package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	guildKeyPrefix = "bot:guilds:"
	userKeyPrefix  = "bot:users:"
)

// RedisCache reads the guild and user snapshots the bot process keeps in
// Redis. The bot owns the keys; this side only ever reads them.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server holding the bot cache mirror.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot connect to redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Guild returns the cached metadata of the given guild.
func (c *RedisCache) Guild(ctx context.Context, id string) (*Guild, error) {
	data, err := c.client.Get(ctx, guildKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotCached
		}
		return nil, err
	}
	guild := &Guild{}
	if err := json.Unmarshal(data, guild); err != nil {
		return nil, fmt.Errorf("malformed guild snapshot: %w", err)
	}
	return guild, nil
}

// User returns the cached metadata of the given user.
func (c *RedisCache) User(ctx context.Context, id string) (*User, error) {
	data, err := c.client.Get(ctx, userKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotCached
		}
		return nil, err
	}
	user := &User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("malformed user snapshot: %w", err)
	}
	return user, nil
}
