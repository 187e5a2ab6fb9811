// Package redis holds the process-wide client backing the idempotency
// cache on the funding and deposit endpoints.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init parses the connection URL, applies the standalone password when one
// is configured and verifies the server answers before the ledger starts
// accepting requests.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// SetClient swaps the process client; tests point this at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the process client.
func GetClient() *redis.Client {
	return client
}

// Close releases the client connections on shutdown. Safe to call when Init
// never ran.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Set stores an idempotency record for its retention period.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get reads a stored record; a missing key surfaces as redis.Nil.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del drops a record so its key can be retried.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX acquires the processing lock for a key if nobody holds it yet.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
