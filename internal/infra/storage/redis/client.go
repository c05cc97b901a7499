// Package redis implements the addrwatch.HistoryStorage interface on top of
// a Redis hash, for deployments where runs happen on ephemeral hosts and a
// state file would not survive between them.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// client wraps the Redis connection shared by the storage implementations
// in this package.
type client struct {
	conn *redis.Client
}

// Close releases the underlying Redis connection.
func (c *client) Close() error {
	return c.conn.Close()
}

// NewClient connects to Redis and verifies the connection with a ping
// before returning the client.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}
