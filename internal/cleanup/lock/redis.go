// Package lock provides the cross-instance guard for cleanup runs.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"quorum/pkg/platform/sentinel"
)

// ErrHeld is returned when another instance holds the lock. It matches
// sentinel.ErrConflict.
var ErrHeld = fmt.Errorf("lock held by another instance: %w", sentinel.ErrConflict)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a single-key lease taken with SET NX PX.
type Redis struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewRedis(client redis.Cmdable, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

// Acquire takes the lease or fails with ErrHeld. The returned func releases
// it and is safe to call after the lease expired.
func (l *Redis) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", l.key, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("release %s: %w", l.key, err)
		}
		return nil
	}, nil
}
