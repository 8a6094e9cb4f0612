package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript resets the TTL only if the key still carries our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker shares locks between bot replicas through SET NX PX.
type RedisLocker struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisLocker wraps client. Keys are stored under "warden:lock:".
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client, prefix: "warden:lock:"}
}

// TryAcquire implements Locker.
func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	full := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", key, err)
	}
	if !ok {
		return nil, heldError(key)
	}
	return &redisLease{client: l.client, key: key, full: full, token: token}, nil
}

type redisLease struct {
	client redis.UniversalClient
	key    string
	full   string
	token  string
}

func (r *redisLease) Extend(ctx context.Context, ttl time.Duration) error {
	n, err := extendScript.Run(ctx, r.client, []string{r.full}, r.token, ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("extend lock %q: %w", r.key, err)
	}
	if n == 0 {
		return heldError(r.key)
	}
	return nil
}

func (r *redisLease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, r.client, []string{r.full}, r.token).Err(); err != nil {
		return fmt.Errorf("release lock %q: %w", r.key, err)
	}
	return nil
}
