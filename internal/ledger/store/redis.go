package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

const (
	lockTTL   = 10 * time.Second
	lockRetry = 100 * time.Millisecond
)

// Redis keeps the snapshot under a single key without expiry. Writes hold a
// redislock on "lock:<key>" so processes sharing the key never interleave.
type Redis struct {
	client *redis.Client
	locker *redislock.Client
	key    string
}

func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{
		client: client,
		locker: redislock.New(client),
		key:    key,
	}
}

func (s *Redis) LoadState(ctx context.Context) ([]byte, error) {
	blob, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ledger.ErrNoState
		}

		return nil, fmt.Errorf("getting %s: %w", s.key, err)
	}

	return blob, nil
}

func (s *Redis) SaveState(ctx context.Context, blob []byte) error {
	lock, err := s.locker.Obtain(ctx, "lock:"+s.key, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetry), int(lockTTL/lockRetry)),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return fmt.Errorf("locking %s: state is being written by another process", s.key)
		}

		return fmt.Errorf("locking %s: %w", s.key, err)
	}

	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	if err := s.client.Set(ctx, s.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", s.key, err)
	}

	return nil
}
