package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSeedFlagStore keeps the "catalog seeded" flag and the seeding lock in
// Redis, outside the exercise store. The flag value is the catalog version
// that was seeded.
type RedisSeedFlagStore struct {
	client  *redis.Client
	flagKey string
	lockKey string
	lockTTL time.Duration
	version int
}

func NewRedisSeedFlagStore(client *redis.Client, flagKey string, lockTTL time.Duration, catalogVersion int) *RedisSeedFlagStore {
	return &RedisSeedFlagStore{
		client:  client,
		flagKey: flagKey,
		lockKey: flagKey + ":lock",
		lockTTL: lockTTL,
		version: catalogVersion,
	}
}

func (s *RedisSeedFlagStore) IsSeeded(ctx context.Context) (bool, error) {
	_, err := s.client.Get(ctx, s.flagKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read seed flag: %w", err)
	}
	return true, nil
}

// SeededVersion returns the catalog version recorded by MarkSeeded, or 0.
func (s *RedisSeedFlagStore) SeededVersion(ctx context.Context) (int, error) {
	v, err := s.client.Get(ctx, s.flagKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read seed flag: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid seed flag value %q: %w", v, err)
	}
	return n, nil
}

func (s *RedisSeedFlagStore) MarkSeeded(ctx context.Context) error {
	if err := s.client.Set(ctx, s.flagKey, s.version, 0).Err(); err != nil {
		return fmt.Errorf("failed to set seed flag: %w", err)
	}
	return nil
}

// AcquireLock takes the seeding lock with SETNX. The lock expires after the
// configured TTL so a crashed seeder cannot block later attempts forever.
func (s *RedisSeedFlagStore) AcquireLock(ctx context.Context) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.lockKey, time.Now().Unix(), s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire seed lock: %w", err)
	}
	return ok, nil
}

func (s *RedisSeedFlagStore) ReleaseLock(ctx context.Context) error {
	if err := s.client.Del(ctx, s.lockKey).Err(); err != nil {
		return fmt.Errorf("failed to release seed lock: %w", err)
	}
	return nil
}
