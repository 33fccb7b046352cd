package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// RedisStore persists assignments in one hash per experiment, keyed by user ID,
// so replicas and restarts see the same enrollment.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. The client lifecycle is managed by the caller.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) experimentKey(experimentID string) string {
	return s.prefix + experimentID
}

func (s *RedisStore) Get(ctx context.Context, key domain.AssignmentKey) (domain.Variant, bool, error) {
	val, err := s.client.HGet(ctx, s.experimentKey(key.ExperimentID), key.UserID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read assignment: %w", err)
	}
	return domain.Variant(val), true, nil
}

// PutIfAbsent uses HSETNX so the first writer across all replicas wins
func (s *RedisStore) PutIfAbsent(ctx context.Context, key domain.AssignmentKey, variant domain.Variant) (domain.Variant, error) {
	hkey := s.experimentKey(key.ExperimentID)

	set, err := s.client.HSetNX(ctx, hkey, key.UserID, string(variant)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to store assignment: %w", err)
	}
	if set {
		return variant, nil
	}

	existing, err := s.client.HGet(ctx, hkey, key.UserID).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read existing assignment: %w", err)
	}
	return domain.Variant(existing), nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	total := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := s.client.HLen(ctx, iter.Val()).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to count assignments: %w", err)
		}
		total += int(n)
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan assignment keys: %w", err)
	}
	return total, nil
}
