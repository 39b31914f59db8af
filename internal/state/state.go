package state

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog/relations/internal/domain"

	"github.com/redis/go-redis/v9"
)

const KeyPrefix = "catalog:progress:seed:"

// StateManager tracks how far seeding got, so a restart does not enqueue the same families twice.
type StateManager interface {
	GetLastEnqueuedSeed(ctx context.Context, seeds []domain.ASIN) (int, error)
	SetLastEnqueuedSeed(ctx context.Context, seeds []domain.ASIN, index int) error
}

type redisStateManager struct {
	redisClient *redis.Client
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{redisClient: redisClient}
}

// ProgressKey identifies a seed list by its content. A changed list starts from scratch.
func ProgressKey(seeds []domain.ASIN) string {
	ids := make([]string, 0, len(seeds))
	for _, s := range seeds {
		ids = append(ids, s.String())
	}
	sum := sha1.Sum([]byte(strings.Join(ids, ",")))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// GetLastEnqueuedSeed returns the index of the last enqueued seed, or -1 when nothing was enqueued yet.
func (s *redisStateManager) GetLastEnqueuedSeed(ctx context.Context, seeds []domain.ASIN) (int, error) {
	key := ProgressKey(seeds)

	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return 0, fmt.Errorf("failed to get seed progress %s: %w", key, err)
	}

	index, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse seed progress %s: %w", key, err)
	}
	return index, nil
}

func (s *redisStateManager) SetLastEnqueuedSeed(ctx context.Context, seeds []domain.ASIN, index int) error {
	key := ProgressKey(seeds)
	if err := s.redisClient.Set(ctx, key, index, 0).Err(); err != nil {
		return fmt.Errorf("failed to set seed progress %s: %w", key, err)
	}
	return nil
}
