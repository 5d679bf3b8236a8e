package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Key patterns: resolution_step:{game_id}:{step_id} holds the step
	// JSON; resolution_steps:{game_id} is the ordered id list.
	stepKeyPrefix = "resolution_step:"
	listKeyPrefix = "resolution_steps:"
)

// RedisConfig holds the dependencies of the Redis-backed store.
type RedisConfig struct {
	Client redis.UniversalClient
}

// Validate ensures all required dependencies are provided.
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return fmt.Errorf("redis client is required")
	}
	return nil
}

type redisStore struct {
	client redis.UniversalClient
}

var _ Store = (*redisStore)(nil)

// NewRedisStore creates a Redis-backed step store. Steps are stored without
// TTL: a pending step may remain unanswered indefinitely.
func NewRedisStore(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &redisStore{client: cfg.Client}, nil
}

func (s *redisStore) AddStep(ctx context.Context, step Step) error {
	if step.ID == "" {
		return fmt.Errorf("step id cannot be empty")
	}
	if step.GameID == "" {
		return fmt.Errorf("game id cannot be empty")
	}

	stepJSON, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("failed to marshal step: %w", err)
	}

	if err := s.client.Set(ctx, s.stepKey(step.GameID, step.ID), stepJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to store step: %w", err)
	}
	if err := s.client.RPush(ctx, s.listKey(step.GameID), step.ID).Err(); err != nil {
		return fmt.Errorf("failed to index step: %w", err)
	}
	return nil
}

func (s *redisStore) Pending(ctx context.Context, gameID string) ([]Step, error) {
	ids, err := s.client.LRange(ctx, s.listKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending steps: %w", err)
	}

	steps := make([]Step, 0, len(ids))
	for _, id := range ids {
		step, err := s.Get(ctx, gameID, id)
		if err == ErrStepNotFound {
			// Index entry with no value; drop it and move on.
			s.client.LRem(ctx, s.listKey(gameID), 0, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (s *redisStore) Get(ctx context.Context, gameID, stepID string) (Step, error) {
	stepJSON, err := s.client.Get(ctx, s.stepKey(gameID, stepID)).Result()
	if err == redis.Nil {
		return Step{}, ErrStepNotFound
	}
	if err != nil {
		return Step{}, fmt.Errorf("failed to get step: %w", err)
	}

	var step Step
	if err := json.Unmarshal([]byte(stepJSON), &step); err != nil {
		return Step{}, fmt.Errorf("failed to unmarshal step: %w", err)
	}
	return step, nil
}

func (s *redisStore) Remove(ctx context.Context, gameID, stepID string) error {
	removed, err := s.client.Del(ctx, s.stepKey(gameID, stepID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
	}
	if removed == 0 {
		return ErrStepNotFound
	}
	if err := s.client.LRem(ctx, s.listKey(gameID), 0, stepID).Err(); err != nil {
		return fmt.Errorf("failed to unindex step: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, gameID string) error {
	ids, err := s.client.LRange(ctx, s.listKey(gameID), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list steps for clear: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.stepKey(gameID, id))
	}
	keys = append(keys, s.listKey(gameID))
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear steps: %w", err)
	}
	return nil
}

func (s *redisStore) stepKey(gameID, stepID string) string {
	return fmt.Sprintf("%s%s:%s", stepKeyPrefix, gameID, stepID)
}

func (s *redisStore) listKey(gameID string) string {
	return fmt.Sprintf("%s%s", listKeyPrefix, gameID)
}
