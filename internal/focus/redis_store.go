package focus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps focus state in two keys per user. Task changes delete the
// suggestion key in the same MULTI; SetSuggestion WATCHes the task key.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "focus"}
}

func (s *RedisStore) taskKey(userID int) string {
	return fmt.Sprintf("%s:user:%d:task", s.prefix, userID)
}

func (s *RedisStore) suggestionKey(userID int) string {
	return fmt.Sprintf("%s:user:%d:suggestion", s.prefix, userID)
}

func (s *RedisStore) CurrentTask(ctx context.Context, userID int) (Task, bool, error) {
	var task Task
	ok, err := getJSON(ctx, s.client, s.taskKey(userID), &task)
	return task, ok, err
}

func (s *RedisStore) SetCurrentTask(ctx context.Context, userID int, task Task) error {
	b, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.taskKey(userID), b, 0)
		pipe.Del(ctx, s.suggestionKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set task: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearCurrentTask(ctx context.Context, userID int) error {
	if err := s.client.Del(ctx, s.taskKey(userID), s.suggestionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis clear task: %w", err)
	}
	return nil
}

func (s *RedisStore) Suggestion(ctx context.Context, userID int) (Suggestion, bool, error) {
	var sug Suggestion
	ok, err := getJSON(ctx, s.client, s.suggestionKey(userID), &sug)
	return sug, ok, err
}

func (s *RedisStore) SetSuggestion(ctx context.Context, userID int, sug Suggestion) error {
	b, err := json.Marshal(sug)
	if err != nil {
		return fmt.Errorf("marshal suggestion: %w", err)
	}

	taskKey := s.taskKey(userID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		var current Task
		ok, err := getJSON(ctx, tx, taskKey, &current)
		if err != nil {
			return err
		}
		if !ok || !current.Same(sug.ForTask) {
			return ErrStaleTask
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.suggestionKey(userID), b, 0)
			return nil
		})
		return err
	}, taskKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleTask), errors.Is(err, redis.TxFailedErr):
		return ErrStaleTask
	default:
		return fmt.Errorf("redis set suggestion: %w", err)
	}
}

func getJSON(ctx context.Context, c redis.Cmdable, key string, dst any) (bool, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
