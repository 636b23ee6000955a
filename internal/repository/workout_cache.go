package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tec_learning_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

const workoutCacheGenKey = "workouts:list:gen"

// WorkoutCache 缓存训练题列表（已去除答案的视图）。
// 失效时递增代号，旧代号的键随 TTL 过期。
type WorkoutCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWorkoutCache(client *redis.Client, ttl time.Duration) *WorkoutCache {
	return &WorkoutCache{client: client, ttl: ttl}
}

func (c *WorkoutCache) key(ctx context.Context, filter model.WorkoutFilter) (string, error) {
	gen, err := c.client.Get(ctx, workoutCacheGenKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("workouts:list:%d:%s", gen, filter.CacheKey()), nil
}

// Get 未命中时返回 ok=false
func (c *WorkoutCache) Get(ctx context.Context, filter model.WorkoutFilter) ([]model.WorkoutView, bool, error) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var views []model.WorkoutView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false, err
	}
	return views, true, nil
}

func (c *WorkoutCache) Set(ctx context.Context, filter model.WorkoutFilter, views []model.WorkoutView) error {
	key, err := c.key(ctx, filter)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *WorkoutCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, workoutCacheGenKey).Err()
}
