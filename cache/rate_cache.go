// Package cache keeps a Redis copy of the rate table so quote and report
// traffic does not hit the database for every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"hotel-folio/models"
	"hotel-folio/utils"
)

const roomTypesKey = "rates:room_types"

// NewRedisClient connects and pings with a short timeout.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRateCache(client *redis.Client, ttl time.Duration) *RedisRateCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRateCache{client: client, ttl: ttl}
}

// GetRoomTypes reports a miss on any error; the caller falls back to the DB.
func (c *RedisRateCache) GetRoomTypes(ctx context.Context) ([]models.RoomType, bool) {
	raw, err := c.client.Get(ctx, roomTypesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("rate cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var types []models.RoomType
	if err := json.Unmarshal(raw, &types); err != nil {
		utils.GetLogger().Warn("rate cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return types, true
}

func (c *RedisRateCache) SetRoomTypes(ctx context.Context, types []models.RoomType) {
	raw, err := json.Marshal(types)
	if err != nil {
		utils.GetLogger().Warn("rate cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, roomTypesKey, raw, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("rate cache write failed", zap.Error(err))
	}
}

func (c *RedisRateCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, roomTypesKey).Err(); err != nil {
		utils.GetLogger().Warn("rate cache invalidate failed", zap.Error(err))
	}
}
