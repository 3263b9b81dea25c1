package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache publishes cost update events on a per-scope channel and keeps the
// last event of each scope in a hash for late readers.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) ChannelKey(scope domain.Scope) string {
	return fmt.Sprintf("menu-costs:%s:%s", scope.TenantID, scope.LocationID)
}

func (c *RedisCache) LastEventKey(scope domain.Scope) string {
	return fmt.Sprintf("sync:costs:%s:%s", scope.TenantID, scope.LocationID)
}

func (c *RedisCache) CostsUpdated(ctx context.Context, event domain.CostsUpdatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}

	scope := event.Scope()
	key := c.LastEventKey(scope)
	pipe := c.Client.TxPipeline()
	pipe.Publish(ctx, c.ChannelKey(scope), payload)
	pipe.HSet(ctx, key, map[string]interface{}{
		"event_id":      event.ID,
		"updated_count": event.UpdatedCount,
		"payload":       string(payload),
		"last_updated":  event.Timestamp.Unix(),
	})
	pipe.Expire(ctx, key, c.TTL)
	_, err = pipe.Exec(ctx)
	return err
}

// LastEvent returns the most recent event recorded for scope.
func (c *RedisCache) LastEvent(ctx context.Context, scope domain.Scope) (*domain.CostsUpdatedEvent, error) {
	raw, err := c.Client.HGet(ctx, c.LastEventKey(scope), "payload").Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var event domain.CostsUpdatedEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return nil, fmt.Errorf("decode last event: %w", err)
	}
	return &event, nil
}
