package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"collection-hub/pkg/logger"
	"collection-hub/pkg/metrics"
	"collection-hub/services/collection/internal/entity"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type LoadFunc func(ctx context.Context) (*entity.Collection, error)

// CollectionCache is a read-through cache for published collections.
type CollectionCache interface {
	Get(ctx context.Context, id string, load LoadFunc) (*entity.Collection, error)
	Invalidate(ctx context.Context, id string)
}

type collectionCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	group       singleflight.Group
	logger      *logger.Logger
}

// NewCollectionCache returns a cache backed by redisClient. A nil client
// disables caching and every Get goes to load.
func NewCollectionCache(redisClient *redis.Client, ttl time.Duration, logger *logger.Logger) CollectionCache {
	return &collectionCache{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func collectionKey(id string) string {
	return fmt.Sprintf("collection:%s", id)
}

func (c *collectionCache) Get(ctx context.Context, id string, load LoadFunc) (*entity.Collection, error) {
	if c.redisClient == nil {
		return load(ctx)
	}

	key := collectionKey(id)
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err == nil {
		var collection entity.Collection
		if err := json.Unmarshal(data, &collection); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return &collection, nil
		}
		c.logger.Warn("Discarding undecodable cache entry %s", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Cache read failed for %s: %v", key, err)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		collection, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(collection); err == nil {
			if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
				c.logger.Warn("Cache write failed for %s: %v", key, err)
			}
		}
		return collection, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.Collection), nil
}

func (c *collectionCache) Invalidate(ctx context.Context, id string) {
	if c.redisClient == nil {
		return
	}
	if err := c.redisClient.Del(ctx, collectionKey(id)).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed for %s: %v", collectionKey(id), err)
	}
}
