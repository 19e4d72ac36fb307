package oracle

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pricetide/pricetide/internal/logger"
)

// CachedSource wraps a Source with a short-lived Redis cache. Each key's
// latest sample is stored as a hash at "price:{family}:{key}" with fields
// "price" and "ts". A cached value is only served while fresh; a stale or
// missing entry always falls through to the feed, and a feed failure is
// never papered over with stale data (settlement must see real
// unavailability).
type CachedSource struct {
	inner  Source
	rdb    *redis.Client
	family string
	ttl    time.Duration
}

// NewCachedSource wraps inner with a Redis cache for one family's keys
func NewCachedSource(inner Source, rdb *redis.Client, family string, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, family: family, ttl: ttl}
}

func (s *CachedSource) cacheKey(key string) string {
	return "price:" + s.family + ":" + key
}

// Price serves the cached sample when fresh, otherwise samples the feed and
// writes the result back. Cache errors are logged and ignored; the cache is
// an optimization, not a dependency.
func (s *CachedSource) Price(ctx context.Context, key string) (float64, error) {
	if price, ok := s.lookup(ctx, key); ok {
		return price, nil
	}

	price, err := s.inner.Price(ctx, key)
	if err != nil {
		return 0, err
	}
	s.store(ctx, key, price)
	return price, nil
}

func (s *CachedSource) lookup(ctx context.Context, key string) (float64, bool) {
	vals, err := s.rdb.HGetAll(ctx, s.cacheKey(key)).Result()
	if err != nil || len(vals) == 0 {
		return 0, false
	}
	price, perr := strconv.ParseFloat(vals["price"], 64)
	tsNano, terr := strconv.ParseInt(vals["ts"], 10, 64)
	if perr != nil || terr != nil {
		return 0, false
	}
	if time.Since(time.Unix(0, tsNano)) > s.ttl {
		return 0, false
	}
	return price, true
}

func (s *CachedSource) store(ctx context.Context, key string, price float64) {
	fields := map[string]interface{}{
		"price": strconv.FormatFloat(price, 'f', -1, 64),
		"ts":    strconv.FormatInt(time.Now().UnixNano(), 10),
	}
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, s.cacheKey(key), fields)
	pipe.Expire(ctx, s.cacheKey(key), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.FromContext(ctx).Warn("Failed to cache price sample",
			"family", s.family, "key", key, "error", err)
	}
}
