// Package redisx wraps the Redis client used as a read-through cache for
// availability calendars. The cache is best effort: every error degrades
// to a miss and the caller recomputes from the database.
package redisx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// New connects to Redis and verifies the connection with a ping.
func New(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// CalendarCache stores rendered availability calendars under a TTL. Any
// reservation write invalidates implicitly via expiry; the horizon is
// short-lived data and a slightly stale calendar is acceptable.
type CalendarCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCalendarCache wraps a connected client.
func NewCalendarCache(rdb *redis.Client, ttl time.Duration) *CalendarCache {
	return &CalendarCache{rdb: rdb, ttl: ttl}
}

func (c *CalendarCache) GetCalendar(ctx context.Context, key string) (*model.AccommodationCalendar, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis get %s: %v", key, err)
		}
		return nil, false
	}
	var cal model.AccommodationCalendar
	if err := json.Unmarshal(raw, &cal); err != nil {
		log.Printf("redis decode %s: %v", key, err)
		return nil, false
	}
	return &cal, true
}

func (c *CalendarCache) SetCalendar(ctx context.Context, key string, cal *model.AccommodationCalendar) {
	raw, err := json.Marshal(cal)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("redis set %s: %v", key, err)
	}
}
