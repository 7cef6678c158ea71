package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

const (
	DefaultKey = "sourcing:dashboard:last-known-good"
	DefaultTTL = 24 * time.Hour

	opTimeout = 2 * time.Second
)

// Store is the part of the redis client the cache uses.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// LastKnownGood keeps the most recent successfully fetched dashboard in redis
// and serves it when the service is down. Without a cached copy it defers to
// the next source, normally the embedded dataset.
type LastKnownGood struct {
	rdb  Store
	key  string
	ttl  time.Duration
	next dashboard.FallbackSource
}

var _ dashboard.FallbackSource = (*LastKnownGood)(nil)

func NewLastKnownGood(rdb Store, key string, ttl time.Duration, next dashboard.FallbackSource) *LastKnownGood {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if next == nil {
		next = dashboard.MustStaticFallback()
	}
	return &LastKnownGood{rdb: rdb, key: key, ttl: ttl, next: next}
}

// NewClient opens a redis client and checks it answers.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (l *LastKnownGood) Snapshot(ctx context.Context) models.DashboardSnapshot {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := l.rdb.Get(ctx, l.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("redis get %s: %v", l.key, err)
		}
		return l.next.Snapshot(ctx)
	}

	snap, err := dashboard.ParseSnapshot(data)
	if err != nil || len(snap.Products) == 0 {
		log.Printf("ignoring cached dashboard: %v", err)
		return l.next.Snapshot(ctx)
	}
	return snap
}

func (l *LastKnownGood) Remember(ctx context.Context, s models.DashboardSnapshot) {
	if len(s.Products) == 0 {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("failed to encode dashboard for cache: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := l.rdb.Set(ctx, l.key, data, l.ttl).Err(); err != nil {
		log.Printf("redis set %s: %v", l.key, err)
	}
	l.next.Remember(ctx, s)
}
