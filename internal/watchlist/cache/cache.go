// Package cache decorates a record store with a Redis lookup cache. Keys
// include the snapshot version, so a list refresh invalidates every cached
// probe without coordination and a request never mixes snapshots.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"vigil/internal/watchlist"
)

// Store is the subset of the record store the cache wraps.
type Store interface {
	Version(ctx context.Context) (string, error)
	LookupByVariant(ctx context.Context, variants, phoneticKeys []string, limit int) ([]*watchlist.Record, string, error)
	Stats(ctx context.Context) (watchlist.Stats, error)
	Health(ctx context.Context) error
}

// LookupCache caches LookupByVariant results. Cache failures degrade to the
// underlying store; a broken Redis never breaks screening.
type LookupCache struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New wraps inner with a Redis-backed lookup cache.
func New(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *LookupCache {
	return &LookupCache{inner: inner, client: client, ttl: ttl, logger: logger}
}

type cachedLookup struct {
	Version string              `json:"version"`
	Records []*watchlist.Record `json:"records"`
}

func (c *LookupCache) Version(ctx context.Context) (string, error) {
	return c.inner.Version(ctx)
}

func (c *LookupCache) Stats(ctx context.Context) (watchlist.Stats, error) {
	return c.inner.Stats(ctx)
}

func (c *LookupCache) Health(ctx context.Context) error {
	return c.inner.Health(ctx)
}

func (c *LookupCache) LookupByVariant(ctx context.Context, variants, phoneticKeys []string, limit int) ([]*watchlist.Record, string, error) {
	version, err := c.inner.Version(ctx)
	if err != nil {
		return nil, "", err
	}
	key := lookupKey(version, variants, phoneticKeys, limit)

	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached cachedLookup
		if err := json.Unmarshal(payload, &cached); err == nil && cached.Version == version {
			return cached.Records, cached.Version, nil
		}
	} else if err != redis.Nil && c.logger != nil {
		c.logger.WarnContext(ctx, "lookup cache read failed", "error", err)
	}

	records, served, err := c.inner.LookupByVariant(ctx, variants, phoneticKeys, limit)
	if err != nil {
		return nil, "", err
	}

	// Only cache when the lookup saw the version we keyed on; a refresh
	// mid-request just skips the write.
	if served == version {
		if payload, err := json.Marshal(cachedLookup{Version: served, Records: records}); err == nil {
			if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil && c.logger != nil {
				c.logger.WarnContext(ctx, "lookup cache write failed", "error", err)
			}
		}
	}
	return records, served, nil
}

func lookupKey(version string, variants, phoneticKeys []string, limit int) string {
	v := append([]string(nil), variants...)
	k := append([]string(nil), phoneticKeys...)
	sort.Strings(v)
	sort.Strings(k)
	sum := sha256.Sum256([]byte(strings.Join(v, "\x1f") + "\x1e" + strings.Join(k, "\x1f")))
	return fmt.Sprintf("vigil:lookup:%s:%s:%d", version, hex.EncodeToString(sum[:8]), limit)
}
