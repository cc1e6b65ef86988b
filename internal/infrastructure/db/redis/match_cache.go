package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

const (
	defaultMatchTTL = 5 * time.Minute
	matchKeyPrefix  = "matches:"
	versionKey      = matchKeyPrefix + "version"
	scanBatch       = 200
)

// MatchCache stores ranked match results per requesting user.
// Key format: matches:v<version>:<user_id>. The version lives in
// matches:version and only ever grows.
type MatchCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewMatchCache wraps the given client. A non-positive ttl falls back to five
// minutes.
func NewMatchCache(client redis.Cmdable, ttl time.Duration) *MatchCache {
	if ttl <= 0 {
		ttl = defaultMatchTTL
	}
	return &MatchCache{client: client, ttl: ttl}
}

// Version returns the current catalog version; a missing key is version 0.
func (c *MatchCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("match cache version: %w", err)
	}
	return v, nil
}

// Get reports a miss with found=false; only transport and decode failures
// are returned as errors.
func (c *MatchCache) Get(ctx context.Context, version int64, userID string) ([]domain.MatchCandidate, bool, error) {
	b, err := c.client.Get(ctx, matchKey(version, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("match cache get: %w", err)
	}

	var out []domain.MatchCandidate
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false, fmt.Errorf("match cache decode: %w", err)
	}
	if out == nil {
		out = []domain.MatchCandidate{}
	}
	return out, true, nil
}

func (c *MatchCache) Set(ctx context.Context, version int64, userID string, matches []domain.MatchCandidate) error {
	b, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("match cache encode: %w", err)
	}
	if err := c.client.Set(ctx, matchKey(version, userID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("match cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the version, then sweeps the entries of the retired one.
// Entries written late under an old version are unreachable and expire with
// their TTL.
func (c *MatchCache) Invalidate(ctx context.Context) error {
	next, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("match cache invalidate: %w", err)
	}
	return c.deleteByPattern(ctx, versionPrefix(next-1)+"*")
}

func (c *MatchCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("match cache flush: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("match cache scan: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("match cache flush: %w", err)
		}
	}
	return nil
}

func versionPrefix(version int64) string {
	return fmt.Sprintf("%sv%d:", matchKeyPrefix, version)
}

func matchKey(version int64, userID string) string {
	return versionPrefix(version) + userID
}
