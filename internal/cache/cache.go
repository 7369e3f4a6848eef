// Package cache keeps recently computed pair scores in Redis so repeated
// comparisons of unchanged documents skip the sequence matcher.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PairScores holds the three similarity scores for one document pair.
type PairScores struct {
	Sequence float64 `json:"sequence"`
	Overlap  float64 `json:"overlap"`
	Jaccard  float64 `json:"jaccard"`
}

// ScoreCache is a Redis-backed cache of comparison results.
type ScoreCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a Redis-backed score cache.
func New(redisURL string, ttl time.Duration, logger *zap.Logger) (*ScoreCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &ScoreCache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

const keyPrefix = "plagiarism:pair:"

func pairKey(docA, docB string) string {
	// Overlap is asymmetric, so the key preserves pair order.
	return keyPrefix + docA + ":" + docB
}

// Get returns the cached scores for an ordered pair, or (nil, nil) on a miss.
func (c *ScoreCache) Get(ctx context.Context, docA, docB string) (*PairScores, error) {
	data, err := c.rdb.Get(ctx, pairKey(docA, docB)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s/%s: %w", docA, docB, err)
	}
	var p PairScores
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cache decode %s/%s: %w", docA, docB, err)
	}
	return &p, nil
}

// Set stores the scores for an ordered pair with the configured TTL.
func (c *ScoreCache) Set(ctx context.Context, docA, docB string, scores *PairScores) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, pairKey(docA, docB), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s/%s: %w", docA, docB, err)
	}
	c.logger.Debug("cached pair scores",
		zap.String("doc_a", docA),
		zap.String("doc_b", docB))
	return nil
}

// Invalidate drops every cached pair involving the document, called when a
// document is deleted or replaced.
func (c *ScoreCache) Invalidate(ctx context.Context, docID string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		var stale []string
		for _, k := range keys {
			if strings.Contains(k[len(keyPrefix):], docID) {
				stale = append(stale, k)
			}
		}
		if len(stale) > 0 {
			if err := c.rdb.Del(ctx, stale...).Err(); err != nil {
				return fmt.Errorf("cache del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close releases the Redis connection.
func (c *ScoreCache) Close() error {
	return c.rdb.Close()
}
