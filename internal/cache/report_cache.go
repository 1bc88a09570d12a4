package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "finbook/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "report:"

// ReportCache caches summary and breakdown results in Redis, keyed per user
// and date range so a write by one user never evicts another user's entries.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewReportCache returns a new ReportCache.
func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

func userPrefix(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10) + ":"
}

func rangeSuffix(from, to *time.Time) string {
	s := ":"
	if from != nil {
		s = from.Format("2006-01-02") + s
	}
	if to != nil {
		s += to.Format("2006-01-02")
	}
	return s
}

// GetSummary returns the cached summary or nil if miss.
func (c *ReportCache) GetSummary(ctx context.Context, userID int64, from, to *time.Time) (*dom.Summary, error) {
	key := userPrefix(userID) + "summary:" + rangeSuffix(from, to)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s dom.Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetSummary stores a summary in cache.
func (c *ReportCache) SetSummary(ctx context.Context, userID int64, from, to *time.Time, s dom.Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	key := userPrefix(userID) + "summary:" + rangeSuffix(from, to)
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// GetBreakdown returns the cached breakdown or nil if miss. An empty cached
// slice is a valid hit, hence the pointer.
func (c *ReportCache) GetBreakdown(ctx context.Context, userID int64, from, to *time.Time) (*[]dom.BreakdownEntry, error) {
	key := userPrefix(userID) + "breakdown:" + rangeSuffix(from, to)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []dom.BreakdownEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, err
	}
	return &entries, nil
}

// SetBreakdown stores a breakdown in cache.
func (c *ReportCache) SetBreakdown(ctx context.Context, userID int64, from, to *time.Time, entries []dom.BreakdownEntry) error {
	if entries == nil {
		entries = []dom.BreakdownEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	key := userPrefix(userID) + "breakdown:" + rangeSuffix(from, to)
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// InvalidateUser removes all cached reports for one user (cache invalidation
// on ledger writes).
func (c *ReportCache) InvalidateUser(ctx context.Context, userID int64) error {
	iter := c.rdb.Scan(ctx, 0, userPrefix(userID)+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
