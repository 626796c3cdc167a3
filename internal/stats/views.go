// Package stats tracks hot job view counters in Redis.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix = "jobs:views:"
	viewKeyTTL    = 8 * 24 * time.Hour

	// trendingWindowDays is how many daily buckets feed the trending list.
	trendingWindowDays = 7
)

// Recorder accumulates per-day job view counts in Redis sorted sets and
// serves the trending-jobs ranking over a rolling window. Postgres stays the
// durable counter; Redis only powers the hot ranking.
type Recorder struct {
	rdb *redis.Client
}

// NewRecorder creates and verifies a Redis-backed recorder.
func NewRecorder(ctx context.Context, redisURL string) (*Recorder, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Recorder{rdb: rdb}, nil
}

// Close releases the underlying Redis connection.
func (r *Recorder) Close() error {
	return r.rdb.Close()
}

// dayKey returns the sorted-set key for a given day.
func dayKey(t time.Time) string {
	return viewKeyPrefix + t.UTC().Format("2006-01-02")
}

// RecordView bumps today's view bucket for a job.
func (r *Recorder) RecordView(ctx context.Context, jobID uuid.UUID) error {
	key := dayKey(time.Now())
	pipe := r.rdb.Pipeline()
	pipe.ZIncrBy(ctx, key, 1, jobID.String())
	pipe.Expire(ctx, key, viewKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// TopJobs returns the most-viewed job IDs over the trending window, highest
// first.
func (r *Recorder) TopJobs(ctx context.Context, n int) ([]uuid.UUID, error) {
	now := time.Now()
	keys := make([]string, 0, trendingWindowDays)
	for i := 0; i < trendingWindowDays; i++ {
		keys = append(keys, dayKey(now.AddDate(0, 0, -i)))
	}

	union := viewKeyPrefix + "window"
	pipe := r.rdb.Pipeline()
	pipe.ZUnionStore(ctx, union, &redis.ZStore{Keys: keys})
	pipe.Expire(ctx, union, time.Minute)
	rangeCmd := pipe.ZRevRange(ctx, union, 0, int64(n-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to rank trending jobs: %w", err)
	}

	members, err := rangeCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trending jobs: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue // skip malformed members rather than failing the list
		}
		ids = append(ids, id)
	}
	return ids, nil
}
