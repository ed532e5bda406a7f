// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storyforge/internal/models"
)

const (
	// storyKeyPrefix is the Valkey key prefix for cached stories.
	storyKeyPrefix = "story:"

	// statsKey is the Valkey key for the cached stats feed.
	statsKey = "stats"

	// DefaultStoryTTL bounds memory use; immutable content could cache
	// forever, but an hour keeps the working set to recently read books.
	DefaultStoryTTL = 1 * time.Hour

	// DefaultStatsTTL is how long the stats aggregate stays cached.
	DefaultStatsTTL = 60 * time.Second
)

// StoryCache holds finished story documents in Valkey. Story content is
// immutable after creation so entries never go stale; the view and share
// counters are not cached and always come from the database. All
// operations degrade to misses or no-ops on cache errors.
type StoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStoryCache creates a story cache backed by the given Valkey client.
func NewStoryCache(client *redis.Client, ttl time.Duration) *StoryCache {
	if ttl == 0 {
		ttl = DefaultStoryTTL
	}
	return &StoryCache{client: client, ttl: ttl}
}

// Get retrieves a cached story. Returns false on miss or decode failure.
func (sc *StoryCache) Get(ctx context.Context, id uuid.UUID) (*models.Story, bool) {
	val, err := sc.client.Get(ctx, storyKeyPrefix+id.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("story cache get error", "id", id, "error", err)
		return nil, false
	}

	story := &models.Story{}
	if err := json.Unmarshal(val, story); err != nil {
		slog.Warn("story cache decode error", "id", id, "error", err)
		return nil, false
	}
	slog.Debug("story cache hit", "id", id)
	return story, true
}

// Set stores a story with the configured TTL.
func (sc *StoryCache) Set(ctx context.Context, story *models.Story) {
	val, err := json.Marshal(story)
	if err != nil {
		slog.Warn("story cache encode error", "id", story.ID, "error", err)
		return
	}
	if err := sc.client.Set(ctx, storyKeyPrefix+story.ID.String(), val, sc.ttl).Err(); err != nil {
		slog.Warn("story cache set error", "id", story.ID, "error", err)
	}
}

// StatsCache holds the aggregate stats feed in Valkey for a short window,
// absorbing bursts against the O(n) stats scan.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a stats cache backed by the given Valkey client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl == 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get retrieves the cached stats feed. Returns false on miss.
func (sc *StatsCache) Get(ctx context.Context) (*models.Stats, bool) {
	val, err := sc.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("stats cache get error", "error", err)
		return nil, false
	}

	stats := &models.Stats{}
	if err := json.Unmarshal(val, stats); err != nil {
		slog.Warn("stats cache decode error", "error", err)
		return nil, false
	}
	return stats, true
}

// Set stores the stats feed with the configured TTL.
func (sc *StatsCache) Set(ctx context.Context, stats *models.Stats) {
	val, err := json.Marshal(stats)
	if err != nil {
		slog.Warn("stats cache encode error", "error", err)
		return
	}
	if err := sc.client.Set(ctx, statsKey, val, sc.ttl).Err(); err != nil {
		slog.Warn("stats cache set error", "error", err)
	}
}

// Invalidate drops the cached stats feed so the next read recomputes it.
func (sc *StatsCache) Invalidate(ctx context.Context) {
	if err := sc.client.Del(ctx, statsKey).Err(); err != nil {
		slog.Warn("stats cache invalidate error", "error", err)
	}
}
