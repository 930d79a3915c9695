// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// projects.go provides a Valkey-backed cache for per-user project lists.
// The dashboard hits the list endpoint on every visit; caching the JSON
// payload skips the DB query for repeat loads. Any write to a user's
// projects invalidates that user's entry.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// projectsKeyPrefix is the Valkey key prefix for cached project lists.
	projectsKeyPrefix = "projects:"

	// DefaultProjectsTTL is how long a cached list stays valid. Short on
	// purpose: the list is cheap to rebuild and staleness is visible.
	DefaultProjectsTTL = 60 * time.Second
)

// ProjectListCache manages per-owner project-list caching in Valkey.
// Every method degrades gracefully: a cache failure is logged at Warn
// and treated as a miss, never surfaced to the caller.
type ProjectListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProjectListCache creates a project-list cache backed by the given
// Valkey client.
func NewProjectListCache(client *redis.Client, ttl time.Duration) *ProjectListCache {
	if ttl == 0 {
		ttl = DefaultProjectsTTL
	}
	return &ProjectListCache{client: client, ttl: ttl}
}

// Get retrieves the cached JSON list for an owner. Returns false on miss.
func (c *ProjectListCache) Get(ctx context.Context, ownerID uuid.UUID) ([]byte, bool) {
	val, err := c.client.Get(ctx, projectsKeyPrefix+ownerID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("project cache get error", "owner", ownerID, "error", err)
		return nil, false
	}
	slog.Debug("project cache hit", "owner", ownerID)
	return val, true
}

// Set stores the serialized list for an owner with the configured TTL.
func (c *ProjectListCache) Set(ctx context.Context, ownerID uuid.UUID, payload []byte) {
	if err := c.client.Set(ctx, projectsKeyPrefix+ownerID.String(), payload, c.ttl).Err(); err != nil {
		slog.Warn("project cache set error", "owner", ownerID, "error", err)
	}
}

// Invalidate removes an owner's cached list. Called after every create
// or save so the next list read reflects the write.
func (c *ProjectListCache) Invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := c.client.Del(ctx, projectsKeyPrefix+ownerID.String()).Err(); err != nil {
		slog.Warn("project cache invalidate error", "owner", ownerID, "error", err)
	}
	slog.Debug("project cache invalidated", "owner", ownerID)
}
