// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// profile.go provides a Valkey-backed cache for client profiles and their
// discovered-link lists. Entries expire by TTL and are invalidated by
// callers on every write to the underlying row — there is no unbounded
// process-wide map.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"postforge/internal/models"
)

const (
	clientKeyPrefix = "client:"
	linksKeyPrefix  = "links:"

	// DefaultProfileTTL bounds how long a cached profile survives without
	// an explicit invalidation.
	DefaultProfileTTL = 10 * time.Minute
)

// ProfileCache caches client rows and discovered-URL lists in Valkey.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a profile cache backed by the given Valkey client.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl == 0 {
		ttl = DefaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// GetClient retrieves a cached client profile. Returns nil, false on miss.
func (pc *ProfileCache) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, bool) {
	val, err := pc.client.Get(ctx, clientKeyPrefix+id.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("profile cache get error", "id", id, "error", err)
		return nil, false
	}

	var c models.Client
	if err := json.Unmarshal(val, &c); err != nil {
		slog.Warn("profile cache decode error", "id", id, "error", err)
		return nil, false
	}
	return &c, true
}

// SetClient stores a client profile with the configured TTL.
func (pc *ProfileCache) SetClient(ctx context.Context, c *models.Client) {
	val, err := json.Marshal(c)
	if err != nil {
		slog.Warn("profile cache encode error", "id", c.ID, "error", err)
		return
	}
	if err := pc.client.Set(ctx, clientKeyPrefix+c.ID.String(), val, pc.ttl).Err(); err != nil {
		slog.Warn("profile cache set error", "id", c.ID, "error", err)
	}
}

// GetLinks retrieves a cached discovered-URL list. Returns nil, false on miss.
func (pc *ProfileCache) GetLinks(ctx context.Context, clientID uuid.UUID) ([]models.DiscoveredURL, bool) {
	val, err := pc.client.Get(ctx, linksKeyPrefix+clientID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("links cache get error", "client_id", clientID, "error", err)
		return nil, false
	}

	var urls []models.DiscoveredURL
	if err := json.Unmarshal(val, &urls); err != nil {
		slog.Warn("links cache decode error", "client_id", clientID, "error", err)
		return nil, false
	}
	return urls, true
}

// SetLinks stores a discovered-URL list with the configured TTL.
func (pc *ProfileCache) SetLinks(ctx context.Context, clientID uuid.UUID, urls []models.DiscoveredURL) {
	val, err := json.Marshal(urls)
	if err != nil {
		slog.Warn("links cache encode error", "client_id", clientID, "error", err)
		return
	}
	if err := pc.client.Set(ctx, linksKeyPrefix+clientID.String(), val, pc.ttl).Err(); err != nil {
		slog.Warn("links cache set error", "client_id", clientID, "error", err)
	}
}

// Invalidate drops the cached profile and link list for a client. Callers
// invoke this on every write to the client row or its discovered URLs.
func (pc *ProfileCache) Invalidate(ctx context.Context, clientID uuid.UUID) {
	keys := []string{
		clientKeyPrefix + clientID.String(),
		linksKeyPrefix + clientID.String(),
	}
	if err := pc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("profile cache invalidate error", "client_id", clientID, "error", err)
	}
	slog.Debug("profile cache invalidated", "client_id", clientID)
}
