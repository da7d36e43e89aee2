// Package redis holds the last-known-good catalog snapshot store. When the
// backing catalog query fails, the orchestrator serves the most recent
// successfully published page from here instead of rendering empty.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stitchwear/storefront/internal/domain"
	apperrors "github.com/stitchwear/storefront/pkg/errors"
)

const snapshotKey = "catalog:snapshot:latest"

// DefaultSnapshotTTL bounds how stale a fallback page may be.
const DefaultSnapshotTTL = 24 * time.Hour

// SnapshotStore persists the latest published catalog page in Redis.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore creates a snapshot store with the given TTL; zero means
// DefaultSnapshotTTL.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

// Save stores the page as the latest snapshot.
func (s *SnapshotStore) Save(ctx context.Context, page *domain.CatalogPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save catalog snapshot: %w", err)
	}
	return nil
}

// Load returns the latest snapshot, or ErrNotFound when none exists.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.CatalogPage, error) {
	payload, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	var page domain.CatalogPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("unmarshal catalog snapshot: %w", err)
	}
	return &page, nil
}
