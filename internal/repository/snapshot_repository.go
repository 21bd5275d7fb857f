package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

// snapshotKeyPrefix matches the storage slot name of the original local
// persistence format; keys are scoped per session.
const snapshotKeyPrefix = "weeklyPlannerStateV1"

// SnapshotRepository stores the durable per-session snapshot slot in Redis.
// It is nil-safe: without a Redis client every load misses and every save is
// a no-op, so the wizard keeps working with in-memory state only.
type SnapshotRepository struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSnapshotRepository constructs a snapshot repository.
func NewSnapshotRepository(client *redis.Client, logger *zap.Logger, ttl time.Duration) *SnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{client: client, logger: logger, ttl: ttl}
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", snapshotKeyPrefix, sessionID)
}

// Load retrieves the saved snapshot for a session. A missing or unreadable
// slot reports appErrors.ErrSnapshotMiss so callers fall back to defaults.
func (r *SnapshotRepository) Load(ctx context.Context, sessionID string) (wizard.PersistedSnapshot, error) {
	var snap wizard.PersistedSnapshot
	if r.client == nil {
		return snap, appErrors.ErrSnapshotMiss
	}

	raw, err := r.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return snap, appErrors.ErrSnapshotMiss
		}
		return snap, fmt.Errorf("redis get %s: %w", snapshotKey(sessionID), err)
	}

	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt slot is treated like a missing one.
		r.logger.Warn("discarding corrupt snapshot slot",
			zap.String("session_id", sessionID), zap.Error(err))
		return wizard.PersistedSnapshot{}, appErrors.ErrSnapshotMiss
	}

	return snap, nil
}

// Save writes the snapshot slot, replacing any previous value.
func (r *SnapshotRepository) Save(ctx context.Context, sessionID string, snap wizard.PersistedSnapshot) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot for %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, snapshotKey(sessionID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", snapshotKey(sessionID), err)
	}

	return nil
}

// Delete removes the slot, returning the session to a blank start.
func (r *SnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return nil
	}

	if err := r.client.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", snapshotKey(sessionID), err)
	}

	return nil
}
