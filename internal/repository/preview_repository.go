package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

const previewKeyPrefix = "timetable:preview:"

// PreviewRepository keeps generated timetable previews in Redis.
type PreviewRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPreviewRepository constructs a Redis-backed preview repository.
func NewPreviewRepository(client *redis.Client, logger *zap.Logger) *PreviewRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreviewRepository{client: client, logger: logger}
}

// Get loads a preview by id.
func (r *PreviewRepository) Get(ctx context.Context, id string) (*dto.TimetablePreview, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	key := previewKey(id)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var preview dto.TimetablePreview
	if err := json.Unmarshal(raw, &preview); err != nil {
		return nil, fmt.Errorf("unmarshal preview %s: %w", key, err)
	}
	return &preview, nil
}

// Set stores the preview with the given TTL.
func (r *PreviewRepository) Set(ctx context.Context, preview *dto.TimetablePreview, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	key := previewKey(preview.ID)
	payload, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("marshal preview %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	r.logger.Debug("preview stored", zap.String("key", key), zap.Int("bytes", len(payload)))
	return nil
}

// Delete removes a preview.
func (r *PreviewRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return nil
	}
	key := previewKey(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *PreviewRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *PreviewRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func previewKey(id string) string {
	return previewKeyPrefix + id
}
