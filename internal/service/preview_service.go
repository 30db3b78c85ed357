package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

// PreviewRepository abstracts persistence for generated previews.
type PreviewRepository interface {
	Get(ctx context.Context, id string) (*dto.TimetablePreview, error)
	Set(ctx context.Context, preview *dto.TimetablePreview, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// PreviewService keeps generated timetables around long enough to be fetched and exported.
type PreviewService struct {
	repo    PreviewRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewPreviewService constructs a preview service.
func NewPreviewService(repo PreviewRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *PreviewService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreviewService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, now: time.Now}
}

// Save assigns an id and timestamp when missing and stores the preview.
func (s *PreviewService) Save(ctx context.Context, preview *dto.TimetablePreview) error {
	if preview.ID == "" {
		preview.ID = uuid.NewString()
	}
	if preview.CreatedAt.IsZero() {
		preview.CreatedAt = s.now().UTC()
	}
	start := time.Now()
	err := s.repo.Set(ctx, preview, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("preview save failed", zap.String("preview_id", preview.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store preview")
	}
	return nil
}

// Get loads a preview, translating a miss into a not-found error.
func (s *PreviewService) Get(ctx context.Context, id string) (*dto.TimetablePreview, error) {
	start := time.Now()
	preview, err := s.repo.Get(ctx, id)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "preview not found or expired")
		}
		s.logger.Warn("preview get failed", zap.String("preview_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preview")
	}
	s.metrics.RecordCacheOperation(true, duration)
	return preview, nil
}

// Delete removes a preview.
func (s *PreviewService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("preview delete failed", zap.String("preview_id", id), zap.Error(err))
		return err
	}
	return nil
}
