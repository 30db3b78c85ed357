package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

type memoryPreview struct {
	preview   dto.TimetablePreview
	expiresAt time.Time
}

// MemoryPreviewRepository is the in-process preview store used when Redis is disabled.
type MemoryPreviewRepository struct {
	mu    sync.RWMutex
	items map[string]memoryPreview
	now   func() time.Time
}

// NewMemoryPreviewRepository builds an empty store.
func NewMemoryPreviewRepository() *MemoryPreviewRepository {
	return &MemoryPreviewRepository{items: make(map[string]memoryPreview), now: time.Now}
}

// Get returns the preview unless it is missing or expired.
func (r *MemoryPreviewRepository) Get(_ context.Context, id string) (*dto.TimetablePreview, error) {
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	if r.now().After(item.expiresAt) {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return nil, appErrors.ErrCacheMiss
	}
	preview := item.preview
	return &preview, nil
}

// Set stores the preview until ttl elapses.
func (r *MemoryPreviewRepository) Set(_ context.Context, preview *dto.TimetablePreview, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[preview.ID] = memoryPreview{preview: *preview, expiresAt: r.now().Add(ttl)}
	return nil
}

// Delete removes a preview.
func (r *MemoryPreviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

// Purge drops expired previews and returns how many were removed.
func (r *MemoryPreviewRepository) Purge() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, item := range r.items {
		if now.After(item.expiresAt) {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}
