package repository

import (
	"context"
	"sort"
	"time"

	"relviz-backend/models"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryExportRepository keeps export records in process memory.
// Records expire after the retention period.
type MemoryExportRepository struct {
	cache *gocache.Cache
	now   func() time.Time
}

// NewMemoryExportRepository creates an in-memory export repository
func NewMemoryExportRepository(retention time.Duration) *MemoryExportRepository {
	var cleanup time.Duration
	if retention <= 0 {
		retention = gocache.NoExpiration
	} else {
		cleanup = min(retention, 10*time.Minute)
	}
	return &MemoryExportRepository{
		cache: gocache.New(retention, cleanup),
		now:   time.Now,
	}
}

// OnEvicted registers fn to run after a record expires or is deleted.
// Expired records are swept in the background, so fn runs on another goroutine.
func (r *MemoryExportRepository) OnEvicted(fn func(*models.Export)) {
	r.cache.OnEvicted(func(_ string, val interface{}) {
		export := *val.(*models.Export)
		fn(&export)
	})
}

// Create stores a copy of the export record
func (r *MemoryExportRepository) Create(ctx context.Context, export *models.Export) error {
	if export.CreatedAt.IsZero() {
		export.CreatedAt = r.now().UTC()
	}
	stored := *export
	r.cache.Set(export.ID.String(), &stored, gocache.DefaultExpiration)
	return nil
}

// GetByID retrieves an export by ID
func (r *MemoryExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error) {
	val, found := r.cache.Get(id.String())
	if !found {
		return nil, ErrNotFound
	}
	export := *val.(*models.Export)
	return &export, nil
}

// ListRecent returns unexpired exports, newest first
func (r *MemoryExportRepository) ListRecent(ctx context.Context, limit int) ([]*models.Export, error) {
	items := r.cache.Items()
	exports := make([]*models.Export, 0, len(items))
	for _, item := range items {
		export := *item.Object.(*models.Export)
		exports = append(exports, &export)
	}

	sort.Slice(exports, func(i, j int) bool {
		return exports[i].CreatedAt.After(exports[j].CreatedAt)
	})

	if limit > 0 && len(exports) > limit {
		exports = exports[:limit]
	}
	return exports, nil
}

// Delete removes an export record
func (r *MemoryExportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, found := r.cache.Get(id.String()); !found {
		return ErrNotFound
	}
	r.cache.Delete(id.String())
	return nil
}
