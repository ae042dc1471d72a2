// Package memory provides keyed in-memory implementations of the repository
// interfaces, used when no database is configured and in tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"taglens/internal/domain"
)

// AnalysisRepository stores analyses in memory keyed by ID and by URL.
type AnalysisRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*domain.Analysis
	byURL map[string]*domain.Analysis
}

// NewAnalysisRepository creates an empty in-memory analysis repository.
func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{
		byID:  make(map[uuid.UUID]*domain.Analysis),
		byURL: make(map[string]*domain.Analysis),
	}
}

// Create stores the analysis, assigning ID and creation timestamp. Analyses
// are immutable after creation, so the pointer itself is retained.
func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	r.byID[analysis.ID] = analysis
	// Later analyses for the same URL shadow earlier ones
	r.byURL[analysis.URL] = analysis

	return nil
}

// FindByURL returns the most recent analysis for a URL, or (nil, nil).
func (r *AnalysisRepository) FindByURL(ctx context.Context, url string) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byURL[url], nil
}

// GetByID returns the analysis with the given ID, or (nil, nil).
func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*domain.Analysis, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis id: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[parsed], nil
}

// GeneratedTagsRepository stores generated tag sets in memory.
type GeneratedTagsRepository struct {
	mu   sync.RWMutex
	tags []*domain.GeneratedTags
}

// NewGeneratedTagsRepository creates an empty in-memory generated tags repository.
func NewGeneratedTagsRepository() *GeneratedTagsRepository {
	return &GeneratedTagsRepository{}
}

// Create stores the tag set, assigning ID and creation timestamp.
func (r *GeneratedTagsRepository) Create(ctx context.Context, tags *domain.GeneratedTags) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tags.ID == uuid.Nil {
		tags.ID = uuid.New()
	}
	if tags.CreatedAt.IsZero() {
		tags.CreatedAt = time.Now()
	}

	r.tags = append(r.tags, tags)
	return nil
}

// Recent returns up to limit tag sets, newest first.
func (r *GeneratedTagsRepository) Recent(ctx context.Context, limit int) ([]*domain.GeneratedTags, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.GeneratedTags, 0, limit)
	for i := len(r.tags) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.tags[i])
	}
	return result, nil
}
