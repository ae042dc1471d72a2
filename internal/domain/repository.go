package domain

import (
	"context"
)

// AnalysisRepository defines the interface for analysis persistence
type AnalysisRepository interface {
	// Create inserts a new analysis, assigning its ID and creation timestamp
	Create(ctx context.Context, analysis *Analysis) error

	// FindByURL retrieves the most recent analysis for a URL.
	// Returns (nil, nil) when no analysis exists for the URL.
	FindByURL(ctx context.Context, url string) (*Analysis, error)

	// GetByID retrieves an analysis by its UUID.
	// Returns (nil, nil) when no analysis exists with the ID.
	GetByID(ctx context.Context, id string) (*Analysis, error)
}

// GeneratedTagsRepository defines the interface for generated tag persistence
type GeneratedTagsRepository interface {
	// Create inserts a generated tag set, assigning its ID and creation timestamp
	Create(ctx context.Context, tags *GeneratedTags) error

	// Recent retrieves the most recently generated tag sets, newest first
	Recent(ctx context.Context, limit int) ([]*GeneratedTags, error)
}

// AnalysisCache is a best-effort freshness-window cache in front of the
// repository. Implementations expire entries after AnalysisFreshness; a miss
// is (nil, nil), and errors never fail the request.
type AnalysisCache interface {
	Get(ctx context.Context, url string) (*Analysis, error)
	Set(ctx context.Context, analysis *Analysis) error
}
