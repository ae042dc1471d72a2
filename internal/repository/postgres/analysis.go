package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taglens/internal/domain"
)

// AnalysisRepository implements domain.AnalysisRepository using PostgreSQL
type AnalysisRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAnalysisRepository creates a new PostgreSQL analysis repository
func NewAnalysisRepository(db *sql.DB, logger *slog.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new analysis, assigning ID and creation timestamp
func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	ogBytes, err := json.Marshal(analysis.OpenGraphTags)
	if err != nil {
		return fmt.Errorf("failed to marshal og tags: %w", err)
	}
	twBytes, err := json.Marshal(analysis.TwitterTags)
	if err != nil {
		return fmt.Errorf("failed to marshal twitter tags: %w", err)
	}
	jsonLDBytes, err := json.Marshal(analysis.JSONLD)
	if err != nil {
		return fmt.Errorf("failed to marshal json-ld: %w", err)
	}
	suggestionBytes, err := json.Marshal(analysis.AISuggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	query := `
		INSERT INTO url_analyses (id, url, title, description, og_tags, twitter_tags, json_ld, ai_suggestions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		analysis.ID,
		analysis.URL,
		analysis.Title,
		analysis.Description,
		ogBytes,
		twBytes,
		jsonLDBytes,
		suggestionBytes,
		analysis.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert analysis", "error", err, "url", analysis.URL)
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// FindByURL retrieves the most recent analysis for a URL, or (nil, nil)
func (r *AnalysisRepository) FindByURL(ctx context.Context, url string) (*domain.Analysis, error) {
	query := `
		SELECT id, url, title, description, og_tags, twitter_tags, json_ld, ai_suggestions, created_at
		FROM url_analyses
		WHERE url = $1
		ORDER BY created_at DESC
		LIMIT 1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, url))
}

// GetByID retrieves an analysis by UUID, or (nil, nil)
func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*domain.Analysis, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis id: %w", err)
	}

	query := `
		SELECT id, url, title, description, og_tags, twitter_tags, json_ld, ai_suggestions, created_at
		FROM url_analyses
		WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, parsed))
}

func (r *AnalysisRepository) scanOne(row *sql.Row) (*domain.Analysis, error) {
	analysis := &domain.Analysis{}
	var title, description sql.NullString
	var ogBytes, twBytes, jsonLDBytes, suggestionBytes []byte

	err := row.Scan(
		&analysis.ID,
		&analysis.URL,
		&title,
		&description,
		&ogBytes,
		&twBytes,
		&jsonLDBytes,
		&suggestionBytes,
		&analysis.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to query analysis", "error", err)
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}

	analysis.Title = title.String
	analysis.Description = description.String

	if err := json.Unmarshal(ogBytes, &analysis.OpenGraphTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal og tags: %w", err)
	}
	if err := json.Unmarshal(twBytes, &analysis.TwitterTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal twitter tags: %w", err)
	}
	if err := json.Unmarshal(jsonLDBytes, &analysis.JSONLD); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json-ld: %w", err)
	}
	if err := json.Unmarshal(suggestionBytes, &analysis.AISuggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}

	return analysis, nil
}
