package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taglens/internal/domain"
)

// GeneratedTagsRepository implements domain.GeneratedTagsRepository using PostgreSQL
type GeneratedTagsRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewGeneratedTagsRepository creates a new PostgreSQL generated tags repository
func NewGeneratedTagsRepository(db *sql.DB, logger *slog.Logger) *GeneratedTagsRepository {
	return &GeneratedTagsRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a generated tag set, assigning ID and creation timestamp
func (r *GeneratedTagsRepository) Create(ctx context.Context, tags *domain.GeneratedTags) error {
	if tags.ID == uuid.Nil {
		tags.ID = uuid.New()
	}
	if tags.CreatedAt.IsZero() {
		tags.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO generated_tags (id, title, description, image, url, site_name, type, generated_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		tags.ID,
		tags.Title,
		tags.Description,
		nullIfEmpty(tags.Image),
		tags.URL,
		nullIfEmpty(tags.SiteName),
		tags.Type,
		tags.GeneratedCode,
		tags.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert generated tags", "error", err, "url", tags.URL)
		return fmt.Errorf("failed to insert generated tags: %w", err)
	}

	return nil
}

// Recent retrieves the most recently generated tag sets, newest first
func (r *GeneratedTagsRepository) Recent(ctx context.Context, limit int) ([]*domain.GeneratedTags, error) {
	query := `
		SELECT id, title, description, image, url, site_name, type, generated_code, created_at
		FROM generated_tags
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated tags: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.GeneratedTags, 0, limit)
	for rows.Next() {
		tags := &domain.GeneratedTags{}
		var image, siteName, code sql.NullString

		if err := rows.Scan(
			&tags.ID,
			&tags.Title,
			&tags.Description,
			&image,
			&tags.URL,
			&siteName,
			&tags.Type,
			&code,
			&tags.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generated tags: %w", err)
		}

		tags.Image = image.String
		tags.SiteName = siteName.String
		tags.GeneratedCode = code.String
		result = append(result, tags)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generated tags: %w", err)
	}

	return result, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
