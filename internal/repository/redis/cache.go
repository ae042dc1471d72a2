package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"taglens/internal/domain"
)

const analysisKeyPrefix = "analysis:"

// AnalysisCache implements domain.AnalysisCache on Redis. Entries expire
// after the analysis freshness window, so a cache hit is always fresh.
type AnalysisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewAnalysisCache creates a Redis-backed analysis cache.
func NewAnalysisCache(client *redis.Client, logger *slog.Logger) *AnalysisCache {
	return &AnalysisCache{
		client: client,
		logger: logger,
	}
}

// Get returns the cached analysis for a URL, or (nil, nil) on a miss.
func (c *AnalysisCache) Get(ctx context.Context, url string) (*domain.Analysis, error) {
	data, err := c.client.Get(ctx, analysisKeyPrefix+url).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis cache: %w", err)
	}

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten
		c.logger.Warn("Corrupt analysis cache entry", "url", url, "error", err)
		return nil, nil
	}

	return &analysis, nil
}

// Set stores the analysis keyed by URL with the freshness-window TTL.
func (c *AnalysisCache) Set(ctx context.Context, analysis *domain.Analysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := c.client.Set(ctx, analysisKeyPrefix+analysis.URL, data, domain.AnalysisFreshness).Err(); err != nil {
		return fmt.Errorf("failed to write analysis cache: %w", err)
	}

	return nil
}
