package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"taglens/internal/domain"
)

const (
	fetchTimeout = 10 * time.Second
	maxBodyBytes = 5 * 1024 * 1024

	// Some sites refuse requests without a realistic browser User-Agent
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// StaticExtractor fetches raw HTML over plain HTTP and applies the same
// extraction rules as the renderer, without executing any page JavaScript.
// Dynamically injected tags are invisible to it; that gap is accepted.
type StaticExtractor struct {
	logger     *slog.Logger
	httpClient *http.Client
}

// NewStaticExtractor creates a static fallback extractor.
func NewStaticExtractor(logger *slog.Logger) *StaticExtractor {
	return &StaticExtractor{
		logger: logger,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Extract fetches pageURL and extracts metadata from the parsed document.
// A non-2xx response is a failure.
func (e *StaticExtractor) Extract(ctx context.Context, pageURL string) (*domain.PageData, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	data := extractFromDocument(doc)

	e.logger.Debug("Static extraction complete",
		"url", pageURL,
		"og_tags", len(data.OpenGraphTags),
		"twitter_tags", len(data.TwitterTags),
		"json_ld", len(data.JSONLD),
	)

	return data, nil
}
