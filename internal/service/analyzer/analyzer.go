// Package analyzer implements the metadata extraction and normalization
// pipeline: render a page (headless browser first, static HTTP fallback),
// resolve the OpenGraph and Twitter records through documented fallback
// chains, and attach suggestions from the suggestion engine.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taglens/internal/domain"
	"taglens/internal/pkg/urlcheck"
)

// ErrMalformedURL is returned before any network call when the input URL
// does not parse as an absolute http(s) URL.
var ErrMalformedURL = errors.New("malformed URL")

// PageExtractor produces raw page data for a URL.
type PageExtractor interface {
	Extract(ctx context.Context, url string) (*domain.PageData, error)
}

// SuggestionEngine turns raw page context into SEO suggestions. It never
// fails: degraded results come back as suggestion entries.
type SuggestionEngine interface {
	AnalyzeSEOTags(ctx context.Context, req domain.SuggestionRequest) []domain.AISuggestion
}

// Analyzer is the public entry point of the pipeline.
type Analyzer struct {
	renderer  PageExtractor
	fallback  PageExtractor
	suggester SuggestionEngine
	logger    *slog.Logger
}

// New creates the pipeline. renderer is tried first per analysis; fallback is
// used when it fails.
func New(renderer, fallback PageExtractor, suggester SuggestionEngine, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		renderer:  renderer,
		fallback:  fallback,
		suggester: suggester,
		logger:    logger,
	}
}

// AnalyzeURL runs one full analysis: extract, normalize, suggest. The result
// is fully populated even when every tag on the page was missing; only a
// malformed URL or a failure of both extractors is an error.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*domain.Analysis, error) {
	parsed, err := urlcheck.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	page, err := a.renderer.Extract(ctx, rawURL)
	if err != nil {
		a.logger.Warn("Renderer failed, falling back to static extraction",
			"url", rawURL,
			"error", err,
		)
		page, err = a.fallback.Extract(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze URL: %w", err)
		}
	}

	og := page.OpenGraphTags
	tw := page.TwitterTags

	ogType := og["og:type"]
	if !domain.ValidOGType(ogType) {
		ogType = domain.DefaultFor(domain.FieldType)
	}

	openGraph := domain.OpenGraphTags{
		Title:       firstNonEmpty(og["og:title"], page.Title, domain.DefaultFor(domain.FieldTitle)),
		Description: firstNonEmpty(og["og:description"], page.Description, domain.DefaultFor(domain.FieldDescription)),
		Image:       firstNonEmpty(og["og:image"], domain.DefaultFor(domain.FieldImage)),
		URL:         firstNonEmpty(og["og:url"], parsed.String()),
		Type:        ogType,
		SiteName:    firstNonEmpty(og["og:site_name"], parsed.Hostname()),
		Locale:      firstNonEmpty(og["og:locale"], domain.DefaultFor(domain.FieldLocale)),
		ImageAlt:    firstNonEmpty(og["og:image:alt"], domain.DefaultFor(domain.FieldImageAlt)),
	}

	twitter := domain.TwitterTags{
		Card:        firstNonEmpty(tw["twitter:card"], domain.DefaultFor(domain.FieldTwitterCard)),
		Title:       firstNonEmpty(tw["twitter:title"], openGraph.Title),
		Description: firstNonEmpty(tw["twitter:description"], openGraph.Description),
		Image:       firstNonEmpty(tw["twitter:image"], openGraph.Image),
		Site:        firstNonEmpty(tw["twitter:site"], "@"+urlcheck.StripWWW(parsed.Hostname())),
	}

	// The engine sees the raw tag maps, not the normalized defaults
	suggestions := a.suggester.AnalyzeSEOTags(ctx, domain.SuggestionRequest{
		URL:           rawURL,
		Title:         page.Title,
		Description:   page.Description,
		Content:       page.Content,
		OpenGraphTags: og,
		TwitterTags:   tw,
	})

	jsonLD := page.JSONLD
	if jsonLD == nil {
		jsonLD = []interface{}{}
	}

	return &domain.Analysis{
		URL:           rawURL,
		Title:         firstNonEmpty(page.Title, domain.DefaultFor(domain.FieldTitle)),
		Description:   firstNonEmpty(page.Description, domain.DefaultFor(domain.FieldDescription)),
		OpenGraphTags: openGraph,
		TwitterTags:   twitter,
		JSONLD:        jsonLD,
		AISuggestions: suggestions,
	}, nil
}

// firstNonEmpty returns the first non-empty value, implementing the
// per-field fallback chains.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
