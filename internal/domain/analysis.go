package domain

import (
	"time"

	"github.com/google/uuid"
)

// PageData is the raw extraction result for a single page, produced by either
// the renderer backend or the static fallback. Tag maps hold keys exactly as
// found in the markup; absent tags are absent keys, never empty values.
type PageData struct {
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Content       string                 `json:"content"`
	OpenGraphTags map[string]string      `json:"openGraphTags"`
	TwitterTags   map[string]string      `json:"twitterTags"`
	JSONLD        []interface{}          `json:"jsonLd"`
}

// OpenGraphTags is the normalized OpenGraph record. Every field is resolved
// through a fallback chain and guaranteed non-empty.
type OpenGraphTags struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	SiteName    string `json:"siteName"`
	Locale      string `json:"locale"`
	ImageAlt    string `json:"imageAlt"`
}

// TwitterTags is the normalized Twitter Card record. Fields fall back to the
// resolved OpenGraph record, then to fixed literals.
type TwitterTags struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Site        string `json:"site"`
}

// AISuggestion is a single SEO suggestion from the suggestion engine.
type AISuggestion struct {
	Type       string `json:"type"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Suggestion type constants
const (
	SuggestionTypeOptimization = "optimization"
	SuggestionTypeImprovement  = "improvement"
)

// Suggestion level constants
const (
	SuggestionLevelSuccess = "success"
	SuggestionLevelWarning = "warning"
	SuggestionLevelError   = "error"
)

// SuggestionRequest is the context handed to the suggestion engine. It
// carries the raw extracted tags, not the normalized records: the engine
// reasons about what was actually present on the page.
type SuggestionRequest struct {
	URL           string
	Title         string
	Description   string
	Content       string
	OpenGraphTags map[string]string
	TwitterTags   map[string]string
}

// ImproveRequest asks the suggestion engine for rewritten title/description.
type ImproveRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Type        string `json:"type"`
}

// ImprovedTags is the best-effort result of an improve call. All fields may
// be empty when the engine fails or replies unusably.
type ImprovedTags struct {
	ImprovedTitle       string   `json:"improvedTitle,omitempty"`
	ImprovedDescription string   `json:"improvedDescription,omitempty"`
	SuggestedKeywords   []string `json:"suggestedKeywords,omitempty"`
}

// Analysis is the persisted result of one URL analysis. It is constructed
// once per request and never mutated afterwards.
type Analysis struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	URL           string         `json:"url" db:"url"`
	Title         string         `json:"title" db:"title"`
	Description   string         `json:"description" db:"description"`
	OpenGraphTags OpenGraphTags  `json:"openGraphTags" db:"og_tags"`
	TwitterTags   TwitterTags    `json:"twitterTags" db:"twitter_tags"`
	JSONLD        []interface{}  `json:"jsonLd" db:"json_ld"`
	AISuggestions []AISuggestion `json:"aiSuggestions" db:"ai_suggestions"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
}

// AnalysisFreshness is how long a stored analysis satisfies a repeat request
// for the same URL before a fresh extraction runs.
const AnalysisFreshness = time.Hour

// IsFresh reports whether the analysis is still within the freshness window.
func (a *Analysis) IsFresh(now time.Time) bool {
	return now.Sub(a.CreatedAt) < AnalysisFreshness
}

// OpenGraph type constants
const (
	OGTypeWebsite = "website"
	OGTypeArticle = "article"
	OGTypeProduct = "product"
	OGTypeProfile = "profile"
)

// ValidOGType reports whether t is one of the supported og:type values.
// Anything else normalizes to "website".
func ValidOGType(t string) bool {
	switch t {
	case OGTypeWebsite, OGTypeArticle, OGTypeProduct, OGTypeProfile:
		return true
	}
	return false
}

// GeneratedTags is a persisted hand-authored tag set plus its rendered markup.
type GeneratedTags struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Image         string    `json:"image,omitempty" db:"image"`
	URL           string    `json:"url" db:"url"`
	SiteName      string    `json:"siteName,omitempty" db:"site_name"`
	Type          string    `json:"type" db:"type"`
	GeneratedCode string    `json:"generatedCode" db:"generated_code"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Generator type constants (the request enum is wider than og:type: "video"
// is accepted for generation even though normalization never produces it)
const (
	GenTypeWebsite = "website"
	GenTypeArticle = "article"
	GenTypeProduct = "product"
	GenTypeVideo   = "video"
)

// ValidGenType reports whether t is accepted by the tag generator.
func ValidGenType(t string) bool {
	switch t {
	case GenTypeWebsite, GenTypeArticle, GenTypeProduct, GenTypeVideo:
		return true
	}
	return false
}
