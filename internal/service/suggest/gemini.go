// Package suggest adapts the Gemini API into the suggestion engine used by
// the analyzer. The remote model's output is treated as untrusted text; the
// value of this package is the layered parsing that turns whatever comes
// back into a usable suggestion list.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"taglens/internal/domain"
)

const (
	// Content excerpts embedded in prompts are bounded separately from the
	// extraction excerpt
	analysisContentLimit = 1000
	improveContentLimit  = 1500
)

const transportErrorMessage = "Failed to analyze content with AI. Please try again."

// Service calls Gemini and parses its replies. Both entry points are
// best-effort: AnalyzeSEOTags always returns a non-empty list and
// GenerateImprovedTags returns an empty result on any failure.
type Service struct {
	apiKey string
	model  string
	logger *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// New creates a suggestion service. The API client is created lazily on the
// first call so a missing key degrades at request time instead of at startup.
func New(apiKey, model string, logger *slog.Logger) *Service {
	return &Service{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (s *Service) initClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	s.client = client

	return s.client, nil
}

// generateText sends one prompt and returns the raw text reply.
func (s *Service) generateText(ctx context.Context, prompt string) (string, error) {
	client, err := s.initClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("error generating content: %w", err)
	}

	return resp.Text(), nil
}

// AnalyzeSEOTags asks the model for SEO suggestions about the raw page
// context. Transport and auth errors collapse to a single error-level entry;
// every other reply shape resolves through the parsing ladder.
func (s *Service) AnalyzeSEOTags(ctx context.Context, req domain.SuggestionRequest) []domain.AISuggestion {
	text, err := s.generateText(ctx, buildAnalysisPrompt(req))
	if err != nil {
		s.logger.Error("Gemini analysis failed", "url", req.URL, "error", err)
		return []domain.AISuggestion{{
			Type:    domain.SuggestionTypeOptimization,
			Level:   domain.SuggestionLevelError,
			Message: transportErrorMessage,
		}}
	}

	return ParseSuggestions(text)
}

// GenerateImprovedTags asks the model for a rewritten title/description and
// keyword list. Any failure, including an unparsable reply, yields an empty
// result.
func (s *Service) GenerateImprovedTags(ctx context.Context, req domain.ImproveRequest) domain.ImprovedTags {
	text, err := s.generateText(ctx, buildImprovePrompt(req))
	if err != nil {
		s.logger.Error("Gemini improvement failed", "url", req.URL, "error", err)
		return domain.ImprovedTags{}
	}

	var improved domain.ImprovedTags
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &improved); err != nil {
		s.logger.Warn("Unparsable improvement reply", "url", req.URL, "error", err)
		return domain.ImprovedTags{}
	}

	return improved
}

func buildAnalysisPrompt(req domain.SuggestionRequest) string {
	ogJSON := marshalTags(req.OpenGraphTags)
	twJSON := marshalTags(req.TwitterTags)

	return fmt.Sprintf(`Analyze the following webpage data for SEO and social media optimization:

URL: %s
Title: %s
Description: %s
OpenGraph Tags: %s
Twitter Tags: %s
Content Preview: %s

Please provide SEO optimization suggestions in JSON format with the following structure:
{
  "suggestions": [
    {
      "type": "optimization" | "improvement",
      "level": "success" | "warning" | "error",
      "message": "description of the issue or success",
      "suggestion": "specific improvement recommendation (optional)"
    }
  ]
}

Focus on:
- Title length and optimization (50-60 characters ideal)
- Description length and engagement (150-160 characters ideal)
- OpenGraph image presence and dimensions
- Twitter card completeness
- Content relevance and structure
- Missing essential tags`,
		req.URL,
		orMissing(req.Title),
		orMissing(req.Description),
		ogJSON,
		twJSON,
		truncateRunes(req.Content, analysisContentLimit),
	)
}

func buildImprovePrompt(req domain.ImproveRequest) string {
	return fmt.Sprintf(`Based on the following webpage data, suggest improved SEO-optimized title and description:

URL: %s
Current Title: %s
Current Description: %s
Content Type: %s
Content Preview: %s

Please provide improvements in JSON format:
{
  "improvedTitle": "SEO-optimized title (50-60 characters)",
  "improvedDescription": "Engaging meta description (150-160 characters)",
  "suggestedKeywords": ["keyword1", "keyword2", "keyword3"]
}

Make the title compelling and include relevant keywords.
Make the description engaging with a call-to-action.`,
		req.URL,
		orMissing(req.Title),
		orMissing(req.Description),
		req.Type,
		truncateRunes(req.Content, improveContentLimit),
	)
}

func marshalTags(tags map[string]string) string {
	if tags == nil {
		tags = map[string]string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func orMissing(s string) string {
	if s == "" {
		return "Missing"
	}
	return s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
