package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taglens/internal/domain"
	"taglens/internal/repository/memory"
	"taglens/internal/service/analyzer"
)

type fakeAnalyzer struct {
	calls  int
	err    error
	result func(url string) *domain.Analysis
}

func (f *fakeAnalyzer) AnalyzeURL(ctx context.Context, url string) (*domain.Analysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result(url), nil
	}
	return &domain.Analysis{URL: url, Title: "Analyzed"}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeAnalysis(t *testing.T, rec *httptest.ResponseRecorder) domain.Analysis {
	t.Helper()
	var got domain.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return got
}

func TestHandleAnalyzeBadRequest(t *testing.T) {
	h := NewAnalyzeHandler(discard(), &fakeAnalyzer{}, memory.NewAnalysisRepository(), nil)

	for _, body := range []string{"", "not json", `{}`, `{"url":""}`} {
		rec := postJSON(t, h.HandleAnalyze, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleAnalyzeMalformedURL(t *testing.T) {
	a := &fakeAnalyzer{err: fmt.Errorf("%w: scheme must be http or https", analyzer.ErrMalformedURL)}
	h := NewAnalyzeHandler(discard(), a, memory.NewAnalysisRepository(), nil)

	rec := postJSON(t, h.HandleAnalyze, `{"url":"ftp://example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeExtractionFailure(t *testing.T) {
	a := &fakeAnalyzer{err: fmt.Errorf("failed to analyze URL: HTTP error: 503")}
	h := NewAnalyzeHandler(discard(), a, memory.NewAnalysisRepository(), nil)

	rec := postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if !strings.Contains(body.Message, "503") {
		t.Errorf("message = %q, want the underlying error", body.Message)
	}
}

func TestHandleAnalyzePersistsResult(t *testing.T) {
	repo := memory.NewAnalysisRepository()
	h := NewAnalyzeHandler(discard(), &fakeAnalyzer{}, repo, nil)

	rec := postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeAnalysis(t, rec)

	stored, err := repo.FindByURL(context.Background(), "https://example.com")
	if err != nil || stored == nil {
		t.Fatalf("FindByURL() = (%v, %v), want the persisted analysis", stored, err)
	}
	if stored.ID != got.ID {
		t.Errorf("response ID %s does not match stored ID %s", got.ID, stored.ID)
	}
}

func TestHandleAnalyzeFreshResultReused(t *testing.T) {
	repo := memory.NewAnalysisRepository()
	a := &fakeAnalyzer{}
	h := NewAnalyzeHandler(discard(), a, repo, nil)

	first := decodeAnalysis(t, postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`))
	second := decodeAnalysis(t, postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`))

	if a.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1 (second request served from storage)", a.calls)
	}
	if first.ID != second.ID {
		t.Errorf("IDs differ: %s vs %s, want the same stored analysis", first.ID, second.ID)
	}
}

func TestHandleAnalyzeStaleResultReanalyzed(t *testing.T) {
	repo := memory.NewAnalysisRepository()
	a := &fakeAnalyzer{}
	h := NewAnalyzeHandler(discard(), a, repo, nil)

	stale := &domain.Analysis{
		URL:       "https://example.com",
		Title:     "Old",
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	if err := repo.Create(context.Background(), stale); err != nil {
		t.Fatal(err)
	}

	rec := postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeAnalysis(t, rec)

	if a.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1 (stale entry must not satisfy the request)", a.calls)
	}
	if got.ID == stale.ID {
		t.Error("stale analysis was returned instead of a fresh one")
	}
	if got.Title != "Analyzed" {
		t.Errorf("Title = %q, want the fresh result", got.Title)
	}
}

func TestHandleGetAnalysis(t *testing.T) {
	repo := memory.NewAnalysisRepository()
	h := NewAnalyzeHandler(discard(), &fakeAnalyzer{}, repo, nil)

	stored := &domain.Analysis{URL: "https://example.com", Title: "Stored"}
	if err := repo.Create(context.Background(), stored); err != nil {
		t.Fatal(err)
	}

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/analysis/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.HandleGetAnalysis(rec, req)
		return rec
	}

	rec := get(stored.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeAnalysis(t, rec); got.Title != "Stored" {
		t.Errorf("Title = %q, want Stored", got.Title)
	}

	if rec := get("00000000-0000-0000-0000-000000000001"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}
	if rec := get("not-a-uuid"); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", rec.Code)
	}
}

type fakeCache struct {
	entries map[string]*domain.Analysis
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Analysis)}
}

func (c *fakeCache) Get(ctx context.Context, url string) (*domain.Analysis, error) {
	return c.entries[url], nil
}

func (c *fakeCache) Set(ctx context.Context, analysis *domain.Analysis) error {
	c.sets++
	c.entries[analysis.URL] = analysis
	return nil
}

func TestHandleAnalyzeCacheHitSkipsEverything(t *testing.T) {
	repo := memory.NewAnalysisRepository()
	a := &fakeAnalyzer{}
	cache := newFakeCache()
	cached := &domain.Analysis{URL: "https://example.com", Title: "Cached"}
	cache.entries["https://example.com"] = cached

	h := NewAnalyzeHandler(discard(), a, repo, cache)

	got := decodeAnalysis(t, postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`))
	if a.calls != 0 {
		t.Errorf("analyzer calls = %d, want 0 on cache hit", a.calls)
	}
	if got.Title != "Cached" {
		t.Errorf("Title = %q, want the cached analysis", got.Title)
	}
}

func TestHandleAnalyzeMissPopulatesCache(t *testing.T) {
	cache := newFakeCache()
	h := NewAnalyzeHandler(discard(), &fakeAnalyzer{}, memory.NewAnalysisRepository(), cache)

	rec := postJSON(t, h.HandleAnalyze, `{"url":"https://example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1 after a fresh analysis", cache.sets)
	}
	if cache.entries["https://example.com"] == nil {
		t.Error("cache should hold the fresh analysis")
	}
}
