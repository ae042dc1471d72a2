package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStaticExtractorSuccess(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
<title>Static Page</title>
<meta property="og:title" content="Static OG" />
</head><body><p>content here</p></body></html>`))
	}))
	defer server.Close()

	e := NewStaticExtractor(discard())
	data, err := e.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if data.Title != "Static Page" {
		t.Errorf("Title = %q", data.Title)
	}
	if data.OpenGraphTags["og:title"] != "Static OG" {
		t.Errorf("og:title = %q", data.OpenGraphTags["og:title"])
	}
	if data.Content != "content here" {
		t.Errorf("Content = %q", data.Content)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser-like value", gotUA)
	}
}

func TestStaticExtractorHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	e := NewStaticExtractor(discard())
	_, err := e.Extract(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Extract() error = nil, want failure on 503")
	}
	if !strings.Contains(err.Error(), "HTTP error: 503") {
		t.Errorf("error = %v, want HTTP error with status code", err)
	}
}

func TestStaticExtractorConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	e := NewStaticExtractor(discard())
	if _, err := e.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("Extract() error = nil, want connection failure")
	}
}
