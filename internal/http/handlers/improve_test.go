package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"taglens/internal/domain"
)

type fakeImprover struct {
	req domain.ImproveRequest
	out domain.ImprovedTags
}

func (f *fakeImprover) GenerateImprovedTags(ctx context.Context, req domain.ImproveRequest) domain.ImprovedTags {
	f.req = req
	return f.out
}

func TestHandleImprove(t *testing.T) {
	improver := &fakeImprover{out: domain.ImprovedTags{
		ImprovedTitle:       "Better Title",
		ImprovedDescription: "Better description",
		SuggestedKeywords:   []string{"seo", "tags"},
	}}
	h := NewImproveHandler(discard(), improver)

	rec := postJSON(t, h.HandleImprove,
		`{"url":"https://example.com","title":"Old","content":"body text","type":"article"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got domain.ImprovedTags
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ImprovedTitle != "Better Title" || len(got.SuggestedKeywords) != 2 {
		t.Errorf("response = %+v", got)
	}
	if improver.req.URL != "https://example.com" || improver.req.Type != "article" {
		t.Errorf("improver request = %+v", improver.req)
	}
}

func TestHandleImproveValidation(t *testing.T) {
	h := NewImproveHandler(discard(), &fakeImprover{})

	for _, body := range []string{"not json", `{"title":"no url"}`} {
		rec := postJSON(t, h.HandleImprove, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleImproveEngineFailureIsEmptyObject(t *testing.T) {
	// The improver degrades internally; the handler always returns 200
	h := NewImproveHandler(discard(), &fakeImprover{})

	rec := postJSON(t, h.HandleImprove, `{"url":"https://example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "{}\n" {
		t.Errorf("body = %q, want an empty JSON object", body)
	}
}
