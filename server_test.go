package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feeds := []FeedConfig{{URL: "feed-a", Source: "A", Lang: "en"}}
	source := &stubSource{entries: map[string][]RawEntry{
		"feed-a": {{Title: "Story", URL: "https://example.com/s"}},
	}}
	pipeline := NewPipeline(feeds, source, NewSummarizer(nil))
	writer := NewSnapshotWriter(filepath.Join(t.TempDir(), "feed.json"))

	return NewServer(pipeline, writer, ":0", "*/30 * * * *")
}

func TestServerHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}

func TestServerFeedNotReady(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed.json", nil)
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before first refresh", rec.Code)
	}
}

func TestServerServesSnapshotAfterRefresh(t *testing.T) {
	s := newTestServer(t)
	s.refresh()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed.json", nil)
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 after refresh", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"title_original": "Story"`) {
		t.Errorf("snapshot body missing aggregated item:\n%s", rec.Body.String())
	}
}

func TestServerRefreshKeepsPreviousSnapshotOnFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	feeds := []FeedConfig{{URL: "feed-a", Source: "A"}}
	source := &stubSource{entries: map[string][]RawEntry{
		"feed-a": {{Title: "Story", URL: "https://example.com/s"}},
	}}
	pipeline := NewPipeline(feeds, source, NewSummarizer(nil))
	writer := NewSnapshotWriter(filepath.Join(t.TempDir(), "feed.json"))
	s := NewServer(pipeline, writer, ":0", "*/30 * * * *")

	s.refresh()

	// Subsequent refresh where every feed fails still writes a valid,
	// empty snapshot rather than a truncated one.
	source.errs = map[string]error{"feed-a": context.DeadlineExceeded}
	s.refresh()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed.json", nil)
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items": []`) {
		t.Errorf("failed-feed refresh should produce an empty item list:\n%s", rec.Body.String())
	}
}
