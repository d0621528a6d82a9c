package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func rssDocument(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test Feed</title>` + items + `</channel></rss>`
}

func serveRSS(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, doc)
	}))
}

func TestFetchParsesEntries(t *testing.T) {
	doc := rssDocument(`
<item>
  <title>First &amp; foremost</title>
  <description>&lt;p&gt;Body of the &lt;b&gt;first&lt;/b&gt; entry.&lt;/p&gt;</description>
  <link>https://example.com/a</link>
  <pubDate>Mon, 02 Jan 2024 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Second</title>
  <description></description>
  <link>https://example.com/b</link>
</item>`)

	server := serveRSS(t, doc)
	defer server.Close()

	entries, err := NewFeedFetcher().Fetch(context.Background(), FeedConfig{URL: server.URL, Source: "test"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Fetch() returned %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Title != "First & foremost" {
		t.Errorf("title = %q, want entities decoded", first.Title)
	}
	if first.Excerpt != "Body of the first entry." {
		t.Errorf("excerpt = %q, want markup stripped", first.Excerpt)
	}
	if first.URL != "https://example.com/a" {
		t.Errorf("url = %q", first.URL)
	}
	if first.PublishedAt == "" {
		t.Error("published timestamp missing")
	}
	if first.publishedTime == nil {
		t.Error("published timestamp did not parse")
	}

	second := entries[1]
	if second.Excerpt != "" || second.PublishedAt != "" {
		t.Errorf("missing fields should degrade to empty, got excerpt=%q published=%q",
			second.Excerpt, second.PublishedAt)
	}
	if second.publishedTime != nil {
		t.Error("entry without timestamp should have no parsed instant")
	}
}

func TestFetchCapsEntries(t *testing.T) {
	var items strings.Builder
	for i := 0; i < maxEntriesPerFeed+5; i++ {
		fmt.Fprintf(&items, "<item><title>Entry %d</title><link>https://example.com/%d</link></item>", i, i)
	}

	server := serveRSS(t, rssDocument(items.String()))
	defer server.Close()

	entries, err := NewFeedFetcher().Fetch(context.Background(), FeedConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(entries) != maxEntriesPerFeed {
		t.Errorf("Fetch() returned %d entries, want cap of %d", len(entries), maxEntriesPerFeed)
	}
	if entries[0].Title != "Entry 0" {
		t.Errorf("feed-native order not preserved: first = %q", entries[0].Title)
	}
}

func TestFetchShortensExcerpt(t *testing.T) {
	long := strings.Repeat("x", maxExcerptLen+100)
	doc := rssDocument("<item><title>T</title><description>" + long + "</description></item>")

	server := serveRSS(t, doc)
	defer server.Close()

	entries, err := NewFeedFetcher().Fetch(context.Background(), FeedConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := len([]rune(entries[0].Excerpt)); got != maxExcerptLen {
		t.Errorf("excerpt length = %d runes, want %d", got, maxExcerptLen)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"not a feed", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "this is not xml at all")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			if _, err := NewFeedFetcher().Fetch(context.Background(), FeedConfig{URL: server.URL}); err == nil {
				t.Error("Fetch() succeeded, want error")
			}
		})
	}
}

func TestFetchUpdatedFallback(t *testing.T) {
	// Atom feeds carry updated rather than published; the entry keeps
	// whichever timestamp the feed actually supplied.
	doc := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <entry>
    <title>Atom entry</title>
    <link href="https://example.com/atom"/>
    <updated>2024-01-02T10:00:00Z</updated>
  </entry>
</feed>`

	server := serveRSS(t, doc)
	defer server.Close()

	entries, err := NewFeedFetcher().Fetch(context.Background(), FeedConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Fetch() returned %d entries, want 1", len(entries))
	}
	if entries[0].PublishedAt == "" {
		t.Error("updated timestamp not used as published fallback")
	}
	if entries[0].publishedTime == nil {
		t.Error("updated timestamp did not parse")
	}
}
