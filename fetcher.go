package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	maxEntriesPerFeed = 15
	fetchTimeout      = 15 * time.Second
)

// FeedFetcher pulls raw entries from RSS/Atom endpoints. Parsing is
// delegated to gofeed, which tolerates most malformed feed documents;
// absent fields degrade to empty strings.
type FeedFetcher struct {
	client *http.Client
	parser *gofeed.Parser
}

// NewFeedFetcher creates a fetcher with a bounded per-request timeout.
func NewFeedFetcher() *FeedFetcher {
	return &FeedFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		parser: gofeed.NewParser(),
	}
}

// Fetch returns up to maxEntriesPerFeed entries from one feed in
// feed-native order. A feed that cannot be fetched or parsed returns an
// error; the caller decides containment.
func (f *FeedFetcher) Fetch(ctx context.Context, cfg FeedConfig) ([]RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", cfg.URL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", cfg.URL, resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.URL, err)
	}

	entries := make([]RawEntry, 0, maxEntriesPerFeed)
	for _, it := range feed.Items {
		if len(entries) >= maxEntriesPerFeed {
			break
		}
		entries = append(entries, entryFromItem(it))
	}
	return entries, nil
}

// entryFromItem converts one gofeed item, falling back from published to
// updated fields when the former is missing.
func entryFromItem(it *gofeed.Item) RawEntry {
	published := it.Published
	publishedTime := it.PublishedParsed
	if published == "" {
		published = it.Updated
		publishedTime = it.UpdatedParsed
	}

	return RawEntry{
		Title:         cleanText(it.Title),
		Excerpt:       shorten(cleanText(it.Description), maxExcerptLen),
		URL:           it.Link,
		PublishedAt:   published,
		publishedTime: publishedTime,
	}
}
