package main

import (
	"context"
	"log"
	"sort"
	"sync"
)

// EntrySource supplies raw entries for one configured feed.
type EntrySource interface {
	Fetch(ctx context.Context, cfg FeedConfig) ([]RawEntry, error)
}

// Pipeline runs one aggregation pass: fetch every configured feed,
// deduplicate, summarize, score and order. A Pipeline holds no per-run
// state and is safe to run repeatedly.
type Pipeline struct {
	feeds      []FeedConfig
	source     EntrySource
	summarizer *Summarizer
}

// NewPipeline wires the pipeline from its collaborators.
func NewPipeline(feeds []FeedConfig, source EntrySource, summarizer *Summarizer) *Pipeline {
	return &Pipeline{
		feeds:      feeds,
		source:     source,
		summarizer: summarizer,
	}
}

// Run produces the ordered item collection for one pass.
//
// Feeds are fetched concurrently, then folded in declaration order so
// deduplication stays deterministic: the first feed to declare a URL (or
// title, when the URL is empty) wins. A feed that fails to fetch
// contributes zero entries and never aborts the rest of the run.
func (p *Pipeline) Run(ctx context.Context) []AggregatedItem {
	fetched := make([][]RawEntry, len(p.feeds))

	var wg sync.WaitGroup
	for i, feed := range p.feeds {
		wg.Add(1)
		go func(i int, feed FeedConfig) {
			defer wg.Done()
			entries, err := p.source.Fetch(ctx, feed)
			if err != nil {
				log.Printf("✗ %s: %v", feed.Source, err)
				return
			}
			fetched[i] = entries
		}(i, feed)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var items []AggregatedItem

	for i, feed := range p.feeds {
		kept := 0
		for _, entry := range fetched[i] {
			if entry.Title == "" {
				continue
			}
			key := entry.URL
			if key == "" {
				key = entry.Title
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			summary := p.summarizer.Summarize(ctx, entry.Title, entry.Excerpt, feed.Lang)
			items = append(items, AggregatedItem{
				TitleOriginal:  entry.Title,
				TitleNeutral:   entry.Title,
				Excerpt:        entry.Excerpt,
				RecapNeutral:   summary.Recap,
				MainIdea:       summary.MainIdea,
				Tags:           summary.Tags,
				Source:         feed.Source,
				PublishedAt:    entry.PublishedAt,
				URL:            entry.URL,
				Lang:           feed.Lang,
				BiasScore:      scoreBias(entry.Title, feed.BiasScore),
				LeftRightIndex: feed.LeftRightIndex,
				Confidence:     summary.Confidence,
				publishedTime:  entry.publishedTime,
			})
			kept++
		}
		if len(fetched[i]) > 0 {
			log.Printf("✓ %s: fetched=%d kept=%d", feed.Source, len(fetched[i]), kept)
		}
	}

	sort.SliceStable(items, func(a, b int) bool {
		return moreRecent(items[a], items[b])
	})
	return items
}

// moreRecent orders items newest-first. Items whose timestamp parsed
// compare as instants and rank above those that did not; the rest fall
// into a stable bucket ordered by raw timestamp string, empty last.
func moreRecent(a, b AggregatedItem) bool {
	switch {
	case a.publishedTime != nil && b.publishedTime != nil:
		return a.publishedTime.After(*b.publishedTime)
	case a.publishedTime != nil:
		return true
	case b.publishedTime != nil:
		return false
	default:
		return a.PublishedAt > b.PublishedAt
	}
}
