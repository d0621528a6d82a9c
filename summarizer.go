package main

import (
	"context"
	"strings"
)

// SummaryRequest carries one entry into a remote summarization call.
type SummaryRequest struct {
	Title   string
	Excerpt string
	Lang    string
}

// remoteSummary is the structured payload a remote backend must return.
type remoteSummary struct {
	Recap    string   `json:"recap"`
	MainIdea string   `json:"main_idea"`
	Tags     []string `json:"tags"`
}

// RemoteSummarizer is one external summarization backend. A backend
// performs a single bounded attempt; retry policy is out of scope.
type RemoteSummarizer interface {
	Name() string
	Summarize(ctx context.Context, req SummaryRequest) (*remoteSummary, error)
}

// Summarizer produces a neutral recap/main-idea pair per entry. With a
// remote backend configured it tries one external call and falls back to
// the local heuristic on any failure; without one it goes straight to
// the heuristic. It never returns an error: an unavailable or
// misbehaving backend must not stall the pipeline.
type Summarizer struct {
	remote RemoteSummarizer
}

// NewSummarizer creates a Summarizer. remote may be nil, which disables
// the external path entirely.
func NewSummarizer(remote RemoteSummarizer) *Summarizer {
	return &Summarizer{remote: remote}
}

// Summarize resolves one entry to a SummaryResult.
//
// Every remote fault is treated uniformly: transport error, bad status,
// unparseable body and a missing recap all collapse into the heuristic
// result. On remote success, fields the backend left empty fall back
// individually to their heuristic values while confidence stays "llm".
func (s *Summarizer) Summarize(ctx context.Context, title, excerpt, lang string) SummaryResult {
	fallback := s.heuristic(title, excerpt)
	if s.remote == nil {
		return fallback
	}

	remote, err := s.remote.Summarize(ctx, SummaryRequest{Title: title, Excerpt: excerpt, Lang: lang})
	if err != nil {
		debugLog("summarize via %s failed, using heuristic: %v", s.remote.Name(), err)
		return fallback
	}
	if remote == nil || strings.TrimSpace(remote.Recap) == "" {
		debugLog("summarize via %s returned no recap, using heuristic", s.remote.Name())
		return fallback
	}

	result := SummaryResult{
		Recap:      remote.Recap,
		MainIdea:   remote.MainIdea,
		Tags:       remote.Tags,
		Confidence: ConfidenceLLM,
	}
	if strings.TrimSpace(result.MainIdea) == "" {
		result.MainIdea = fallback.MainIdea
	}
	if len(result.Tags) == 0 {
		result.Tags = fallback.Tags
	}
	if len(result.Tags) > maxTags {
		result.Tags = result.Tags[:maxTags]
	}
	return result
}

// heuristic builds the deterministic local summary: first sentence of
// the excerpt (or the title when the excerpt is empty) as the recap, the
// shortened title as the main idea.
func (s *Summarizer) heuristic(title, excerpt string) SummaryResult {
	firstSentence := title
	if excerpt != "" {
		firstSentence = strings.TrimSpace(strings.SplitN(excerpt, ".", 2)[0])
	}
	if firstSentence == "" {
		firstSentence = title
	}

	return SummaryResult{
		Recap:      shorten(firstSentence, maxRecapLen),
		MainIdea:   shorten(title, maxMainIdeaLen),
		Tags:       extractTags(title + " " + excerpt),
		Confidence: ConfidenceHeuristic,
	}
}
