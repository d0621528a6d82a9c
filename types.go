package main

import "time"

// Confidence marks how an item's recap was produced.
type Confidence string

const (
	ConfidenceLLM       Confidence = "llm"
	ConfidenceHeuristic Confidence = "heuristic"
)

// FeedConfig describes one monitored source. Loaded once at startup and
// never mutated afterwards.
type FeedConfig struct {
	URL            string `yaml:"url"`
	Source         string `yaml:"source"`
	Lang           string `yaml:"lang"`
	BiasScore      int    `yaml:"bias_score"`
	LeftRightIndex int    `yaml:"left_right_index"`
}

// RawEntry is one item pulled from a feed before aggregation. Any field
// may be empty; malformed feed fields degrade to "".
type RawEntry struct {
	Title       string
	Excerpt     string
	URL         string
	PublishedAt string

	// publishedTime is the parsed instant when the feed supplied one in a
	// recognizable format, nil otherwise. Used only for ordering.
	publishedTime *time.Time
}

// SummaryResult is the recap/main-idea pair produced for a single entry.
type SummaryResult struct {
	Recap      string
	MainIdea   string
	Tags       []string
	Confidence Confidence
}

// AggregatedItem is the output unit of a pipeline run.
//
// TitleNeutral currently mirrors TitleOriginal: only the recap goes
// through neutralization, the title is passed through untouched.
type AggregatedItem struct {
	TitleOriginal  string     `json:"title_original"`
	TitleNeutral   string     `json:"title_neutral"`
	Excerpt        string     `json:"excerpt"`
	RecapNeutral   string     `json:"recap_neutral"`
	MainIdea       string     `json:"main_idea"`
	Tags           []string   `json:"tags"`
	Source         string     `json:"source"`
	PublishedAt    string     `json:"published_at"`
	URL            string     `json:"url"`
	Lang           string     `json:"lang"`
	BiasScore      int        `json:"bias_score"`
	LeftRightIndex int        `json:"left_right_index"`
	Confidence     Confidence `json:"confidence"`

	publishedTime *time.Time
}

// Snapshot is the single artifact a run produces. It fully replaces the
// previous snapshot; there is no merging with prior state.
type Snapshot struct {
	LastUpdated string           `json:"last_updated"`
	Items       []AggregatedItem `json:"items"`
}
