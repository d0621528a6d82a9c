package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	settingsFile string
	apiKey       string
	provider     string
	outputPath   string
	debugMode    bool
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging.
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zeus-feed",
	Short: "Multilingual news aggregator with neutral recaps",
	Long: `zeus-feed pulls configured RSS feeds, deduplicates their entries,
produces a neutral recap and main idea per entry (via an optional LLM
call with a deterministic local fallback), scores topical tags and bias,
and writes a single sorted JSON snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate()
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one aggregation pass and write the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Refresh the snapshot on a schedule and serve it over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, pipeline, writer, err := buildApp()
		if err != nil {
			return err
		}
		return NewServer(pipeline, writer, settings.ServeAddr, settings.CronSpec).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "Path to settings YAML (default: embedded feed list)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Summarization API key (default: OPENROUTER_API_KEY or ANTHROPIC_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "openrouter", "Summarization provider: openrouter or anthropic")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "Snapshot path (default: from settings)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(serveCmd)
}

// buildApp assembles the pipeline from settings and flags.
func buildApp() (*Settings, *Pipeline, *SnapshotWriter, error) {
	SetDebugMode(debugMode)

	settings, err := loadSettings(settingsFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	if outputPath != "" {
		settings.OutputPath = outputPath
	}

	remote, err := buildRemoteSummarizer()
	if err != nil {
		return nil, nil, nil, err
	}
	if remote == nil {
		log.Printf("No summarization credential configured; using heuristic summaries")
	}

	pipeline := NewPipeline(settings.Feeds, NewFeedFetcher(), NewSummarizer(remote))
	writer := NewSnapshotWriter(settings.OutputPath)
	return settings, pipeline, writer, nil
}

// buildRemoteSummarizer selects the remote backend from the provider
// flag and available credentials. A missing credential is a
// configuration choice, not an error: it returns nil and the pipeline
// runs on heuristics alone.
func buildRemoteSummarizer() (RemoteSummarizer, error) {
	switch provider {
	case "openrouter":
		key := apiKey
		if key == "" {
			key = os.Getenv("OPENROUTER_API_KEY")
		}
		if key == "" {
			return nil, nil
		}
		return NewOpenRouterSummarizer(key, summarizerSystemPrompt), nil
	case "anthropic":
		key := apiKey
		if key == "" {
			key = os.Getenv("ANTHROPIC_API_KEY")
		}
		if key == "" {
			return nil, nil
		}
		remote, err := NewAnthropicSummarizer(key, summarizerSystemPrompt, recapSchema)
		if err != nil {
			return nil, err
		}
		return remote, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func runUpdate() error {
	_, pipeline, writer, err := buildApp()
	if err != nil {
		return err
	}

	items := pipeline.Run(context.Background())
	if err := writer.Write(items); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	log.Printf("✓ Wrote %d items to %s", len(items), writer.Path())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
