package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Embedded defaults, used when no settings file exists on disk.
//
//go:embed config/settings.yaml
var defaultSettingsYAML string

//go:embed config/summarizer-system-prompt.md
var summarizerSystemPrompt string

//go:embed config/recap-schema.json
var recapSchema string

// Settings is the YAML configuration: the static feed list plus runtime
// knobs for the snapshot path and serve mode.
type Settings struct {
	OutputPath string       `yaml:"output_path"`
	ServeAddr  string       `yaml:"serve_addr"`
	CronSpec   string       `yaml:"cron_spec"`
	Feeds      []FeedConfig `yaml:"feeds"`
}

const (
	defaultOutputPath = "docs/feed.json"
	defaultServeAddr  = ":8080"
	defaultCronSpec   = "*/30 * * * *"
)

// loadSettings reads the settings file, falling back to the embedded
// defaults when no path is given or the default file does not exist. An
// explicitly named file must exist and parse.
func loadSettings(path string) (*Settings, error) {
	data := []byte(defaultSettingsYAML)
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
		data = fileData
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.OutputPath == "" {
		settings.OutputPath = defaultOutputPath
	}
	if settings.ServeAddr == "" {
		settings.ServeAddr = defaultServeAddr
	}
	if settings.CronSpec == "" {
		settings.CronSpec = defaultCronSpec
	}
	if len(settings.Feeds) == 0 {
		return nil, fmt.Errorf("settings declare no feeds")
	}
	for i, feed := range settings.Feeds {
		if feed.URL == "" {
			return nil, fmt.Errorf("feed %d has no url", i)
		}
		if feed.BiasScore < 0 || feed.BiasScore > 100 {
			return nil, fmt.Errorf("feed %s: bias_score %d outside [0,100]", feed.Source, feed.BiasScore)
		}
	}
	return &settings, nil
}
