package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/gahane31/my-animation-sub000/internal/layout"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

type Config struct {
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	Personality        string  `yaml:"personality"`
	Pacing             string  `yaml:"pacing"`
	DefaultTemplate    string  `yaml:"defaultTemplate"`
	OptimizeCrossings  bool    `yaml:"optimizeCrossings"`
	MaxOptimizerPasses int     `yaml:"maxOptimizerPasses"`
	HookSceneIndex     int     `yaml:"hookSceneIndex"` // -1 disables the opening hook
	Workers            int     `yaml:"workers"`
	ShowStats          bool    `yaml:"showStats"`
	OutputFormat       string  `yaml:"outputFormat"` // yaml or json
	BuildVersion       string  `yaml:"-"`
	PreviewAddr        string  `yaml:"previewAddr"`
	PlaybackStep       float64 `yaml:"playbackStep"` // Seconds per playback tick
	SchemaDir          string  `yaml:"schemaDir"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() *Config {
	return &Config{
		Personality:        timing.DefaultPersonality,
		Pacing:             string(timing.PacingNormal),
		DefaultTemplate:    string(layout.DefaultTemplate),
		OptimizeCrossings:  true,
		MaxOptimizerPasses: layout.DefaultMaxPasses,
		HookSceneIndex:     0,
		Workers:            runtime.NumCPU(),
		OutputFormat:       "yaml",
		PlaybackStep:       1.0 / 30,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects names the compiler would not recognize.
func (c *Config) Validate() error {
	if _, err := timing.LookupPersonality(c.Personality); err != nil {
		return err
	}
	if _, err := timing.ParsePacing(c.Pacing); err != nil {
		return err
	}
	if c.DefaultTemplate != "" {
		if _, err := layout.ParseTemplate(c.DefaultTemplate); err != nil {
			return err
		}
	}
	switch c.OutputFormat {
	case "", "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q (yaml, json)", c.OutputFormat)
	}
	if c.MaxOptimizerPasses < 0 {
		return fmt.Errorf("maxOptimizerPasses must be >= 0, got %d", c.MaxOptimizerPasses)
	}
	if c.PlaybackStep < 0 {
		return fmt.Errorf("playbackStep must be >= 0, got %v", c.PlaybackStep)
	}
	return nil
}
