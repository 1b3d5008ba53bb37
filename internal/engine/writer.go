package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal encodes a timeline as yaml (default) or json.
func Marshal(tl *Timeline, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return yaml.Marshal(tl)
	case "json":
		return json.MarshalIndent(tl, "", "  ")
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteTimeline writes a timeline to path, creating parent directories.
func WriteTimeline(tl *Timeline, path, format string) error {
	data, err := Marshal(tl, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTimeline reads a timeline written in either format.
func ReadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, err
	}

	return &tl, nil
}

// FormatExt is the file extension for an output format.
func FormatExt(format string) string {
	if strings.ToLower(format) == "json" {
		return ".json"
	}
	return ".yaml"
}
