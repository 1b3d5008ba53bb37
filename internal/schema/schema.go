// Package schema publishes JSON Schemas for the scene document the compiler
// reads and the timeline it writes.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/gahane31/my-animation-sub000/internal/engine"
	"github.com/gahane31/my-animation-sub000/internal/source"
)

const (
	InputFile  = "scene-document.schema.json"
	OutputFile = "timeline.schema.json"
)

// Input describes a scene document.
func Input() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(source.Document))
	schema.Title = "Scene Document"
	schema.Description = "Ordered scenes compiled into an animation timeline"
	return schema
}

// Output describes a compiled timeline.
func Output() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(engine.Timeline))
	schema.Title = "Animation Timeline"
	schema.Description = "Per-scene elements, connections, timing records and camera track"
	return schema
}

// Write stores both schemas in dir and returns their paths.
func Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create schema directory: %w", err)
	}
	files := []struct {
		name   string
		schema *jsonschema.Schema
	}{
		{InputFile, Input()},
		{OutputFile, Output()},
	}
	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeSchema(path, f.schema); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
