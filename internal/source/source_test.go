package source

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlDoc = `
title: checkout
personality: calm
scenes:
  - id: intro
    start: 0
    end: 4
    entities:
      - {id: api, type: service, importance: primary}
      - {id: db, type: database, count: 2}
    connections:
      - {id: c1, from: api, to: db, direction: one_way}
    camera: {target: api, zoom: 1.2}
`

const jsonDoc = `{
  "scenes": [
    {"id": "s1", "start": 0, "end": 3, "entities": [{"id": "a", "type": "service"}],
     "directives": {"hook": true}}
  ]
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Title != "checkout" || doc.Personality != "calm" {
		t.Errorf("header = %+v", doc)
	}
	s := doc.Scenes[0]
	if len(s.Entities) != 2 || s.Entities[1].Replicas() != 2 {
		t.Errorf("entities = %+v", s.Entities)
	}
	if s.Camera == nil || s.Camera.Target != "api" || s.Camera.Zoom != 1.2 {
		t.Errorf("camera = %+v", s.Camera)
	}

	doc, err = ParseDocument([]byte(jsonDoc))
	if err != nil {
		t.Fatalf("ParseDocument(json) failed: %v", err)
	}
	if d := doc.Scenes[0].Directives; d == nil || d.Hook == nil || !*d.Hook {
		t.Errorf("directives = %+v", d)
	}

	if _, err := ParseDocument([]byte("title: empty\n")); err == nil {
		t.Error("Expected error for a document without scenes")
	}
}

func TestFileSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":    yamlDoc,
		"a.json":    jsonDoc,
		"notes.txt": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	src, err := NewFileSource(dir)
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}
	if src.Count() != 2 {
		t.Fatalf("Count = %d, want 2", src.Count())
	}
	if filepath.Base(src.Path(0)) != "a.json" {
		t.Errorf("documents should be sorted, got %s first", src.Path(0))
	}

	doc, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Title != "a" {
		t.Errorf("untitled document should be named after its file, got %q", doc.Title)
	}
	if _, err := src.Load(5); err == nil {
		t.Error("Expected error for out-of-range index")
	}
}

func TestFileSourceEmptyDir(t *testing.T) {
	if _, err := NewFileSource(t.TempDir()); err == nil {
		t.Error("Expected error for a directory without documents")
	}
}
