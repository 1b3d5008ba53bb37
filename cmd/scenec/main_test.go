package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gahane31/my-animation-sub000/internal/config"
)

func TestOutputPath(t *testing.T) {
	cfg := config.Default()

	got := outputPath(cfg, "input/scenes/my doc.yaml", false)
	if filepath.Dir(got) != "output" || !strings.HasPrefix(filepath.Base(got), "my_doc_") || !strings.HasSuffix(got, ".timeline.yaml") {
		t.Errorf("single output = %s", got)
	}

	cfg.OutputPath = "out/result.json"
	cfg.OutputFormat = "json"
	if got := outputPath(cfg, "a.yaml", false); got != "out/result.json" {
		t.Errorf("explicit output = %s", got)
	}

	cfg.OutputPath = "out"
	if got := outputPath(cfg, "dir/b.yml", true); got != filepath.Join("out", "b.timeline.json") {
		t.Errorf("batch output = %s", got)
	}
}
