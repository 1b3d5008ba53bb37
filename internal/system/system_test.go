package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFindLatestDocument(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	files := []struct {
		name string
		age  time.Duration
	}{
		{"old.yaml", 3 * time.Hour},
		{"newer.json", time.Hour},
		{"newest.txt", 0}, // not a document
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte("scenes: []\n"), 0644); err != nil {
			t.Fatal(err)
		}
		mt := now.Add(-f.age)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindLatestDocument(dir)
	if err != nil {
		t.Fatalf("FindLatestDocument failed: %v", err)
	}
	if filepath.Base(got) != "newer.json" {
		t.Errorf("Expected newer.json, got %s", got)
	}

	if _, err := FindLatestDocument(t.TempDir()); err == nil {
		t.Error("Expected error for an empty directory")
	}
	if _, err := FindLatestDocument(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestCollectStats(t *testing.T) {
	st, err := CollectStats(time.Now().Add(-time.Second))
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	if st.Elapsed < time.Second {
		t.Errorf("Elapsed = %s", st.Elapsed)
	}
	if !strings.Contains(st.String(), "rss") {
		t.Errorf("String() = %q", st.String())
	}
	t.Logf("stats: %s", st)
}
