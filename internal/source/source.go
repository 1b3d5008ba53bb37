package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// Document is one scene sequence as produced by the upstream generator.
type Document struct {
	Version     string        `yaml:"version,omitempty" json:"version,omitempty"`
	Title       string        `yaml:"title,omitempty" json:"title,omitempty"`
	Personality string        `yaml:"personality,omitempty" json:"personality,omitempty" jsonschema:"enum=balanced,enum=calm,enum=energetic,enum=technical"`
	Pacing      string        `yaml:"pacing,omitempty" json:"pacing,omitempty" jsonschema:"enum=normal,enum=fast_reel"`
	Scenes      []scene.Scene `yaml:"scenes" json:"scenes" jsonschema:"minItems=1"`
}

// Extensions lists the file types a Source picks up.
var Extensions = []string{".yaml", ".yml", ".json"}

type Source interface {
	Count() int
	Path(index int) string
	Load(index int) (*Document, error)
}

// FileSource reads scene documents from a file or a directory of files.
type FileSource struct {
	paths []string
}

func NewFileSource(path string) (*FileSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsDocument(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scene documents in %s", path)
	}
	return &FileSource{paths: paths}, nil
}

func (s *FileSource) Count() int {
	return len(s.paths)
}

func (s *FileSource) Path(index int) string {
	return s.paths[index]
}

func (s *FileSource) Load(index int) (*Document, error) {
	if index < 0 || index >= len(s.paths) {
		return nil, fmt.Errorf("document index %d out of range", index)
	}
	return ReadDocument(s.paths[index])
}

// ReadDocument parses a YAML or JSON scene document.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// ParseDocument decodes a document. JSON input is accepted as YAML.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("document has no scenes")
	}
	return &doc, nil
}

func IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
