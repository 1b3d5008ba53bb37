package layout

import (
	"fmt"
	"strings"
)

// Template is a layout family.
type Template string

const (
	Hero            Template = "hero"
	GraphHorizontal Template = "graph_horizontal"
	GraphVertical   Template = "graph_vertical"
	Split           Template = "split"
	Radial          Template = "radial"
)

// DefaultTemplate is used for empty and unknown template names.
const DefaultTemplate = GraphHorizontal

// CameraBias nudges camera target and zoom selection per template.
type CameraBias string

const (
	BiasStrongFocus CameraBias = "strong_focus"
	BiasWide        CameraBias = "wide"
	BiasFocusNew    CameraBias = "focus_new"
)

// ParseTemplate resolves a template name or alias.
func ParseTemplate(name string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hero", "centered":
		return Hero, nil
	case "graph_horizontal", "graph", "horizontal":
		return GraphHorizontal, nil
	case "graph_vertical", "vertical":
		return GraphVertical, nil
	case "split", "comparison":
		return Split, nil
	case "radial", "progressive_reveal":
		return Radial, nil
	default:
		return "", fmt.Errorf("unknown layout template: %q", name)
	}
}

// IsGraph reports whether the template layers entities by connection depth.
func (t Template) IsGraph() bool {
	return t == GraphHorizontal || t == GraphVertical
}

// Centered reports whether the primary sits at the canonical center.
func (t Template) Centered() bool {
	return t == Hero || t == Radial
}

func (t Template) CameraBias() CameraBias {
	switch t {
	case Hero:
		return BiasStrongFocus
	case Radial:
		return BiasFocusNew
	default:
		return BiasWide
	}
}
