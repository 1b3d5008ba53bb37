package engine

import (
	"fmt"

	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/effects"
	"github.com/gahane31/my-animation-sub000/internal/layout"
	"github.com/gahane31/my-animation-sub000/internal/scene"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// Version of the timeline format.
const Version = "1.0"

// Timeline is the compiled output handed to a renderer.
type Timeline struct {
	Version     string          `yaml:"version" json:"version"`
	Title       string          `yaml:"title,omitempty" json:"title,omitempty"`
	Duration    float64         `yaml:"duration" json:"duration"`
	Personality string          `yaml:"personality" json:"personality"`
	Pacing      string          `yaml:"pacing" json:"pacing"`
	Scenes      []SceneTimeline `yaml:"scenes" json:"scenes"`
	CameraTrack director.Track  `yaml:"cameraTrack" json:"cameraTrack"`
	Warnings    []string        `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// ConnectionElement is a routed connection.
type ConnectionElement struct {
	ID        string        `yaml:"id" json:"id"`
	From      string        `yaml:"from" json:"from"`
	To        string        `yaml:"to" json:"to"`
	Direction string        `yaml:"direction,omitempty" json:"direction,omitempty"`
	Style     string        `yaml:"style,omitempty" json:"style,omitempty"`
	Points    []scene.Point `yaml:"points" json:"points"`
}

type SceneTimeline struct {
	ID          string              `yaml:"id" json:"id"`
	Start       float64             `yaml:"start" json:"start"`
	End         float64             `yaml:"end" json:"end"`
	Narration   string              `yaml:"narration,omitempty" json:"narration,omitempty"`
	Template    layout.Template     `yaml:"template" json:"template"`
	Hook        bool                `yaml:"hook,omitempty" json:"hook,omitempty"`
	Elements    []effects.Element   `yaml:"elements" json:"elements"`
	Connections []ConnectionElement `yaml:"connections,omitempty" json:"connections,omitempty"`
	Crossings   int                 `yaml:"crossings" json:"crossings"`

	Diff                diff.Diff                     `yaml:"diff" json:"diff"`
	Hierarchy           director.HierarchyPlan        `yaml:"hierarchy" json:"hierarchy"`
	HierarchyTransition *director.HierarchyTransition `yaml:"hierarchyTransition,omitempty" json:"hierarchyTransition,omitempty"`
	Timing              timing.Plan                   `yaml:"timing" json:"timing"`
	Camera              *director.CameraPlan          `yaml:"camera,omitempty" json:"camera,omitempty"`
	CameraChanged       bool                          `yaml:"cameraChanged" json:"cameraChanged"`

	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// Duration is the authored length of the scene.
func (s SceneTimeline) Duration() float64 {
	return s.End - s.Start
}

// Check verifies the output contract: unique element ids per scene, every
// position inside the canvas and every timing value inside its bounds.
func (t *Timeline) Check() error {
	for _, s := range t.Scenes {
		seen := make(map[string]bool, len(s.Elements))
		for _, el := range s.Elements {
			if seen[el.ID] {
				return fmt.Errorf("scene %q: duplicate element %q", s.ID, el.ID)
			}
			seen[el.ID] = true
			p := el.Position
			if p.X < scene.CanvasMin || p.X > scene.CanvasMax || p.Y < scene.CanvasMin || p.Y > scene.CanvasMax {
				return fmt.Errorf("scene %q: element %q at (%.2f, %.2f) outside the canvas", s.ID, el.ID, p.X, p.Y)
			}
		}

		dur := s.Duration()
		check := func(what string, action timing.Action, delay, duration float64) error {
			b := timing.DurationBounds[action]
			if duration < b.Min || duration > b.Max {
				return fmt.Errorf("scene %q: %s duration %.3f outside [%.1f, %.1f]", s.ID, what, duration, b.Min, b.Max)
			}
			if delay < 0 || delay > dur {
				return fmt.Errorf("scene %q: %s delay %.3f outside [0, %.3f]", s.ID, what, delay, dur)
			}
			return nil
		}
		for _, e := range s.Timing.Entities {
			if err := check(e.EntityID, e.Action, e.Delay, e.Duration); err != nil {
				return err
			}
		}
		for _, c := range s.Timing.Connections {
			if err := check(c.ConnectionID, timing.ActionConnect, c.Delay, c.Duration); err != nil {
				return err
			}
		}
		if c := s.Timing.Camera; c != nil {
			if err := check("camera", timing.ActionCamera, c.Delay, c.Duration); err != nil {
				return err
			}
		}
	}
	return nil
}
