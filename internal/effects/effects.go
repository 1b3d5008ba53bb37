package effects

import (
	"fmt"
	"math"

	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/scene"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// Motion is an element's entrance or exit.
type Motion struct {
	Kind     string  `yaml:"kind" json:"kind"`
	Delay    float64 `yaml:"delay" json:"delay"`
	Duration float64 `yaml:"duration" json:"duration"`
	Easing   string  `yaml:"easing" json:"easing"`
	Scale    float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// Effect is a timed decoration that is neither entrance nor exit.
type Effect struct {
	Kind     string  `yaml:"kind" json:"kind"`
	Delay    float64 `yaml:"delay" json:"delay"`
	Duration float64 `yaml:"duration" json:"duration"`
	Value    string  `yaml:"value,omitempty" json:"value,omitempty"`
	Target   string  `yaml:"target,omitempty" json:"target,omitempty"`
}

// Element is one positioned entity as the renderer receives it.
type Element struct {
	ID       string            `yaml:"id" json:"id"`
	Type     string            `yaml:"type" json:"type"`
	Label    string            `yaml:"label,omitempty" json:"label,omitempty"`
	Count    int               `yaml:"count" json:"count"`
	Position scene.Point       `yaml:"position" json:"position"`
	Primary  bool              `yaml:"primary" json:"primary"`
	Emphasis director.Emphasis `yaml:"emphasis" json:"emphasis"`
	Enter    *Motion           `yaml:"enter,omitempty" json:"enter,omitempty"`
	Exit     *Motion           `yaml:"exit,omitempty" json:"exit,omitempty"`
	Effects  []Effect          `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// Cue is what a Decorator may read while decorating one scene.
type Cue struct {
	Diff          diff.Diff
	Timing        timing.Plan
	Hierarchy     director.HierarchyPlan
	Interactions  []scene.Interaction
	SceneDuration float64
}

// Decorator adds motion or effects to one element.
type Decorator interface {
	Apply(el *Element, cue Cue)
}

// DefaultChain is the decoration order used by the compiler.
func DefaultChain() []Decorator {
	return []Decorator{&MotionEffect{}, &EmphasisEffect{}, &ChangeEffect{}, &FlowEffect{}}
}

// Elements lists current entities in scene order followed by entities
// removed since previous, each once, at its last known position.
func Elements(current, previous scene.Snapshot, d diff.Diff) []Element {
	out := make([]Element, 0, len(current.Entities))
	for _, e := range current.Entities {
		out = append(out, newElement(e))
	}
	for _, id := range d.IDsOf(diff.EntityRemoved) {
		if e, ok := previous.Entity(id); ok {
			out = append(out, newElement(e))
		}
	}
	return out
}

func newElement(e scene.Entity) Element {
	el := Element{
		ID:      e.ID,
		Type:    e.Type,
		Label:   e.DisplayName(),
		Count:   e.Replicas(),
		Primary: e.IsPrimary(),
	}
	if e.Position != nil {
		el.Position = *e.Position
	}
	return el
}

// Decorate runs every effect over every element, in order.
func Decorate(elements []Element, cue Cue, chain ...Decorator) []Element {
	if len(chain) == 0 {
		chain = DefaultChain()
	}
	for i := range elements {
		for _, fx := range chain {
			fx.Apply(&elements[i], cue)
		}
	}
	return elements
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func countChange(c diff.EntityChange) string {
	before, after := 1, 1
	if c.Before != nil {
		before = c.Before.Replicas()
	}
	if c.After != nil {
		after = c.After.Replicas()
	}
	return fmt.Sprintf("%d->%d", before, after)
}
