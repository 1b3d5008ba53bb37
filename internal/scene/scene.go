package scene

import "math"

// Canvas bounds of the normalized layout space.
const (
	CanvasMin = 0.0
	CanvasMax = 100.0
)

// FallbackID is the id of the element synthesized for a scene with no eligible entities.
const FallbackID = "_fallback"

type Importance string

const (
	Primary   Importance = "primary"
	Secondary Importance = "secondary"
)

type Direction string

const (
	OneWay        Direction = "one_way"
	Bidirectional Direction = "bidirectional"
)

// StatusHidden marks an entity that is carried in the document but not drawn.
const StatusHidden = "hidden"

// Point is a position in normalized [0,100]² space.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Clamp keeps the point inside the canvas.
func (p Point) Clamp() Point {
	return Point{X: clamp(p.X, CanvasMin, CanvasMax), Y: clamp(p.Y, CanvasMin, CanvasMax)}
}

// Entity is one identified component instance, tracked across scenes by ID.
type Entity struct {
	ID         string     `yaml:"id" json:"id" jsonschema:"description=Stable identifier, unique within a scene"`
	Type       string     `yaml:"type" json:"type" jsonschema:"description=Component type (service, database, queue ...)"`
	Count      float64    `yaml:"count,omitempty" json:"count,omitempty" jsonschema:"description=Replica count, normalized to max(1, round(count))"`
	Importance Importance `yaml:"importance,omitempty" json:"importance,omitempty" jsonschema:"enum=primary,enum=secondary"`
	Status     string     `yaml:"status,omitempty" json:"status,omitempty"`
	Label      string     `yaml:"label,omitempty" json:"label,omitempty"`
	Position   *Point     `yaml:"position,omitempty" json:"position,omitempty" jsonschema:"description=Optional authored position hint"`
}

// Replicas returns the normalized replica count.
func (e Entity) Replicas() int {
	return NormalizeCount(e.Count)
}

// IsPrimary reports whether the entity is explicitly flagged primary.
func (e Entity) IsPrimary() bool {
	return e.Importance == Primary
}

// DisplayName is the label if set, otherwise the id.
func (e Entity) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// NormalizeCount maps a raw replica count to max(1, round(count)).
func NormalizeCount(count float64) int {
	n := int(math.Round(count))
	if n < 1 {
		return 1
	}
	return n
}

type Connection struct {
	ID        string    `yaml:"id" json:"id"`
	From      string    `yaml:"from" json:"from"`
	To        string    `yaml:"to" json:"to"`
	Direction Direction `yaml:"direction,omitempty" json:"direction,omitempty" jsonschema:"enum=one_way,enum=bidirectional"`
	Style     string    `yaml:"style,omitempty" json:"style,omitempty"`
}

// Interaction describes transient traffic between two entities.
type Interaction struct {
	ID        string `yaml:"id" json:"id"`
	From      string `yaml:"from" json:"from"`
	To        string `yaml:"to" json:"to"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Intensity string `yaml:"intensity,omitempty" json:"intensity,omitempty"`
}

type StateChange struct {
	EntityID string `yaml:"entityId" json:"entityId"`
	Status   string `yaml:"status" json:"status"`
}

// Camera is the authored camera intent of a scene.
type Camera struct {
	Target string  `yaml:"target,omitempty" json:"target,omitempty"`
	Zoom   float64 `yaml:"zoom,omitempty" json:"zoom,omitempty"`
	Mode   string  `yaml:"mode,omitempty" json:"mode,omitempty"`
}

type Transition struct {
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	Pace string `yaml:"pace,omitempty" json:"pace,omitempty" jsonschema:"enum=slow,enum=medium,enum=fast"`
}

type Directives struct {
	Hook              *bool  `yaml:"hook,omitempty" json:"hook,omitempty"`
	OptimizeCrossings *bool  `yaml:"optimizeCrossings,omitempty" json:"optimizeCrossings,omitempty"`
	Pacing            string `yaml:"pacing,omitempty" json:"pacing,omitempty"`
}

// Scene is one timestamped unit of the narrative timeline.
type Scene struct {
	ID           string        `yaml:"id" json:"id"`
	Start        float64       `yaml:"start" json:"start"`
	End          float64       `yaml:"end" json:"end"`
	Narration    string        `yaml:"narration,omitempty" json:"narration,omitempty"`
	Entities     []Entity      `yaml:"entities" json:"entities"`
	Connections  []Connection  `yaml:"connections,omitempty" json:"connections,omitempty"`
	Interactions []Interaction `yaml:"interactions,omitempty" json:"interactions,omitempty"`
	StateChanges []StateChange `yaml:"stateChanges,omitempty" json:"stateChanges,omitempty"`
	Camera       *Camera       `yaml:"camera,omitempty" json:"camera,omitempty"`
	Template     string        `yaml:"template,omitempty" json:"template,omitempty"`
	Transition   *Transition   `yaml:"transition,omitempty" json:"transition,omitempty"`
	Directives   *Directives   `yaml:"directives,omitempty" json:"directives,omitempty"`
}

// Duration is End-Start in seconds.
func (s Scene) Duration() float64 {
	return s.End - s.Start
}

// Pace returns the transition pace hint, or "" when none is authored.
func (s Scene) Pace() string {
	if s.Transition == nil {
		return ""
	}
	return s.Transition.Pace
}

// Eligible returns the entities that are drawn in this scene, synthesizing a
// fallback element when none remain.
func (s Scene) Eligible() (entities []Entity, synthesized bool) {
	for _, e := range s.Entities {
		if e.Status == StatusHidden {
			continue
		}
		entities = append(entities, e)
	}
	if len(entities) == 0 {
		return []Entity{{ID: FallbackID, Type: "placeholder", Importance: Primary}}, true
	}
	return entities, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
