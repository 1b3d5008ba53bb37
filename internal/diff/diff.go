package diff

import (
	"math"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// PositionEpsilon ignores floating noise on either axis.
const PositionEpsilon = 0.001

type Kind string

const (
	EntityAdded             Kind = "entity_added"
	EntityRemoved           Kind = "entity_removed"
	EntityMoved             Kind = "entity_moved"
	EntityCountChanged      Kind = "entity_count_changed"
	EntityStatusChanged     Kind = "entity_status_changed"
	EntityImportanceChanged Kind = "entity_importance_changed"

	ConnectionAdded   Kind = "connection_added"
	ConnectionRemoved Kind = "connection_removed"

	InteractionAdded            Kind = "interaction_added"
	InteractionRemoved          Kind = "interaction_removed"
	InteractionIntensityChanged Kind = "interaction_intensity_changed"

	CameraChanged Kind = "camera_changed"
)

// EntityChange is one attribute-level change of one entity. Before is nil
// for additions and After is nil for removals.
type EntityChange struct {
	Kind   Kind          `yaml:"kind" json:"kind"`
	ID     string        `yaml:"id" json:"id"`
	Before *scene.Entity `yaml:"before,omitempty" json:"before,omitempty"`
	After  *scene.Entity `yaml:"after,omitempty" json:"after,omitempty"`
}

type ConnectionChange struct {
	Kind       Kind             `yaml:"kind" json:"kind"`
	ID         string           `yaml:"id" json:"id"`
	Connection scene.Connection `yaml:"connection" json:"connection"`
}

type InteractionChange struct {
	Kind   Kind               `yaml:"kind" json:"kind"`
	ID     string             `yaml:"id" json:"id"`
	Before *scene.Interaction `yaml:"before,omitempty" json:"before,omitempty"`
	After  *scene.Interaction `yaml:"after,omitempty" json:"after,omitempty"`
}

type CameraChange struct {
	Kind   Kind          `yaml:"kind" json:"kind"`
	Before *scene.Camera `yaml:"before" json:"before"`
	After  *scene.Camera `yaml:"after" json:"after"`
}

// Diff is the structural delta between two snapshots, grouped by category.
// Each record describes exactly one change.
type Diff struct {
	Entities     []EntityChange      `yaml:"entities,omitempty" json:"entities,omitempty"`
	Connections  []ConnectionChange  `yaml:"connections,omitempty" json:"connections,omitempty"`
	Interactions []InteractionChange `yaml:"interactions,omitempty" json:"interactions,omitempty"`
	Camera       *CameraChange       `yaml:"camera,omitempty" json:"camera,omitempty"`
}

// Compute compares two snapshots. It is pure: Compute(s, s) is empty.
func Compute(previous, current scene.Snapshot) Diff {
	var d Diff
	d.Entities = entityChanges(previous.Entities, current.Entities)
	d.Connections = connectionChanges(previous.Connections, current.Connections)
	d.Interactions = interactionChanges(previous.Interactions, current.Interactions)
	if !cameraEqual(previous.Camera, current.Camera) {
		d.Camera = &CameraChange{Kind: CameraChanged, Before: previous.Camera, After: current.Camera}
	}
	return d
}

func entityChanges(prev, cur []scene.Entity) []EntityChange {
	prevByID := make(map[string]scene.Entity, len(prev))
	for _, e := range prev {
		prevByID[e.ID] = e
	}
	curByID := make(map[string]bool, len(cur))
	for _, e := range cur {
		curByID[e.ID] = true
	}

	var out []EntityChange
	for i := range cur {
		if _, ok := prevByID[cur[i].ID]; !ok {
			after := cur[i]
			out = append(out, EntityChange{Kind: EntityAdded, ID: after.ID, After: &after})
		}
	}
	for i := range prev {
		if !curByID[prev[i].ID] {
			before := prev[i]
			out = append(out, EntityChange{Kind: EntityRemoved, ID: before.ID, Before: &before})
		}
	}
	for i := range cur {
		before, ok := prevByID[cur[i].ID]
		if !ok {
			continue
		}
		after := cur[i]
		emit := func(kind Kind) {
			b, a := before, after
			out = append(out, EntityChange{Kind: kind, ID: after.ID, Before: &b, After: &a})
		}
		if moved(before.Position, after.Position) {
			emit(EntityMoved)
		}
		if before.Replicas() != after.Replicas() {
			emit(EntityCountChanged)
		}
		if before.Status != after.Status {
			emit(EntityStatusChanged)
		}
		if importance(before) != importance(after) {
			emit(EntityImportanceChanged)
		}
	}
	return out
}

func connectionChanges(prev, cur []scene.Connection) []ConnectionChange {
	prevIDs := make(map[string]bool, len(prev))
	for _, c := range prev {
		prevIDs[c.ID] = true
	}
	curIDs := make(map[string]bool, len(cur))
	for _, c := range cur {
		curIDs[c.ID] = true
	}

	var out []ConnectionChange
	for _, c := range cur {
		if !prevIDs[c.ID] {
			out = append(out, ConnectionChange{Kind: ConnectionAdded, ID: c.ID, Connection: c})
		}
	}
	for _, c := range prev {
		if !curIDs[c.ID] {
			out = append(out, ConnectionChange{Kind: ConnectionRemoved, ID: c.ID, Connection: c})
		}
	}
	return out
}

func interactionChanges(prev, cur []scene.Interaction) []InteractionChange {
	prevByID := make(map[string]scene.Interaction, len(prev))
	for _, in := range prev {
		prevByID[in.ID] = in
	}
	curIDs := make(map[string]bool, len(cur))
	for _, in := range cur {
		curIDs[in.ID] = true
	}

	var out []InteractionChange
	for i := range cur {
		after := cur[i]
		before, ok := prevByID[after.ID]
		switch {
		case !ok:
			out = append(out, InteractionChange{Kind: InteractionAdded, ID: after.ID, After: &after})
		case before.Intensity != after.Intensity:
			out = append(out, InteractionChange{Kind: InteractionIntensityChanged, ID: after.ID, Before: &before, After: &after})
		}
	}
	for i := range prev {
		if !curIDs[prev[i].ID] {
			before := prev[i]
			out = append(out, InteractionChange{Kind: InteractionRemoved, ID: before.ID, Before: &before})
		}
	}
	return out
}

func moved(a, b *scene.Point) bool {
	if a == nil || b == nil {
		return false
	}
	return math.Abs(a.X-b.X) > PositionEpsilon || math.Abs(a.Y-b.Y) > PositionEpsilon
}

func importance(e scene.Entity) scene.Importance {
	if e.Importance == "" {
		return scene.Secondary
	}
	return e.Importance
}

func cameraEqual(a, b *scene.Camera) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
