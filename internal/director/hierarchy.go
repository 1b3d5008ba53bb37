package director

import (
	"strings"

	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/layout"
	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// Where a primary came from, in priority order.
const (
	SourceImportance     = "importance"
	SourceTemplateCenter = "template_center"
	SourceCameraTarget   = "camera_target"
	SourceHighlight      = "highlight"
	SourceNewestAdded    = "newest_added"
	SourceFirstEntity    = "first_entity"
	SourcePrevious       = "previous"
)

// Emphasis is the visual weight of one entity.
type Emphasis struct {
	Scale   float64 `yaml:"scale" json:"scale"`
	Opacity float64 `yaml:"opacity" json:"opacity"`
	Glow    bool    `yaml:"glow" json:"glow"`
}

// HierarchyPlan names the scene's lead entity and styles every entity
// relative to it. PrimaryID is empty only before any scene has run.
type HierarchyPlan struct {
	PrimaryID string              `yaml:"primaryId,omitempty" json:"primaryId,omitempty"`
	Source    string              `yaml:"source,omitempty" json:"source,omitempty"`
	Styles    map[string]Emphasis `yaml:"styles" json:"styles"`
}

// HierarchyTransition records a change of lead between two scenes.
type HierarchyTransition struct {
	From string `yaml:"from,omitempty" json:"from,omitempty"`
	To   string `yaml:"to" json:"to"`
}

type HierarchyInput struct {
	Entities     []scene.Entity
	Positions    map[string]scene.Point
	Template     layout.Template
	Camera       *scene.Camera
	StateChanges []scene.StateChange
	Diff         diff.Diff
	Previous     *HierarchyPlan
	Hook         bool
}

// ResolveHierarchy picks the primary entity, first match wins: explicit
// importance, nearest to center for centered templates, the camera target,
// the latest highlight, the newest addition, the first entity, and finally
// the previous primary.
func (d *Director) ResolveHierarchy(in HierarchyInput) HierarchyPlan {
	present := make(map[string]bool, len(in.Entities))
	for _, e := range in.Entities {
		present[e.ID] = true
	}

	id, source := resolvePrimary(in, present)
	plan := HierarchyPlan{PrimaryID: id, Source: source, Styles: make(map[string]Emphasis, len(in.Entities))}

	boost := 1.0
	if in.Hook {
		boost = d.HookScaleBoost
	}
	factor := d.Personality.Emphasis
	for _, e := range in.Entities {
		if e.ID == id {
			plan.Styles[e.ID] = Emphasis{Scale: round3(d.PrimaryScale * factor * boost), Opacity: 1, Glow: true}
			continue
		}
		plan.Styles[e.ID] = Emphasis{Scale: round3(d.SecondaryScale * factor), Opacity: d.SecondaryOpacity}
	}
	return plan
}

func resolvePrimary(in HierarchyInput, present map[string]bool) (string, string) {
	for _, e := range in.Entities {
		if e.IsPrimary() {
			return e.ID, SourceImportance
		}
	}

	if in.Template.Centered() {
		best, bestDist := "", 0.0
		for _, e := range in.Entities {
			p, ok := in.Positions[e.ID]
			if !ok {
				continue
			}
			if dist := p.Distance(layout.Center); best == "" || dist < bestDist {
				best, bestDist = e.ID, dist
			}
		}
		if best != "" {
			return best, SourceTemplateCenter
		}
	}

	if in.Camera != nil && present[in.Camera.Target] {
		return in.Camera.Target, SourceCameraTarget
	}

	for i := len(in.StateChanges) - 1; i >= 0; i-- {
		sc := in.StateChanges[i]
		if isHighlight(sc.Status) && present[sc.EntityID] {
			return sc.EntityID, SourceHighlight
		}
	}

	if id := in.Diff.NewestAdded(); id != "" && present[id] {
		return id, SourceNewestAdded
	}

	if len(in.Entities) > 0 {
		return in.Entities[0].ID, SourceFirstEntity
	}

	if in.Previous != nil && in.Previous.PrimaryID != "" {
		return in.Previous.PrimaryID, SourcePrevious
	}
	return "", ""
}

func isHighlight(status string) bool {
	switch strings.ToLower(status) {
	case "highlight", "highlighted", "focus", "focused":
		return true
	}
	return false
}

// Transition returns the lead change between prev and cur, or nil when the
// lead is unchanged.
func Transition(prev *HierarchyPlan, cur HierarchyPlan) *HierarchyTransition {
	from := ""
	if prev != nil {
		from = prev.PrimaryID
	}
	if from == cur.PrimaryID {
		return nil
	}
	return &HierarchyTransition{From: from, To: cur.PrimaryID}
}
