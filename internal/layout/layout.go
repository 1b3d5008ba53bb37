package layout

import (
	"fmt"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// Safe rectangle inside the canvas where fresh positions are computed.
const (
	SafeLeft   = 12.0
	SafeRight  = 88.0
	SafeTop    = 15.0
	SafeBottom = 85.0
)

// Center is the canonical focus point.
var Center = scene.Point{X: 50, Y: 50}

// MinSeparation is the minimum distance between a newly placed entity and
// any other entity of the same scene.
const MinSeparation = 12.0

// Options carries what the layout needs from earlier scenes.
type Options struct {
	Template Template
	// Anchors maps every previously laid out id to its position.
	Anchors map[string]scene.Point
	// PreviousIDs is the entity set of the immediately preceding scene.
	PreviousIDs map[string]bool
	// PreviousPrimary is the primary id carried over from the preceding scene.
	PreviousPrimary string
	MinSeparation   float64
}

// Result holds final positions plus diagnostics.
type Result struct {
	Template  Template
	Positions map[string]scene.Point
	// Depths is only set for graph templates.
	Depths map[string]int
	// Anchored lists ids that kept their previous position.
	Anchored []string
	// BestEffort lists ids whose collision search was exhausted.
	BestEffort []string
}

// Compute places entities for one scene. Ids found in opts.Anchors keep
// their exact previous position; only new ids receive fresh positions,
// nudged away from collisions.
func Compute(entities []scene.Entity, connections []scene.Connection, opts Options) Result {
	t := opts.Template
	if t == "" {
		t = DefaultTemplate
	}
	minSep := opts.MinSeparation
	if minSep <= 0 {
		minSep = MinSeparation
	}

	res := Result{Template: t}
	var fresh map[string]scene.Point

	switch t {
	case Hero:
		fresh = placeHero(entities)
	case GraphHorizontal, GraphVertical:
		if len(connections) == 0 {
			fresh = placeHero(entities)
			break
		}
		res.Depths = Depths(entities, connections)
		fresh = placeGraph(entities, res.Depths, t == GraphVertical)
	case Split:
		fresh = placeSplit(entities)
	case Radial:
		fresh = placeRadial(entities, opts.PreviousIDs, opts.PreviousPrimary)
	default:
		res.Depths = Depths(entities, connections)
		fresh = placeGraph(entities, res.Depths, false)
	}

	res.Positions, res.Anchored, res.BestEffort = settle(entities, fresh, opts.Anchors, minSep)
	return res
}

// settle applies anchors first, then places new ids primary-first against
// everything already placed.
func settle(entities []scene.Entity, fresh map[string]scene.Point, anchors map[string]scene.Point, minSep float64) (map[string]scene.Point, []string, []string) {
	positions := make(map[string]scene.Point, len(entities))
	var anchored, bestEffort []string

	var placed []scene.Point
	for _, e := range entities {
		if p, ok := anchors[e.ID]; ok {
			positions[e.ID] = p
			anchored = append(anchored, e.ID)
			placed = append(placed, p)
		}
	}

	for _, e := range primaryFirst(entities) {
		if _, ok := positions[e.ID]; ok {
			continue
		}
		p, ok := resolveCollision(fresh[e.ID], placed, minSep)
		if !ok {
			bestEffort = append(bestEffort, e.ID)
		}
		positions[e.ID] = p
		placed = append(placed, p)
	}
	return positions, anchored, bestEffort
}

// Warnings renders best-effort placements as human-readable lines.
func (r Result) Warnings() []string {
	var out []string
	for _, id := range r.BestEffort {
		out = append(out, fmt.Sprintf("placement of %q is best-effort: every candidate offset collides", id))
	}
	return out
}

// primaryFirst returns entities with explicit primaries first, otherwise in
// input order.
func primaryFirst(entities []scene.Entity) []scene.Entity {
	out := make([]scene.Entity, 0, len(entities))
	for _, e := range entities {
		if e.IsPrimary() {
			out = append(out, e)
		}
	}
	for _, e := range entities {
		if !e.IsPrimary() {
			out = append(out, e)
		}
	}
	return out
}

// primaryID is the first explicit primary, or the first entity.
func primaryID(entities []scene.Entity) string {
	for _, e := range entities {
		if e.IsPrimary() {
			return e.ID
		}
	}
	if len(entities) > 0 {
		return entities[0].ID
	}
	return ""
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

func clampSafe(p scene.Point) scene.Point {
	return scene.Point{X: clamp(p.X, SafeLeft, SafeRight), Y: clamp(p.Y, SafeTop, SafeBottom)}
}
