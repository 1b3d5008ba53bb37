package layout

import (
	"math"
	"sort"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

const (
	heroColumnOffset = 26.0
	heroRowStep      = 22.0

	splitLeftX      = 30.0
	splitRightX     = 70.0
	splitMaxSpacing = 22.0

	layerMaxSpacing = 25.0

	radialInnerRadius = 22.0
	radialOuterRadius = 38.0
	radialInnerPhase  = -90.0
	radialOuterPhase  = -60.0
)

// placeHero fixes the primary at the center and alternates the rest left
// and right, stepping rows outward (0, up, down, further up, ...).
func placeHero(entities []scene.Entity) map[string]scene.Point {
	out := make(map[string]scene.Point, len(entities))
	primary := primaryID(entities)
	out[primary] = Center

	i := 0
	for _, e := range entities {
		if e.ID == primary {
			continue
		}
		side := -1.0
		if i%2 == 1 {
			side = 1.0
		}
		row := i / 2
		k := (row + 1) / 2
		dy := float64(k) * heroRowStep
		if row%2 == 1 {
			dy = -dy
		}
		dx := heroColumnOffset + float64(row/3)*8
		out[e.ID] = clampSafe(scene.Point{X: Center.X + side*dx, Y: Center.Y + dy})
		i++
	}
	return out
}

// placeGraph spaces layers evenly along the main axis and the members of a
// layer (primary first, then by id) along the cross axis.
func placeGraph(entities []scene.Entity, depths map[string]int, vertical bool) map[string]scene.Point {
	maxDepth := 0
	for _, d := range depths {
		if d > maxDepth {
			maxDepth = d
		}
	}

	layers := make([][]scene.Entity, maxDepth+1)
	for _, e := range entities {
		layers[depths[e.ID]] = append(layers[depths[e.ID]], e)
	}

	mainLo, mainHi := SafeLeft, SafeRight
	crossLo, crossHi := SafeTop, SafeBottom
	if vertical {
		mainLo, mainHi = SafeTop, SafeBottom
		crossLo, crossHi = SafeLeft, SafeRight
	}

	out := make(map[string]scene.Point, len(entities))
	for d, layer := range layers {
		sort.SliceStable(layer, func(i, j int) bool {
			if layer[i].IsPrimary() != layer[j].IsPrimary() {
				return layer[i].IsPrimary()
			}
			return layer[i].ID < layer[j].ID
		})

		main := spread(d, len(layers), mainLo, mainHi, math.Inf(1))
		for k, e := range layer {
			cross := spread(k, len(layer), crossLo, crossHi, layerMaxSpacing)
			if vertical {
				out[e.ID] = scene.Point{X: cross, Y: main}
			} else {
				out[e.ID] = scene.Point{X: main, Y: cross}
			}
		}
	}
	return out
}

// spread returns the i-th of n evenly spaced coordinates centered in
// [lo, hi], with at most maxStep between neighbours.
func spread(i, n int, lo, hi, maxStep float64) float64 {
	mid := (lo + hi) / 2
	if n <= 1 {
		return mid
	}
	step := math.Min((hi-lo)/float64(n-1), maxStep)
	start := mid - step*float64(n-1)/2
	return start + step*float64(i)
}

// placeSplit alternates entities between a left and a right column.
func placeSplit(entities []scene.Entity) map[string]scene.Point {
	ordered := primaryFirst(entities)
	rows := (len(ordered) + 1) / 2

	out := make(map[string]scene.Point, len(ordered))
	for i, e := range ordered {
		x := splitLeftX
		if i%2 == 1 {
			x = splitRightX
		}
		y := spread(i/2, rows, SafeTop, SafeBottom, splitMaxSpacing)
		out[e.ID] = scene.Point{X: x, Y: y}
	}
	return out
}

// placeRadial keeps the carried-over primary at the center, puts brand-new
// ids on an inner ring and already-seen ids on an outer ring.
func placeRadial(entities []scene.Entity, previousIDs map[string]bool, previousPrimary string) map[string]scene.Point {
	center := ""
	for _, e := range entities {
		if e.ID == previousPrimary {
			center = e.ID
			break
		}
	}
	if center == "" {
		center = primaryID(entities)
	}

	var fresh, seen []string
	for _, e := range entities {
		if e.ID == center {
			continue
		}
		if previousIDs[e.ID] {
			seen = append(seen, e.ID)
		} else {
			fresh = append(fresh, e.ID)
		}
	}

	out := make(map[string]scene.Point, len(entities))
	out[center] = Center
	ring(out, fresh, radialInnerRadius, radialInnerPhase)
	ring(out, seen, radialOuterRadius, radialOuterPhase)
	return out
}

func ring(out map[string]scene.Point, ids []string, radius, phaseDeg float64) {
	if len(ids) == 0 {
		return
	}
	step := 2 * math.Pi / float64(len(ids))
	phase := phaseDeg * math.Pi / 180
	for i, id := range ids {
		a := phase + step*float64(i)
		out[id] = scene.Point{
			X: Center.X + radius*math.Cos(a),
			Y: Center.Y + radius*math.Sin(a),
		}.Clamp()
	}
}
