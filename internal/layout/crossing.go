package layout

import (
	"math"
	"sort"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

const (
	CrossingPenalty   = 1000.0
	DriftWeight       = 0.5
	DefaultMaxPasses  = 4
	improvementMargin = 1e-9
)

// OptimizerOptions controls the crossing-minimizing local search.
type OptimizerOptions struct {
	// Fixed ids never move: the lead entity, anchored ids, replica groups.
	Fixed         map[string]bool
	MaxPasses     int
	MinSeparation float64
}

// Optimization is the outcome of OptimizeCrossings.
type Optimization struct {
	Positions        map[string]scene.Point
	InitialCost      float64
	FinalCost        float64
	InitialCrossings int
	FinalCrossings   int
	Passes           int
	Moved            []string
}

// Cost scores a layout: crossings dominate, then total route length, then
// horizontal drift from the initial layout.
func Cost(connections []scene.Connection, positions, initial map[string]scene.Point, boxes map[string]Box) (float64, int) {
	routes := RouteAll(connections, positions, boxes)
	crossings := CountCrossings(routes)

	length := 0.0
	for _, r := range routes {
		length += r.Length()
	}
	drift := 0.0
	for id, p := range positions {
		if q, ok := initial[id]; ok {
			drift += math.Abs(p.X - q.X)
		}
	}
	return float64(crossings)*CrossingPenalty + length + drift*DriftWeight, crossings
}

// OptimizeCrossings relocates movable entities horizontally to the
// candidate x with the lowest total cost, pass after pass, until a pass
// brings no improvement. A move is only kept when it strictly lowers the
// cost, so the result never costs more than the initial layout.
func OptimizeCrossings(entities []scene.Entity, connections []scene.Connection, initial map[string]scene.Point, opts OptimizerOptions) Optimization {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	minSep := opts.MinSeparation
	if minSep <= 0 {
		minSep = MinSeparation
	}

	boxes := make(map[string]Box, len(entities))
	var movable []string
	for _, e := range entities {
		boxes[e.ID] = BoxFor(e)
		if _, ok := initial[e.ID]; !ok {
			continue
		}
		if opts.Fixed[e.ID] || e.Replicas() > 1 {
			continue
		}
		movable = append(movable, e.ID)
	}
	sort.Strings(movable)

	current := make(map[string]scene.Point, len(initial))
	for id, p := range initial {
		current[id] = p
	}

	cost, crossings := Cost(connections, current, initial, boxes)
	out := Optimization{InitialCost: cost, InitialCrossings: crossings}
	moved := make(map[string]bool)

	for pass := 0; pass < maxPasses && len(movable) > 0; pass++ {
		out.Passes++
		improved := false
		for _, id := range movable {
			home := current[id]
			best := home
			for _, x := range candidateXs(boxes[id], initial[id].X) {
				if math.Abs(x-home.X) < geomEpsilon {
					continue
				}
				trial := scene.Point{X: x, Y: home.Y}
				if collides(trial, othersOf(current, id), minSep) {
					continue
				}
				current[id] = trial
				c, n := Cost(connections, current, initial, boxes)
				if c < cost-improvementMargin {
					cost, crossings = c, n
					best = trial
					improved = true
				}
				current[id] = best
			}
			if best != home {
				moved[id] = true
			}
		}
		if !improved {
			break
		}
	}

	for id := range moved {
		out.Moved = append(out.Moved, id)
	}
	sort.Strings(out.Moved)
	out.Positions = current
	out.FinalCost = cost
	out.FinalCrossings = crossings
	return out
}

// candidateXs is the discrete x set for one entity: width-aware left and
// right bounds, the center, the quarter points between them and the
// entity's initial x.
func candidateXs(box Box, initialX float64) []float64 {
	left := SafeLeft + box.W/2
	right := SafeRight - box.W/2
	center := Center.X
	return []float64{
		left,
		(left + center) / 2,
		center,
		(center + right) / 2,
		right,
		initialX,
	}
}

func othersOf(positions map[string]scene.Point, skip string) []scene.Point {
	out := make([]scene.Point, 0, len(positions))
	for id, p := range positions {
		if id != skip {
			out = append(out, p)
		}
	}
	return out
}
