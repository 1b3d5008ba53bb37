package layout

import (
	"testing"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

func TestSegmentsIntersect(t *testing.T) {
	p := func(x, y float64) scene.Point { return scene.Point{X: x, Y: y} }
	tests := []struct {
		name           string
		a1, a2, b1, b2 scene.Point
		want           bool
	}{
		{"cross", p(0, 0), p(10, 10), p(0, 10), p(10, 0), true},
		{"parallel", p(0, 0), p(10, 0), p(0, 5), p(10, 5), false},
		{"colinear overlap", p(0, 0), p(10, 0), p(5, 0), p(15, 0), true},
		{"colinear disjoint", p(0, 0), p(4, 0), p(5, 0), p(9, 0), false},
		{"touching end", p(0, 0), p(5, 5), p(5, 5), p(10, 0), true},
		{"apart", p(0, 0), p(1, 1), p(5, 5), p(6, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountCrossingsSkipsSharedEndpoints(t *testing.T) {
	routes := []Route{
		{ConnectionID: "1", From: "a", To: "b", Points: []scene.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}},
		{ConnectionID: "2", From: "a", To: "c", Points: []scene.Point{{X: 0, Y: 10}, {X: 10, Y: 0}}},
	}
	if n := CountCrossings(routes); n != 0 {
		t.Errorf("routes sharing entity a counted %d crossings", n)
	}
	routes[1].From = "d"
	if n := CountCrossings(routes); n != 1 {
		t.Errorf("CountCrossings = %d, want 1", n)
	}
}

func TestOrthogonalRouting(t *testing.T) {
	box := Box{W: 10, H: 8}

	vertical := orthogonal(scene.Point{X: 20, Y: 20}, scene.Point{X: 40, Y: 80}, box, box)
	if len(vertical) != 3 || vertical[0] != (scene.Point{X: 20, Y: 24}) || vertical[2] != (scene.Point{X: 35, Y: 80}) {
		t.Errorf("vertical-dominant L route = %v", vertical)
	}

	lane := orthogonal(scene.Point{X: 20, Y: 50}, scene.Point{X: 80, Y: 51}, box, box)
	if len(lane) != 4 {
		t.Fatalf("nearly aligned route should have a lane jog, got %v", lane)
	}
	if lane[1].X != lane[2].X || lane[1].X != 50 {
		t.Errorf("lane should sit at the midpoint x=50, got %v", lane)
	}
}

func TestOptimizeCrossingsRemovesCrossing(t *testing.T) {
	ents := []scene.Entity{{ID: "P"}, {ID: "Q"}, {ID: "N"}, {ID: "M"}}
	conns := []scene.Connection{
		{ID: "pq", From: "P", To: "Q"},
		{ID: "mn", From: "M", To: "N"},
	}
	initial := map[string]scene.Point{
		"P": {X: 50, Y: 20},
		"Q": {X: 50, Y: 80},
		"N": {X: 70, Y: 50},
		"M": {X: 30, Y: 50},
	}

	opt := OptimizeCrossings(ents, conns, initial, OptimizerOptions{
		Fixed: map[string]bool{"P": true, "Q": true, "N": true},
	})

	if opt.InitialCrossings == 0 {
		t.Fatal("fixture should start with a crossing")
	}
	if opt.FinalCrossings != 0 {
		t.Errorf("FinalCrossings = %d, want 0", opt.FinalCrossings)
	}
	if opt.FinalCost >= opt.InitialCost {
		t.Errorf("FinalCost %.2f should be below InitialCost %.2f", opt.FinalCost, opt.InitialCost)
	}
	if len(opt.Moved) != 1 || opt.Moved[0] != "M" {
		t.Errorf("Moved = %v, want [M]", opt.Moved)
	}
	for _, id := range []string{"P", "Q", "N"} {
		if opt.Positions[id] != initial[id] {
			t.Errorf("fixed %s moved to %v", id, opt.Positions[id])
		}
	}
	if opt.Positions["M"].Y != initial["M"].Y {
		t.Errorf("optimizer must only move along x, got %v", opt.Positions["M"])
	}
}

func TestOptimizeCrossingsNeverWorse(t *testing.T) {
	fixtures := []struct {
		name    string
		ents    []scene.Entity
		conns   []scene.Connection
		initial map[string]scene.Point
		fixed   map[string]bool
	}{
		{
			name:    "no connections",
			ents:    entities("a", "b"),
			initial: map[string]scene.Point{"a": {X: 30, Y: 50}, "b": {X: 70, Y: 50}},
		},
		{
			name:    "everything fixed",
			ents:    entities("a", "b", "c", "d"),
			conns:   []scene.Connection{{ID: "1", From: "a", To: "c"}, {ID: "2", From: "b", To: "d"}},
			initial: map[string]scene.Point{"a": {X: 20, Y: 30}, "b": {X: 20, Y: 70}, "c": {X: 80, Y: 70}, "d": {X: 80, Y: 30}},
			fixed:   map[string]bool{"a": true, "b": true, "c": true, "d": true},
		},
		{
			name:  "replica group stays",
			ents:  []scene.Entity{{ID: "a"}, {ID: "b", Count: 3}, {ID: "c"}, {ID: "d"}},
			conns: []scene.Connection{{ID: "1", From: "a", To: "c"}, {ID: "2", From: "b", To: "d"}},
			initial: map[string]scene.Point{
				"a": {X: 20, Y: 30}, "b": {X: 20, Y: 70}, "c": {X: 80, Y: 70}, "d": {X: 80, Y: 30},
			},
		},
		{
			name:  "layered graph",
			ents:  entities("gw", "auth", "orders", "db", "queue"),
			conns: []scene.Connection{{ID: "1", From: "gw", To: "auth"}, {ID: "2", From: "gw", To: "orders"}, {ID: "3", From: "auth", To: "db"}, {ID: "4", From: "orders", To: "queue"}, {ID: "5", From: "queue", To: "db"}},
		},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			initial := f.initial
			if initial == nil {
				initial = Compute(f.ents, f.conns, Options{Template: GraphHorizontal}).Positions
			}
			opt := OptimizeCrossings(f.ents, f.conns, initial, OptimizerOptions{Fixed: f.fixed})
			if opt.FinalCost > opt.InitialCost {
				t.Errorf("FinalCost %.3f > InitialCost %.3f", opt.FinalCost, opt.InitialCost)
			}
			if f.fixed != nil && len(opt.Moved) != 0 {
				t.Errorf("fixed fixture moved %v", opt.Moved)
			}
			if f.name == "replica group stays" && opt.Positions["b"] != initial["b"] {
				t.Errorf("replica group moved to %v", opt.Positions["b"])
			}
			t.Logf("%s: cost %.1f -> %.1f in %d passes", f.name, opt.InitialCost, opt.FinalCost, opt.Passes)
		})
	}
}
