package layout

import (
	"math"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// Endpoints closer than this on the minor axis get a midpoint lane jog.
const laneAlignThreshold = 3.0

const geomEpsilon = 1e-9

// Box is an entity's bounding box size in normalized units.
type Box struct {
	W, H float64
}

// BoxFor sizes an entity from its display name; replica groups are wider.
func BoxFor(e scene.Entity) Box {
	w := clamp(8+0.6*float64(len(e.DisplayName())), 8, 18)
	if e.Replicas() > 1 {
		w += 2
	}
	return Box{W: w, H: 8}
}

// Route is the orthogonal path drawn for one connection.
type Route struct {
	ConnectionID string
	From, To     string
	Points       []scene.Point
}

// Length is the sum of the route's segment lengths.
func (r Route) Length() float64 {
	total := 0.0
	for i := 1; i < len(r.Points); i++ {
		total += r.Points[i-1].Distance(r.Points[i])
	}
	return total
}

// RouteAll routes every connection whose endpoints have positions.
func RouteAll(connections []scene.Connection, positions map[string]scene.Point, boxes map[string]Box) []Route {
	routes := make([]Route, 0, len(connections))
	for _, c := range connections {
		a, okA := positions[c.From]
		b, okB := positions[c.To]
		if !okA || !okB || c.From == c.To {
			continue
		}
		routes = append(routes, Route{
			ConnectionID: c.ID,
			From:         c.From,
			To:           c.To,
			Points:       orthogonal(a, b, boxes[c.From], boxes[c.To]),
		})
	}
	return routes
}

// orthogonal builds an L-shaped path between two boxes, leaving along the
// dominant axis. When the endpoints nearly align on the minor axis the path
// becomes start, lane, lane, end with the lane at the midpoint.
func orthogonal(a, b scene.Point, ba, bb Box) []scene.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	sx, sy := sign(dx), sign(dy)

	if math.Abs(dy) >= math.Abs(dx) {
		start := scene.Point{X: a.X, Y: a.Y + sy*ba.H/2}
		if math.Abs(dx) < laneAlignThreshold {
			end := scene.Point{X: b.X, Y: b.Y - sy*bb.H/2}
			mid := (start.Y + end.Y) / 2
			return []scene.Point{start, {X: a.X, Y: mid}, {X: b.X, Y: mid}, end}
		}
		end := scene.Point{X: b.X - sx*bb.W/2, Y: b.Y}
		return []scene.Point{start, {X: a.X, Y: b.Y}, end}
	}

	start := scene.Point{X: a.X + sx*ba.W/2, Y: a.Y}
	if math.Abs(dy) < laneAlignThreshold {
		end := scene.Point{X: b.X - sx*bb.W/2, Y: b.Y}
		mid := (start.X + end.X) / 2
		return []scene.Point{start, {X: mid, Y: a.Y}, {X: mid, Y: b.Y}, end}
	}
	end := scene.Point{X: b.X, Y: b.Y - sy*bb.H/2}
	return []scene.Point{start, {X: b.X, Y: a.Y}, end}
}

// CountCrossings counts segment intersections between routes that do not
// share an endpoint entity.
func CountCrossings(routes []Route) int {
	n := 0
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			if sharesEndpoint(routes[i], routes[j]) {
				continue
			}
			n += pathCrossings(routes[i].Points, routes[j].Points)
		}
	}
	return n
}

func sharesEndpoint(a, b Route) bool {
	return a.From == b.From || a.From == b.To || a.To == b.From || a.To == b.To
}

func pathCrossings(p, q []scene.Point) int {
	n := 0
	for i := 1; i < len(p); i++ {
		if p[i-1].Distance(p[i]) < geomEpsilon {
			continue
		}
		for j := 1; j < len(q); j++ {
			if q[j-1].Distance(q[j]) < geomEpsilon {
				continue
			}
			if SegmentsIntersect(p[i-1], p[i], q[j-1], q[j]) {
				n++
			}
		}
	}
	return n
}

// SegmentsIntersect is the orientation-sign test with the colinear
// bounding-box special cases.
func SegmentsIntersect(p1, q1, p2, q2 scene.Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// orientation returns 0 for colinear, 1 for clockwise, 2 for counter-clockwise.
func orientation(p, q, r scene.Point) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case math.Abs(v) < geomEpsilon:
		return 0
	case v > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether q lies within the bounding box of p-r.
func onSegment(p, q, r scene.Point) bool {
	return q.X <= math.Max(p.X, r.X)+geomEpsilon && q.X >= math.Min(p.X, r.X)-geomEpsilon &&
		q.Y <= math.Max(p.Y, r.Y)+geomEpsilon && q.Y >= math.Min(p.Y, r.Y)-geomEpsilon
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
