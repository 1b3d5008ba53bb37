package layout

import "github.com/gahane31/my-animation-sub000/internal/scene"

// Candidates stay this far inside the canvas edges.
const canvasMargin = 5.0

// candidateOffsets is the fixed ring tried around a colliding target, in
// units of the minimum separation: stay, cardinal, diagonal, then doubled.
var candidateOffsets = [][2]float64{
	{0, 0},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{2, 0}, {-2, 0}, {0, 2}, {0, -2},
	{2, 2}, {-2, 2}, {2, -2}, {-2, -2},
}

// resolveCollision returns the first candidate around target that keeps
// minSep from every placed point. When all candidates collide it returns
// the clamped target and false.
func resolveCollision(target scene.Point, placed []scene.Point, minSep float64) (scene.Point, bool) {
	base := clampMargin(target)
	for _, off := range candidateOffsets {
		c := clampMargin(scene.Point{X: target.X + off[0]*minSep, Y: target.Y + off[1]*minSep})
		if !collides(c, placed, minSep) {
			return c, true
		}
	}
	return base, false
}

func collides(p scene.Point, placed []scene.Point, minSep float64) bool {
	for _, q := range placed {
		if p.Distance(q) < minSep {
			return true
		}
	}
	return false
}

func clampMargin(p scene.Point) scene.Point {
	return scene.Point{
		X: clamp(p.X, scene.CanvasMin+canvasMargin, scene.CanvasMax-canvasMargin),
		Y: clamp(p.Y, scene.CanvasMin+canvasMargin, scene.CanvasMax-canvasMargin),
	}
}
