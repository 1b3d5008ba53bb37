package director

import "github.com/gahane31/my-animation-sub000/internal/scene"

// FullView is the focus label of the opening overview keyframe.
const FullView = "full_view"

// Keyframe represents a camera position at a specific time
type Keyframe struct {
	Time     float64     `yaml:"time" json:"time"`         // Absolute time in seconds
	Focus    string      `yaml:"focus" json:"focus"`       // Target entity id or FullView
	Position scene.Point `yaml:"position" json:"position"` // Look-at point in canvas units
	Zoom     float64     `yaml:"zoom" json:"zoom"`         // Zoom level (1.0 = whole canvas)
	Easing   string      `yaml:"easing,omitempty" json:"easing,omitempty"`
}

// Track is the camera path across the whole timeline, ordered by time.
type Track []Keyframe

// NewTrack starts a track with the full canvas in view.
func NewTrack() Track {
	return Track{{
		Time:     0,
		Focus:    FullView,
		Position: scene.Point{X: (scene.CanvasMin + scene.CanvasMax) / 2, Y: (scene.CanvasMin + scene.CanvasMax) / 2},
		Zoom:     1.0,
	}}
}

// Add appends a keyframe for plan at the given absolute time. Keyframes
// that would go back in time are moved up to the last one.
func (t Track) Add(at float64, plan CameraPlan) Track {
	if n := len(t); n > 0 && at < t[n-1].Time {
		at = t[n-1].Time
	}
	return append(t, Keyframe{
		Time:     round3(at),
		Focus:    plan.TargetID,
		Position: plan.Target,
		Zoom:     plan.Zoom,
		Easing:   plan.Easing,
	})
}
