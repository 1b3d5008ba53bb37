package renderer

import (
	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// CameraState represents the camera position and zoom at a specific moment
type CameraState struct {
	X    float64 `json:"x"`    // Look-at X in canvas units
	Y    float64 `json:"y"`    // Look-at Y in canvas units
	Zoom float64 `json:"zoom"` // Zoom level (1.0 = whole canvas)
}

// InterpolateKeyframes calculates camera state at a given time by interpolating between keyframes.
// Each segment uses the easing of the keyframe it moves towards.
func InterpolateKeyframes(keyframes director.Track, currentTime float64) CameraState {
	if len(keyframes) == 0 {
		return CameraState{X: 50, Y: 50, Zoom: 1.0}
	}

	// If before first keyframe, use first keyframe
	if currentTime <= keyframes[0].Time {
		return stateOf(keyframes[0])
	}

	// If after last keyframe, use last keyframe
	if currentTime >= keyframes[len(keyframes)-1].Time {
		return stateOf(keyframes[len(keyframes)-1])
	}

	// Find surrounding keyframes
	var prevKf, nextKf director.Keyframe
	for i := 0; i < len(keyframes)-1; i++ {
		if currentTime >= keyframes[i].Time && currentTime < keyframes[i+1].Time {
			prevKf = keyframes[i]
			nextKf = keyframes[i+1]
			break
		}
	}

	// Calculate interpolation factor (0.0 to 1.0)
	timeDelta := nextKf.Time - prevKf.Time
	if timeDelta == 0 {
		timeDelta = 0.001 // Avoid division by zero
	}
	easing := nextKf.Easing
	if easing == "" {
		easing = timing.DefaultEasing
	}
	t := timing.Progress(easing, (currentTime-prevKf.Time)/timeDelta)

	return CameraState{
		X:    lerp(prevKf.Position.X, nextKf.Position.X, t),
		Y:    lerp(prevKf.Position.Y, nextKf.Position.Y, t),
		Zoom: lerp(prevKf.Zoom, nextKf.Zoom, t),
	}
}

func stateOf(kf director.Keyframe) CameraState {
	return CameraState{X: kf.Position.X, Y: kf.Position.Y, Zoom: kf.Zoom}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
