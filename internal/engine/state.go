package engine

import (
	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// State is what one scene hands to the next. Step never mutates the State
// it receives; it returns a fresh one built from the finished scene.
type State struct {
	// Index is the position of the next scene in the sequence.
	Index int
	// Anchors maps every id ever laid out to its last position.
	Anchors map[string]scene.Point
	// Seen holds every id that appeared in any earlier scene.
	Seen        map[string]bool
	Hierarchy   *director.HierarchyPlan
	Camera      *director.CameraPlan
	Previous    scene.Snapshot
	PreviousIDs map[string]bool
	// CameraRepeats counts consecutive scenes sharing the current camera.
	CameraRepeats int
}

// NewState is the empty state of a sequence start.
func NewState() State {
	return State{
		Anchors:     map[string]scene.Point{},
		Seen:        map[string]bool{},
		PreviousIDs: map[string]bool{},
	}
}

// PreviousPrimary is the carried lead id, or "".
func (s State) PreviousPrimary() string {
	if s.Hierarchy == nil {
		return ""
	}
	return s.Hierarchy.PrimaryID
}

// advance builds the state that follows a finished scene.
func (s State) advance(snap scene.Snapshot, positions map[string]scene.Point, hier director.HierarchyPlan, cam director.CameraPlan, repeats int) State {
	next := State{
		Index:         s.Index + 1,
		Anchors:       make(map[string]scene.Point, len(s.Anchors)+len(positions)),
		Seen:          make(map[string]bool, len(s.Seen)+len(snap.Entities)),
		Hierarchy:     &hier,
		Camera:        &cam,
		Previous:      snap,
		PreviousIDs:   snap.IDs(),
		CameraRepeats: repeats,
	}
	for id, p := range s.Anchors {
		next.Anchors[id] = p
	}
	for id, p := range positions {
		next.Anchors[id] = p
	}
	for id := range s.Seen {
		next.Seen[id] = true
	}
	for _, e := range snap.Entities {
		next.Seen[e.ID] = true
	}
	return next
}
