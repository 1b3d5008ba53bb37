package director

import (
	"fmt"
	"math"
	"strings"

	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/layout"
	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// Motion classifies why the camera moves.
type Motion string

const (
	MotionFocusPrimary       Motion = "focus_primary"
	MotionIntroducePrimary   Motion = "introduce_primary"
	MotionExpandArchitecture Motion = "expand_architecture"
	MotionSteady             Motion = "steady"
)

var biasZoom = map[layout.CameraBias]float64{
	layout.BiasStrongFocus: 1.15,
	layout.BiasWide:        0.9,
	layout.BiasFocusNew:    1.1,
}

// CameraPlan is where the camera looks during one scene.
type CameraPlan struct {
	TargetID string      `yaml:"targetId" json:"targetId"`
	Target   scene.Point `yaml:"target" json:"target"`
	Zoom     float64     `yaml:"zoom" json:"zoom"`
	Duration float64     `yaml:"duration" json:"duration"`
	Easing   string      `yaml:"easing" json:"easing"`
	Motion   Motion      `yaml:"motion" json:"motion"`
}

type CameraInput struct {
	Entities  []scene.Entity
	Positions map[string]scene.Point
	Template  layout.Template
	Intent    *scene.Camera
	Diff      diff.Diff
	Hierarchy HierarchyPlan
	Previous  *CameraPlan
	Hook      bool
}

// PlanCamera resolves target, zoom and motion for one scene. Warnings
// describe recovered problems such as a missing intent target.
func (d *Director) PlanCamera(in CameraInput) (CameraPlan, []string) {
	var warnings []string

	present := make(map[string]bool, len(in.Entities))
	for _, e := range in.Entities {
		present[e.ID] = true
	}

	bias := in.Template.CameraBias()
	if in.Intent != nil {
		switch strings.ToLower(in.Intent.Mode) {
		case "wide", "overview":
			bias = layout.BiasWide
		case "focus", "close":
			bias = layout.BiasStrongFocus
		}
	}

	target := ""
	if in.Intent != nil && in.Intent.Target != "" {
		if present[in.Intent.Target] {
			target = in.Intent.Target
		} else {
			warnings = append(warnings, fmt.Sprintf("camera target %q not found, falling back to primary", in.Intent.Target))
		}
	}
	if target == "" && bias == layout.BiasFocusNew {
		if id := in.Diff.NewestAdded(); present[id] {
			target = id
		}
	}
	if target == "" && present[in.Hierarchy.PrimaryID] {
		target = in.Hierarchy.PrimaryID
	}
	if target == "" && len(in.Entities) > 0 {
		target = in.Entities[0].ID
	}

	zoom := baseZoom(len(in.Entities))
	if m, ok := biasZoom[bias]; ok {
		zoom *= m
	}

	// fixed is a zoom that neither the authored intent nor the personality
	// may change.
	fixed := 0.0
	var motion Motion
	switch {
	case target != "" && target == in.Hierarchy.PrimaryID && in.Diff.Has(diff.EntityAdded, target):
		fixed = d.IntroduceZoom
		motion = MotionIntroducePrimary
	case grew(in.Diff):
		zoom = math.Min(zoom*0.9, 1.0)
		motion = MotionExpandArchitecture
	case in.Previous == nil || in.Previous.TargetID != target:
		motion = MotionFocusPrimary
	default:
		motion = MotionSteady
	}

	if in.Intent != nil && in.Intent.Zoom > 0 {
		zoom = in.Intent.Zoom
	}
	zoom *= d.Personality.Zoom

	duration := d.BaseDuration
	if in.Hook {
		fixed = d.HookZoom
		duration *= d.HookDurationFactor
	}
	if fixed > 0 {
		zoom = fixed
	}
	zoom = d.clampZoom(zoom)

	plan := CameraPlan{
		TargetID: target,
		Target:   layout.Center,
		Zoom:     round3(zoom),
		Duration: round3(duration),
		Easing:   d.Personality.CameraEasing,
		Motion:   motion,
	}
	if p, ok := in.Positions[target]; ok {
		plan.Target = p
	}
	return plan, warnings
}

// grew reports a net entity-count increase or any repositioning.
func grew(d diff.Diff) bool {
	if len(d.IDsOf(diff.EntityMoved)) > 0 {
		return true
	}
	return len(d.IDsOf(diff.EntityAdded)) > len(d.IDsOf(diff.EntityRemoved))
}

// DetectCameraChange is false iff the target is unchanged and the zoom moved
// by no more than the threshold.
func DetectCameraChange(prev *CameraPlan, cur CameraPlan) bool {
	return detectChange(prev, cur, 0.05)
}

// Changed is DetectCameraChange with the director's own threshold.
func (d *Director) Changed(prev *CameraPlan, cur CameraPlan) bool {
	return detectChange(prev, cur, d.ChangeThreshold)
}

func detectChange(prev *CameraPlan, cur CameraPlan, threshold float64) bool {
	if prev == nil {
		return true
	}
	if prev.TargetID != cur.TargetID {
		return true
	}
	return math.Abs(prev.Zoom-cur.Zoom) > threshold
}
