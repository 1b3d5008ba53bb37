package effects

import (
	"math"

	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// pulseDuration is the length of a one-shot change pulse.
const pulseDuration = 0.4

// MotionEffect maps timing records onto entrance, exit and move.
type MotionEffect struct{}

func (e *MotionEffect) Apply(el *Element, cue Cue) {
	for _, rec := range cue.Timing.Entities {
		if rec.EntityID != el.ID {
			continue
		}
		switch rec.Action {
		case timing.ActionAdd:
			kind := "fade_in"
			if rec.IsPrimary {
				kind = "scale_in"
			}
			el.Enter = &Motion{Kind: kind, Delay: rec.Delay, Duration: rec.Duration, Easing: rec.Easing, Scale: rec.Scale}
		case timing.ActionRemove:
			el.Exit = &Motion{Kind: "fade_out", Delay: rec.Delay, Duration: rec.Duration, Easing: rec.Easing}
		case timing.ActionMove:
			el.Effects = append(el.Effects, Effect{Kind: "move", Delay: rec.Delay, Duration: rec.Duration})
		}
	}
}

// EmphasisEffect copies the hierarchy style onto the element and adds a
// glow for the lead entity.
type EmphasisEffect struct{}

func (e *EmphasisEffect) Apply(el *Element, cue Cue) {
	style, ok := cue.Hierarchy.Styles[el.ID]
	if !ok {
		return
	}
	el.Emphasis = style
	if !style.Glow || el.Exit != nil {
		return
	}
	start := 0.0
	if el.Enter != nil {
		start = el.Enter.Delay + el.Enter.Duration
	}
	if start < cue.SceneDuration {
		el.Effects = append(el.Effects, Effect{Kind: "glow", Delay: round3(start), Duration: round3(cue.SceneDuration - start)})
	}
}

// ChangeEffect pulses elements whose count, status or importance changed.
type ChangeEffect struct{}

func (e *ChangeEffect) Apply(el *Element, cue Cue) {
	at := round3(math.Min(timing.EnterWindow.Start*cue.SceneDuration, cue.SceneDuration))
	length := round3(math.Min(pulseDuration, cue.SceneDuration-at))
	for _, c := range cue.Diff.Entities {
		if c.ID != el.ID {
			continue
		}
		switch c.Kind {
		case diff.EntityCountChanged:
			el.Effects = append(el.Effects, Effect{Kind: "count_change", Delay: at, Duration: length, Value: countChange(c)})
		case diff.EntityStatusChanged:
			if c.After != nil {
				el.Effects = append(el.Effects, Effect{Kind: "status", Delay: at, Duration: length, Value: c.After.Status})
			}
		case diff.EntityImportanceChanged:
			kind := "demote"
			if c.After != nil && c.After.IsPrimary() {
				kind = "promote"
			}
			el.Effects = append(el.Effects, Effect{Kind: kind, Delay: at, Duration: length})
		}
	}
}

// FlowEffect animates traffic along interactions that start at the element.
type FlowEffect struct{}

func (e *FlowEffect) Apply(el *Element, cue Cue) {
	if el.Exit != nil {
		return
	}
	start := timing.ConnectWindow.Start * cue.SceneDuration
	for _, in := range cue.Interactions {
		if in.From != el.ID {
			continue
		}
		value := in.Pattern
		if in.Intensity != "" {
			value += ":" + in.Intensity
		}
		el.Effects = append(el.Effects, Effect{
			Kind:     "flow",
			Delay:    round3(start),
			Duration: round3(cue.SceneDuration - start),
			Value:    value,
			Target:   in.To,
		})
	}
}
