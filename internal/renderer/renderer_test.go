package renderer

import (
	"math"
	"testing"

	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/scene"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

func TestInterpolateKeyframes(t *testing.T) {
	keyframes := director.Track{
		{Time: 0.0, Position: scene.Point{X: 50, Y: 50}, Zoom: 1.0},
		{Time: 2.0, Position: scene.Point{X: 30, Y: 40}, Zoom: 1.5},
		{Time: 4.0, Position: scene.Point{X: 70, Y: 60}, Zoom: 2.0, Easing: "linear"},
	}

	tests := []struct {
		time         float64
		expectedZoom float64
	}{
		{0.0, 1.0},  // First keyframe
		{1.0, 1.25}, // Midpoint between first and second (approximately)
		{2.0, 1.5},  // Second keyframe
		{3.0, 1.75}, // Linear segment, exact
		{4.0, 2.0},  // Third keyframe
		{5.0, 2.0},  // After last keyframe
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			state := InterpolateKeyframes(keyframes, tt.time)

			// Allow some tolerance due to easing
			tolerance := 0.3
			if math.Abs(state.Zoom-tt.expectedZoom) > tolerance {
				t.Errorf("At time %.1f: expected zoom ~%.2f, got %.2f", tt.time, tt.expectedZoom, state.Zoom)
			}
		})
	}

	if s := InterpolateKeyframes(keyframes, 3.0); math.Abs(s.X-50) > 1e-4 || math.Abs(s.Zoom-1.75) > 1e-4 {
		t.Errorf("linear midpoint = %+v", s)
	}
	if s := InterpolateKeyframes(nil, 1); s.Zoom != 1 {
		t.Errorf("empty track = %+v", s)
	}
}

func testPlan() timing.Plan {
	return timing.Plan{
		Entities: []timing.EntityTiming{
			{EntityID: "old", Action: timing.ActionRemove, Delay: 0, Duration: 0.5, Easing: "linear"},
			{EntityID: "new", Action: timing.ActionAdd, Delay: 0.6, Duration: 0.9, Easing: "easeOutQuad"},
		},
		Connections: []timing.ConnectionTiming{
			{ConnectionID: "c1", Action: timing.ActionAdd, Delay: 1.2, Duration: 0.4, Easing: "easeInOutCubic"},
		},
		Camera: &timing.CameraTiming{TargetID: "new", Zoom: 1.4, Delay: 1.0, Duration: 1.0, Easing: "easeInOutSine"},
	}
}

func TestPlaybackRun(t *testing.T) {
	plan := testPlan()
	p := NewPlayback(plan)
	events := p.Run(0.05)

	if !p.Done() {
		t.Fatal("playback should be done")
	}
	if math.Abs(p.End()-plan.End()) > 1e-9 {
		t.Errorf("End = %.3f, want %.3f", p.End(), plan.End())
	}

	starts := map[string]Event{}
	finishes := map[string]Event{}
	last := map[string]float64{}
	for _, ev := range events {
		switch ev.Kind {
		case EventStart:
			if _, dup := starts[ev.Task.ID]; dup {
				t.Errorf("%s started twice", ev.Task.ID)
			}
			starts[ev.Task.ID] = ev
		case EventFinish:
			finishes[ev.Task.ID] = ev
		case EventProgress:
			if ev.Progress < last[ev.Task.ID]-1e-6 {
				t.Errorf("%s progress went back from %.3f to %.3f", ev.Task.ID, last[ev.Task.ID], ev.Progress)
			}
			if ev.Progress < 0 || ev.Progress > 1 {
				t.Errorf("%s progress %.3f outside [0,1]", ev.Task.ID, ev.Progress)
			}
			if ev.Time < ev.Task.Delay {
				t.Errorf("%s progressed at %.3f before its delay %.3f", ev.Task.ID, ev.Time, ev.Task.Delay)
			}
			last[ev.Task.ID] = ev.Progress
		}
	}

	for _, id := range []string{"old", "new", "c1", "camera"} {
		s, ok := starts[id]
		if !ok {
			t.Errorf("%s never started", id)
			continue
		}
		f, ok := finishes[id]
		if !ok {
			t.Errorf("%s never finished", id)
			continue
		}
		if math.Abs(f.Time-(s.Task.Delay+s.Task.Duration)) > 1e-9 {
			t.Errorf("%s finished at %.3f, want %.3f", id, f.Time, s.Task.Delay+s.Task.Duration)
		}
	}
}

func TestPlaybackStepWaitsForDelay(t *testing.T) {
	p := NewPlayback(testPlan())

	for _, ev := range p.Step(0.55) {
		if ev.Task.ID != "old" {
			t.Errorf("%s should not run before its delay, got %+v", ev.Task.ID, ev)
		}
	}
	events := p.Step(0.1)
	var sawStart bool
	for _, ev := range events {
		if ev.Task.ID == "new" && ev.Kind == EventStart {
			sawStart = true
			if ev.Time != 0.6 {
				t.Errorf("start time = %.3f, want 0.6", ev.Time)
			}
		}
	}
	if !sawStart {
		t.Errorf("new should start within (0.55, 0.65], events %+v", events)
	}
	if math.Abs(p.Clock()-0.65) > 1e-9 {
		t.Errorf("Clock = %.3f", p.Clock())
	}
}
