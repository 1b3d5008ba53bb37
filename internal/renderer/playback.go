package renderer

import (
	"github.com/tanema/gween"

	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// DefaultStep is the playback tick used when none is given (30 fps).
const DefaultStep = 1.0 / 30

type EventKind string

const (
	EventStart    EventKind = "start"
	EventProgress EventKind = "progress"
	EventFinish   EventKind = "finish"
)

// Task is one scheduled motion of a scene.
type Task struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"` // entity, connection or camera
	Action   timing.Action `json:"action"`
	Delay    float64       `json:"delay"`
	Duration float64       `json:"duration"`
	Easing   string        `json:"easing"`
}

// Event reports a task transition at scene-relative Time.
type Event struct {
	Kind     EventKind `json:"kind"`
	Task     Task      `json:"task"`
	Progress float64   `json:"progress"`
	Time     float64   `json:"time"`
}

// Playback is a discrete-event simulation of one scene's timing plan. Tasks
// wait for their delay, then run their eased tween for their duration. No
// task waits for another.
type Playback struct {
	tasks    []Task
	tweens   []*gween.Tween
	started  []bool
	finished []bool
	clock    float64
	end      float64
}

// NewPlayback turns a plan into tasks: entities, then connections, then the
// camera.
func NewPlayback(plan timing.Plan) *Playback {
	var tasks []Task
	for _, e := range plan.Entities {
		tasks = append(tasks, Task{ID: e.EntityID, Kind: "entity", Action: e.Action, Delay: e.Delay, Duration: e.Duration, Easing: e.Easing})
	}
	for _, c := range plan.Connections {
		tasks = append(tasks, Task{ID: c.ConnectionID, Kind: "connection", Action: c.Action, Delay: c.Delay, Duration: c.Duration, Easing: c.Easing})
	}
	if c := plan.Camera; c != nil {
		tasks = append(tasks, Task{ID: "camera", Kind: "camera", Action: timing.ActionCamera, Delay: c.Delay, Duration: c.Duration, Easing: c.Easing})
	}

	p := &Playback{
		tasks:    tasks,
		tweens:   make([]*gween.Tween, len(tasks)),
		started:  make([]bool, len(tasks)),
		finished: make([]bool, len(tasks)),
		end:      plan.End(),
	}
	for i, t := range tasks {
		p.tweens[i] = gween.New(0, 1, float32(t.Duration), timing.Ease(t.Easing))
	}
	return p
}

// Clock is the scene-relative time already simulated.
func (p *Playback) Clock() float64 { return p.clock }

// End is when the last task finishes.
func (p *Playback) End() float64 { return p.end }

func (p *Playback) Done() bool {
	for _, f := range p.finished {
		if !f {
			return false
		}
	}
	return true
}

// Step advances the clock by dt and returns the events that happened in
// (clock, clock+dt].
func (p *Playback) Step(dt float64) []Event {
	next := p.clock + dt
	var events []Event
	for i, task := range p.tasks {
		if p.finished[i] {
			continue
		}
		elapsed := dt
		if !p.started[i] {
			if next < task.Delay {
				continue
			}
			p.started[i] = true
			events = append(events, Event{Kind: EventStart, Task: task, Time: task.Delay})
			elapsed = next - task.Delay
		}
		if task.Duration <= 0 {
			p.finished[i] = true
			events = append(events, Event{Kind: EventFinish, Task: task, Progress: 1, Time: task.Delay})
			continue
		}
		val, done := p.tweens[i].Update(float32(elapsed))
		if done {
			p.finished[i] = true
			events = append(events, Event{Kind: EventFinish, Task: task, Progress: 1, Time: task.Delay + task.Duration})
			continue
		}
		events = append(events, Event{Kind: EventProgress, Task: task, Progress: float64(val), Time: next})
	}
	p.clock = next
	return events
}

// Run steps until every task has finished and returns all events.
func (p *Playback) Run(step float64) []Event {
	if step <= 0 {
		step = DefaultStep
	}
	var events []Event
	for !p.Done() {
		events = append(events, p.Step(step)...)
	}
	return events
}
