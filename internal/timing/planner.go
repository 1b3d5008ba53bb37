package timing

import (
	"fmt"
	"math"

	"github.com/gahane31/my-animation-sub000/internal/diff"
)

// Action names the kind of motion a timing record describes.
type Action string

const (
	ActionRemove  Action = "remove"
	ActionMove    Action = "move"
	ActionAdd     Action = "add"
	ActionConnect Action = "connect"
	ActionCamera  Action = "camera"
)

// Bounds is an inclusive duration range in seconds.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

var DurationBounds = map[Action]Bounds{
	ActionRemove:  {0.2, 1.2},
	ActionMove:    {0.3, 1.6},
	ActionAdd:     {0.3, 1.5},
	ActionConnect: {0.2, 1.2},
	ActionCamera:  {0.4, 2.5},
}

// Window is a phase expressed as fractions of the scene duration.
type Window struct {
	Start, End float64
}

func (w Window) width() float64 { return w.End - w.Start }

var (
	ExitWindow    = Window{0, 0.2}
	MoveWindow    = Window{0.1, 0.4}
	EnterWindow   = Window{0.3, 0.6}
	ConnectWindow = Window{0.5, 0.8}
	CameraWindow  = Window{0.6, 1.0}
)

const (
	BaseStagger       = 0.12
	PrimaryExtraDelay = 0.15
	// Fractions of a removal or move that must elapse before additions start.
	RemoveClearFraction = 0.75
	MoveClearFraction   = 0.55
	// Fraction of an endpoint's entrance that must elapse before its
	// connection starts drawing.
	LandingFraction     = 0.6
	IntroLeadFraction   = 0.05
	IntroLeadMax        = 0.15
	FastReelCameraStart = 0.35
	HookSpeed           = 1.25
	HookStagger         = 0.6
	HookScaleBoost      = 1.2
)

// EntityTiming schedules one entity motion relative to the scene start.
type EntityTiming struct {
	EntityID  string  `yaml:"entityId" json:"entityId"`
	Action    Action  `yaml:"action" json:"action"`
	Delay     float64 `yaml:"delay" json:"delay"`
	Duration  float64 `yaml:"duration" json:"duration"`
	Easing    string  `yaml:"easing" json:"easing"`
	Scale     float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
	IsPrimary bool    `yaml:"isPrimary" json:"isPrimary"`
}

type ConnectionTiming struct {
	ConnectionID string  `yaml:"connectionId" json:"connectionId"`
	Action       Action  `yaml:"action" json:"action"`
	Delay        float64 `yaml:"delay" json:"delay"`
	Duration     float64 `yaml:"duration" json:"duration"`
	Easing       string  `yaml:"easing" json:"easing"`
}

type CameraTiming struct {
	TargetID string  `yaml:"targetId,omitempty" json:"targetId,omitempty"`
	Zoom     float64 `yaml:"zoom" json:"zoom"`
	Delay    float64 `yaml:"delay" json:"delay"`
	Duration float64 `yaml:"duration" json:"duration"`
	Easing   string  `yaml:"easing" json:"easing"`
}

// Plan is the timing of one scene.
type Plan struct {
	Entities    []EntityTiming     `yaml:"entities" json:"entities"`
	Connections []ConnectionTiming `yaml:"connections" json:"connections"`
	Camera      *CameraTiming      `yaml:"camera,omitempty" json:"camera,omitempty"`
}

// End is the latest delay+duration in the plan.
func (p Plan) End() float64 {
	end := 0.0
	for _, e := range p.Entities {
		end = math.Max(end, e.Delay+e.Duration)
	}
	for _, c := range p.Connections {
		end = math.Max(end, c.Delay+c.Duration)
	}
	if p.Camera != nil {
		end = math.Max(end, p.Camera.Delay+p.Camera.Duration)
	}
	return end
}

// Entity returns the first record for id and action.
func (p Plan) Entity(id string, action Action) (EntityTiming, bool) {
	for _, e := range p.Entities {
		if e.EntityID == id && e.Action == action {
			return e, true
		}
	}
	return EntityTiming{}, false
}

// CameraCue carries the camera decision into the planner.
type CameraCue struct {
	TargetID string
	Zoom     float64
	Duration float64
	Easing   string
	// Changed is set when the camera plan differs from the previous scene.
	Changed bool
}

// Request is everything the planner needs for one scene.
type Request struct {
	Diff          diff.Diff
	SceneDuration float64
	PrimaryIDs    map[string]bool
	Personality   Personality
	Hook          bool
	Pace          string
	Pacing        Pacing
	// FirstScene enables the near-immediate start of a pure introduction.
	FirstScene bool
	Camera     *CameraCue
}

// planner holds the resolved multipliers for one scene and the warnings
// raised while clamping.
type planner struct {
	speed    float64
	stagger  float64
	duration float64
	warnings []string
}

// Schedule plans removals first, then moves, then additions with the lead
// entity last, then connections once their endpoints have landed, then the
// camera.
func Schedule(req Request) (Plan, []string) {
	if req.Personality.Speed <= 0 || req.Personality.Stagger <= 0 {
		req.Personality, _ = LookupPersonality(DefaultPersonality)
	}
	p := newPlanner(req)
	var out Plan

	cleared := 0.0
	exitStart := ExitWindow.Start * p.duration
	for i, id := range req.Diff.IDsOf(diff.EntityRemoved) {
		rec := p.entity(id, ActionRemove, exitStart+float64(i)*p.stagger, ExitWindow, req.Personality.ExitEasing)
		rec.IsPrimary = req.PrimaryIDs[id]
		out.Entities = append(out.Entities, rec)
		cleared = math.Max(cleared, rec.Delay+RemoveClearFraction*rec.Duration)
	}

	moveStart := MoveWindow.Start * p.duration
	for i, id := range req.Diff.IDsOf(diff.EntityMoved) {
		rec := p.entity(id, ActionMove, moveStart+float64(i)*p.stagger, MoveWindow, req.Personality.MoveEasing)
		rec.IsPrimary = req.PrimaryIDs[id]
		out.Entities = append(out.Entities, rec)
		cleared = math.Max(cleared, rec.Delay+MoveClearFraction*rec.Duration)
	}

	landing := make(map[string]float64)
	added := req.Diff.IDsOf(diff.EntityAdded)
	if len(added) > 0 {
		start := notBefore(math.Max(EnterWindow.Start*p.duration, cleared), cleared)
		if req.FirstScene && req.Diff.OnlyAdditions() {
			start = math.Min(IntroLeadFraction*p.duration, IntroLeadMax)
		}

		var regular, primary []string
		for _, id := range added {
			if req.PrimaryIDs[id] {
				primary = append(primary, id)
			} else {
				regular = append(regular, id)
			}
		}

		next := start
		for i, id := range regular {
			next = start + float64(i)*p.stagger
			rec := p.entity(id, ActionAdd, next, EnterWindow, req.Personality.EnterEasing)
			out.Entities = append(out.Entities, rec)
			landing[id] = rec.Delay + LandingFraction*rec.Duration
		}
		if len(regular) > 0 {
			next += p.stagger + PrimaryExtraDelay
		}
		scale := landingScale(req)
		for i, id := range primary {
			rec := p.entity(id, ActionAdd, next+float64(i)*p.stagger, EnterWindow, req.Personality.EnterEasing)
			rec.IsPrimary = true
			rec.Scale = round3(scale)
			out.Entities = append(out.Entities, rec)
			landing[id] = rec.Delay + LandingFraction*rec.Duration
		}
	}

	connectStart := ConnectWindow.Start * p.duration
	for i, c := range req.Diff.ConnectionsOf(diff.ConnectionAdded) {
		base := connectStart
		for _, end := range []string{c.Connection.From, c.Connection.To} {
			if at, ok := landing[end]; ok {
				base = math.Max(base, at)
			}
		}
		out.Connections = append(out.Connections, p.connection(c.ID, ActionAdd, base+float64(i)*p.stagger, req.Personality.ConnectEasing))
	}
	for i, c := range req.Diff.ConnectionsOf(diff.ConnectionRemoved) {
		out.Connections = append(out.Connections, p.connection(c.ID, ActionRemove, exitStart+float64(i)*p.stagger, req.Personality.ExitEasing))
	}

	if cue := req.Camera; cue != nil && (cue.Changed || req.Diff.Camera != nil) {
		out.Camera = p.camera(req, cue)
	}

	return out, p.warnings
}

func newPlanner(req Request) *planner {
	speed, stagger := req.Personality.Speed, req.Personality.Stagger

	pacingSpeed, pacingStagger := req.Pacing.multipliers()
	speed *= pacingSpeed
	stagger *= pacingStagger

	paceSpeed, paceStagger := paceMultipliers(req.Pace)
	speed *= paceSpeed
	stagger *= paceStagger

	if req.Hook {
		speed *= HookSpeed
		stagger *= HookStagger
	}

	return &planner{
		speed:    speed,
		stagger:  BaseStagger * stagger,
		duration: math.Max(req.SceneDuration, 0),
	}
}

func (p *planner) entity(id string, action Action, delay float64, w Window, easing string) EntityTiming {
	return EntityTiming{
		EntityID: id,
		Action:   action,
		Delay:    p.delay(id, delay),
		Duration: p.length(action, w),
		Easing:   easingOr(easing),
	}
}

func (p *planner) connection(id string, action Action, delay float64, easing string) ConnectionTiming {
	return ConnectionTiming{
		ConnectionID: id,
		Action:       action,
		Delay:        p.delay(id, delay),
		Duration:     p.length(ActionConnect, ConnectWindow),
		Easing:       easingOr(easing),
	}
}

func (p *planner) camera(req Request, cue *CameraCue) *CameraTiming {
	start := CameraWindow.Start
	if req.Pacing == PacingFastReel {
		start = FastReelCameraStart
	}
	base := cue.Duration
	if base <= 0 {
		base = CameraWindow.width() * p.duration
	}
	easing := cue.Easing
	if easing == "" {
		easing = req.Personality.CameraEasing
	}
	return &CameraTiming{
		TargetID: cue.TargetID,
		Zoom:     cue.Zoom,
		Delay:    p.delay("camera", start*p.duration),
		Duration: round3(DurationBounds[ActionCamera].clamp(base / p.speed)),
		Easing:   easingOr(easing),
	}
}

func (p *planner) length(action Action, w Window) float64 {
	return round3(DurationBounds[action].clamp(w.width() * p.duration / p.speed))
}

// delay clamps a start offset into the scene.
func (p *planner) delay(id string, d float64) float64 {
	if d > p.duration {
		p.warnf("%s start %.2fs clamped to scene end %.2fs", id, d, p.duration)
		d = p.duration
	}
	if d < 0 {
		d = 0
	}
	return math.Min(round3(d), p.duration)
}

func (p *planner) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func landingScale(req Request) float64 {
	scale := req.Personality.LandingScale
	if scale <= 0 {
		scale = 1
	}
	if req.Hook {
		scale *= HookScaleBoost
	}
	return scale
}

func easingOr(name string) string {
	if KnownEasing(name) {
		return name
	}
	return DefaultEasing
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// notBefore rounds v to milliseconds without landing below floor.
func notBefore(v, floor float64) float64 {
	r := round3(v)
	for r < floor {
		r = (math.Round(r*1000) + 1) / 1000
	}
	return r
}
