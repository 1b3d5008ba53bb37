package engine

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gahane31/my-animation-sub000/internal/config"
	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/effects"
	"github.com/gahane31/my-animation-sub000/internal/layout"
	"github.com/gahane31/my-animation-sub000/internal/scene"
	"github.com/gahane31/my-animation-sub000/internal/source"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

// Continuity thresholds.
const (
	LowActivityDuration = 8.0
	LowActivityChanges  = 1
	CameraRepeatLimit   = 3
)

// Compiler turns an ordered scene sequence into a Timeline, threading State
// from each scene into the next.
type Compiler struct {
	Config   *config.Config
	Logger   *log.Logger
	Director *director.Director
	Chain    []effects.Decorator

	personality timing.Personality
	pacing      timing.Pacing
	template    layout.Template
}

func NewCompiler(cfg *config.Config) (*Compiler, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pers, err := timing.LookupPersonality(cfg.Personality)
	if err != nil {
		return nil, err
	}
	pacing, err := timing.ParsePacing(cfg.Pacing)
	if err != nil {
		return nil, err
	}
	tmpl := layout.DefaultTemplate
	if cfg.DefaultTemplate != "" {
		if tmpl, err = layout.ParseTemplate(cfg.DefaultTemplate); err != nil {
			return nil, err
		}
	}
	return &Compiler{
		Config:      cfg,
		Logger:      log.Default(),
		Director:    director.NewDirector(pers),
		Chain:       effects.DefaultChain(),
		personality: pers,
		pacing:      pacing,
		template:    tmpl,
	}, nil
}

// CompileDocument compiles doc, honoring its personality and pacing over
// the configured ones.
func (c *Compiler) CompileDocument(doc *source.Document) (*Timeline, error) {
	cc := *c
	if doc.Personality != "" {
		pers, err := timing.LookupPersonality(doc.Personality)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", doc.Title, err)
		}
		cc.personality = pers
		cc.Director = director.NewDirector(pers)
	}
	if doc.Pacing != "" {
		pacing, err := timing.ParsePacing(doc.Pacing)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", doc.Title, err)
		}
		cc.pacing = pacing
	}
	tl, err := cc.Compile(doc.Scenes)
	if err != nil {
		return nil, err
	}
	tl.Title = doc.Title
	return tl, nil
}

// Compile validates the scenes, then runs Step over them in start order.
// Fatal input problems are returned as scene.ValidationErrors; degraded
// paths only produce warnings.
func (c *Compiler) Compile(scenes []scene.Scene) (*Timeline, error) {
	if len(scenes) == 0 {
		return nil, fmt.Errorf("no scenes to compile")
	}
	if err := scene.ValidateAll(scenes); err != nil {
		return nil, err
	}

	ordered := make([]scene.Scene, len(scenes))
	copy(ordered, scenes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	tl := &Timeline{
		Version:     Version,
		Personality: c.personality.Name,
		Pacing:      string(c.pacing),
		CameraTrack: director.NewTrack(),
	}

	state := NewState()
	for _, s := range ordered {
		out, next := c.Step(state, s)
		for _, w := range out.Warnings {
			c.logger().Printf("[!] scene %s: %s", s.ID, w)
			tl.Warnings = append(tl.Warnings, fmt.Sprintf("scene %s: %s", s.ID, w))
		}
		if out.CameraChanged && out.Camera != nil && out.Timing.Camera != nil {
			tl.CameraTrack = tl.CameraTrack.Add(s.Start+out.Timing.Camera.Delay, *out.Camera)
		}
		tl.Scenes = append(tl.Scenes, out)
		tl.Duration = math.Max(tl.Duration, s.End)
		state = next
	}
	return tl, nil
}

// Step compiles one scene against the carried state and returns the scene's
// output together with the state for the next scene. The incoming state is
// only read.
func (c *Compiler) Step(state State, s scene.Scene) (SceneTimeline, State) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	entities, synthesized := s.Eligible()
	if synthesized {
		warn("no eligible entities, showing a placeholder")
	}

	tmpl := c.template
	if s.Template != "" {
		parsed, err := layout.ParseTemplate(s.Template)
		if err != nil {
			warn("%v, using %s", err, c.template)
		} else {
			tmpl = parsed
		}
	}

	present := make(map[string]bool, len(entities))
	for _, e := range entities {
		present[e.ID] = true
	}
	var conns []scene.Connection
	for _, cn := range s.Connections {
		if present[cn.From] && present[cn.To] {
			conns = append(conns, cn)
		}
	}

	res := layout.Compute(entities, conns, layout.Options{
		Template:        tmpl,
		Anchors:         state.Anchors,
		PreviousIDs:     state.PreviousIDs,
		PreviousPrimary: state.PreviousPrimary(),
	})
	warnings = append(warnings, res.Warnings()...)
	positions := res.Positions

	if tmpl.IsGraph() && len(conns) > 0 && c.optimize(s) {
		opt := layout.OptimizeCrossings(entities, conns, positions, layout.OptimizerOptions{
			Fixed:     fixedIDs(entities, res.Anchored),
			MaxPasses: c.Config.MaxOptimizerPasses,
		})
		positions = opt.Positions
	}

	snap := scene.NewSnapshot(entities, positions, s)
	d := diff.Compute(state.Previous, snap)
	hook := c.isHook(state.Index, s)

	hier := c.Director.ResolveHierarchy(director.HierarchyInput{
		Entities:     snap.Entities,
		Positions:    positions,
		Template:     tmpl,
		Camera:       s.Camera,
		StateChanges: s.StateChanges,
		Diff:         d,
		Previous:     state.Hierarchy,
		Hook:         hook,
	})

	cam, camWarnings := c.Director.PlanCamera(director.CameraInput{
		Entities:  snap.Entities,
		Positions: positions,
		Template:  tmpl,
		Intent:    s.Camera,
		Diff:      d,
		Hierarchy: hier,
		Previous:  state.Camera,
		Hook:      hook,
	})
	warnings = append(warnings, camWarnings...)

	changed := c.Director.Changed(state.Camera, cam)
	repeats := 1
	if !changed {
		cam = *state.Camera
		repeats = state.CameraRepeats + 1
	}

	primaries := map[string]bool{}
	if hier.PrimaryID != "" {
		primaries[hier.PrimaryID] = true
	}
	for _, id := range d.Promoted() {
		primaries[id] = true
	}

	req := timing.Request{
		Diff:          d,
		SceneDuration: s.Duration(),
		PrimaryIDs:    primaries,
		Personality:   c.personality,
		Hook:          hook,
		Pace:          s.Pace(),
		Pacing:        c.scenePacing(s, &warnings),
		FirstScene:    state.Index == 0,
	}
	if changed {
		req.Camera = &timing.CameraCue{
			TargetID: cam.TargetID,
			Zoom:     cam.Zoom,
			Duration: cam.Duration,
			Easing:   cam.Easing,
			Changed:  true,
		}
	}
	plan, timingWarnings := timing.Schedule(req)
	warnings = append(warnings, timingWarnings...)

	elements := effects.Decorate(effects.Elements(snap, state.Previous, d), effects.Cue{
		Diff:          d,
		Timing:        plan,
		Hierarchy:     hier,
		Interactions:  snap.Interactions,
		SceneDuration: s.Duration(),
	}, c.Chain...)

	boxes := make(map[string]layout.Box, len(snap.Entities))
	for _, e := range snap.Entities {
		boxes[e.ID] = layout.BoxFor(e)
	}
	routes := layout.RouteAll(snap.Connections, positions, boxes)
	connections := make([]ConnectionElement, 0, len(routes))
	byID := make(map[string]scene.Connection, len(snap.Connections))
	for _, cn := range snap.Connections {
		byID[cn.ID] = cn
	}
	for _, r := range routes {
		cn := byID[r.ConnectionID]
		connections = append(connections, ConnectionElement{
			ID:        r.ConnectionID,
			From:      r.From,
			To:        r.To,
			Direction: string(cn.Direction),
			Style:     cn.Style,
			Points:    r.Points,
		})
	}

	warnings = append(warnings, continuity(s, d, plan, repeats)...)

	out := SceneTimeline{
		ID:                  s.ID,
		Start:               s.Start,
		End:                 s.End,
		Narration:           s.Narration,
		Template:            res.Template,
		Hook:                hook,
		Elements:            elements,
		Connections:         connections,
		Crossings:           layout.CountCrossings(routes),
		Diff:                d,
		Hierarchy:           hier,
		HierarchyTransition: director.Transition(state.Hierarchy, hier),
		Timing:              plan,
		Camera:              &cam,
		CameraChanged:       changed,
		Warnings:            warnings,
	}
	return out, state.advance(snap, positions, hier, cam, repeats)
}

// continuity flags scenes a viewer would perceive as stalled.
func continuity(s scene.Scene, d diff.Diff, plan timing.Plan, repeats int) []string {
	var out []string
	if s.Duration() > LowActivityDuration && d.Len() <= LowActivityChanges {
		out = append(out, fmt.Sprintf("long low-activity scene (%.1fs, %d changes)", s.Duration(), d.Len()))
	}
	if repeats >= CameraRepeatLimit {
		out = append(out, fmt.Sprintf("camera repeated %d times", repeats))
	}
	if end := plan.End(); end > s.Duration()+1e-9 {
		out = append(out, fmt.Sprintf("scene overrun: motion ends at %.2fs of %.2fs", end, s.Duration()))
	}
	return out
}

func (c *Compiler) isHook(index int, s scene.Scene) bool {
	if s.Directives != nil && s.Directives.Hook != nil {
		return *s.Directives.Hook
	}
	return c.Config.HookSceneIndex >= 0 && index == c.Config.HookSceneIndex
}

func (c *Compiler) optimize(s scene.Scene) bool {
	if s.Directives != nil && s.Directives.OptimizeCrossings != nil {
		return *s.Directives.OptimizeCrossings
	}
	return c.Config.OptimizeCrossings
}

func (c *Compiler) scenePacing(s scene.Scene, warnings *[]string) timing.Pacing {
	if s.Directives == nil || s.Directives.Pacing == "" {
		return c.pacing
	}
	p, err := timing.ParsePacing(s.Directives.Pacing)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%v, using %s", err, c.pacing))
		return c.pacing
	}
	return p
}

func (c *Compiler) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// fixedIDs are the entities the crossing optimizer may not move: explicit
// primaries and anchored ids. Replica groups are excluded by the optimizer.
func fixedIDs(entities []scene.Entity, anchored []string) map[string]bool {
	fixed := make(map[string]bool, len(anchored)+1)
	for _, id := range anchored {
		fixed[id] = true
	}
	for _, e := range entities {
		if e.IsPrimary() {
			fixed[e.ID] = true
		}
	}
	return fixed
}
