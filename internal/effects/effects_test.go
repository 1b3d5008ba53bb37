package effects

import (
	"testing"

	"github.com/gahane31/my-animation-sub000/internal/diff"
	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/scene"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

func snap(ents ...scene.Entity) scene.Snapshot {
	pos := make(map[string]scene.Point, len(ents))
	for i, e := range ents {
		pos[e.ID] = scene.Point{X: float64(20 + 20*i), Y: 50}
	}
	return scene.NewSnapshot(ents, pos, scene.Scene{})
}

func TestElementsIncludeRemovedOnce(t *testing.T) {
	prev := snap(scene.Entity{ID: "a", Importance: scene.Primary}, scene.Entity{ID: "b"})
	cur := snap(scene.Entity{ID: "a", Importance: scene.Primary}, scene.Entity{ID: "c", Count: 2.6})
	d := diff.Compute(prev, cur)

	els := Elements(cur, prev, d)
	if len(els) != 3 {
		t.Fatalf("got %d elements, want 3", len(els))
	}
	seen := map[string]int{}
	for _, el := range els {
		seen[el.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("%s appears %d times", id, n)
		}
	}
	if els[2].ID != "b" || els[2].Position != *prev.Entities[1].Position {
		t.Errorf("removed element = %+v, want b at its last position", els[2])
	}
	if els[1].Count != 3 {
		t.Errorf("Count = %d, want 3", els[1].Count)
	}
}

func TestDecorate(t *testing.T) {
	prev := snap(scene.Entity{ID: "a", Importance: scene.Primary}, scene.Entity{ID: "b"})
	cur := snap(scene.Entity{ID: "a", Importance: scene.Primary, Count: 3}, scene.Entity{ID: "c"})
	d := diff.Compute(prev, cur)

	pers, _ := timing.LookupPersonality("")
	plan, _ := timing.Schedule(timing.Request{Diff: d, SceneDuration: 4, PrimaryIDs: map[string]bool{"a": true}, Personality: pers})
	hier := director.NewDirector(pers).ResolveHierarchy(director.HierarchyInput{Entities: cur.Entities, Diff: d})

	els := Decorate(Elements(cur, prev, d), Cue{
		Diff:          d,
		Timing:        plan,
		Hierarchy:     hier,
		Interactions:  []scene.Interaction{{ID: "i", From: "c", To: "a", Pattern: "burst", Intensity: "high"}},
		SceneDuration: 4,
	})

	byID := map[string]Element{}
	for _, el := range els {
		byID[el.ID] = el
	}

	if byID["c"].Enter == nil || byID["c"].Enter.Kind != "fade_in" {
		t.Errorf("c.Enter = %+v", byID["c"].Enter)
	}
	if byID["b"].Exit == nil {
		t.Error("removed b should carry an exit")
	}
	if !hasEffect(byID["a"], "count_change", "1->3") {
		t.Errorf("a effects = %+v, want count pulse", byID["a"].Effects)
	}
	if !hasEffect(byID["a"], "glow", "") || !byID["a"].Emphasis.Glow {
		t.Errorf("primary a should glow: %+v", byID["a"])
	}
	if !hasEffect(byID["c"], "flow", "burst:high") {
		t.Errorf("c effects = %+v, want flow", byID["c"].Effects)
	}
	for _, el := range els {
		for _, fx := range el.Effects {
			if fx.Delay < 0 || fx.Duration < 0 || fx.Delay+fx.Duration > 4+1e-9 {
				t.Errorf("%s effect %+v escapes the scene", el.ID, fx)
			}
		}
	}
}

func hasEffect(el Element, kind, value string) bool {
	for _, fx := range el.Effects {
		if fx.Kind == kind && (value == "" || fx.Value == value) {
			return true
		}
	}
	return false
}
