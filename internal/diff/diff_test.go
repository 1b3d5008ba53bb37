package diff

import (
	"testing"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

func pt(x, y float64) *scene.Point {
	return &scene.Point{X: x, Y: y}
}

func snapshotFixture() scene.Snapshot {
	return scene.Snapshot{
		Entities: []scene.Entity{
			{ID: "api", Type: "service", Importance: scene.Primary, Position: pt(50, 50)},
			{ID: "db", Type: "database", Count: 2, Position: pt(80, 50)},
			{ID: "cache", Type: "cache", Status: "idle", Position: pt(20, 50)},
		},
		Connections: []scene.Connection{
			{ID: "api-db", From: "api", To: "db"},
		},
		Interactions: []scene.Interaction{
			{ID: "reads", From: "api", To: "db", Intensity: "low"},
		},
		Camera: &scene.Camera{Target: "api", Zoom: 1.2},
	}
}

func TestComputeReflexive(t *testing.T) {
	fixtures := []scene.Snapshot{
		{},
		snapshotFixture(),
		{Entities: []scene.Entity{{ID: "solo"}}},
	}
	for i, s := range fixtures {
		if d := Compute(s, s); !d.IsEmpty() {
			t.Errorf("fixture %d: Compute(s, s) = %+v, want empty", i, d)
		}
	}
}

func TestComputeAddRemoveCompleteness(t *testing.T) {
	prev := snapshotFixture()
	cur := snapshotFixture()
	cur.Entities = []scene.Entity{
		cur.Entities[0],
		{ID: "queue", Type: "queue", Position: pt(50, 80)},
		{ID: "worker", Type: "service", Position: pt(80, 80)},
	}
	cur.Connections = nil
	cur.Interactions = nil

	d := Compute(prev, cur)

	added := d.IDsOf(EntityAdded)
	removed := d.IDsOf(EntityRemoved)
	if len(added) != 2 || added[0] != "queue" || added[1] != "worker" {
		t.Errorf("added = %v, want [queue worker]", added)
	}
	if len(removed) != 2 || removed[0] != "db" || removed[1] != "cache" {
		t.Errorf("removed = %v, want [db cache]", removed)
	}

	seen := map[string]Kind{}
	for _, c := range d.Entities {
		if c.Kind != EntityAdded && c.Kind != EntityRemoved {
			continue
		}
		if k, dup := seen[c.ID]; dup {
			t.Errorf("id %s appears as %s and %s", c.ID, k, c.Kind)
		}
		seen[c.ID] = c.Kind
	}

	if got := d.ConnectionsOf(ConnectionRemoved); len(got) != 1 || got[0].ID != "api-db" {
		t.Errorf("connection removals = %+v", got)
	}
	if len(d.Interactions) != 1 || d.Interactions[0].Kind != InteractionRemoved {
		t.Errorf("interactions = %+v", d.Interactions)
	}
}

func TestComputeOneRecordPerAttribute(t *testing.T) {
	prev := snapshotFixture()
	cur := snapshotFixture()
	cur.Entities[1].Position = pt(85, 40)
	cur.Entities[1].Count = 3
	cur.Entities[2].Status = "highlight"
	cur.Entities[2].Importance = scene.Primary
	cur.Entities[0].Importance = scene.Secondary

	d := Compute(prev, cur)

	want := []struct {
		kind Kind
		id   string
	}{
		{EntityImportanceChanged, "api"},
		{EntityMoved, "db"},
		{EntityCountChanged, "db"},
		{EntityStatusChanged, "cache"},
		{EntityImportanceChanged, "cache"},
	}
	if len(d.Entities) != len(want) {
		t.Fatalf("got %d records: %+v", len(d.Entities), d.Entities)
	}
	for i, w := range want {
		if d.Entities[i].Kind != w.kind || d.Entities[i].ID != w.id {
			t.Errorf("record %d = %s(%s), want %s(%s)", i, d.Entities[i].Kind, d.Entities[i].ID, w.kind, w.id)
		}
	}
	if promoted := d.Promoted(); len(promoted) != 1 || promoted[0] != "cache" {
		t.Errorf("Promoted() = %v", promoted)
	}
}

func TestComputeIgnoresFloatingNoise(t *testing.T) {
	prev := snapshotFixture()
	cur := snapshotFixture()
	cur.Entities[0].Position = pt(50.0004, 49.9995)
	cur.Entities[1].Count = 2.3

	if d := Compute(prev, cur); !d.IsEmpty() {
		t.Errorf("expected no changes, got %+v", d.Entities)
	}
}

func TestComputeInteractionIntensity(t *testing.T) {
	prev := snapshotFixture()
	cur := snapshotFixture()
	cur.Interactions = []scene.Interaction{{ID: "reads", From: "api", To: "db", Intensity: "high"}}

	d := Compute(prev, cur)
	if len(d.Interactions) != 1 || d.Interactions[0].Kind != InteractionIntensityChanged {
		t.Fatalf("interactions = %+v", d.Interactions)
	}
	if d.Interactions[0].Before.Intensity != "low" || d.Interactions[0].After.Intensity != "high" {
		t.Errorf("unexpected before/after: %+v", d.Interactions[0])
	}
}

func TestComputeCamera(t *testing.T) {
	tests := []struct {
		name   string
		before *scene.Camera
		after  *scene.Camera
		want   bool
	}{
		{"both nil", nil, nil, false},
		{"equal", &scene.Camera{Target: "a", Zoom: 1}, &scene.Camera{Target: "a", Zoom: 1}, false},
		{"appears", nil, &scene.Camera{Target: "a"}, true},
		{"disappears", &scene.Camera{Target: "a"}, nil, true},
		{"zoom differs", &scene.Camera{Target: "a", Zoom: 1}, &scene.Camera{Target: "a", Zoom: 1.01}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(scene.Snapshot{Camera: tt.before}, scene.Snapshot{Camera: tt.after})
			if got := d.Camera != nil; got != tt.want {
				t.Fatalf("camera change = %v, want %v", got, tt.want)
			}
			if d.Camera != nil && (d.Camera.Before != tt.before || d.Camera.After != tt.after) {
				t.Errorf("camera record does not carry old/new values: %+v", d.Camera)
			}
		})
	}
}

func TestScenarioAddAndRemove(t *testing.T) {
	prev := scene.Snapshot{Entities: []scene.Entity{
		{ID: "A", Importance: scene.Primary, Position: pt(50, 50)},
		{ID: "B", Position: pt(25, 50)},
	}}
	cur := scene.Snapshot{Entities: []scene.Entity{
		{ID: "A", Importance: scene.Primary, Position: pt(50, 50)},
		{ID: "C", Position: pt(75, 50)},
	}}

	d := Compute(prev, cur)
	if got := d.IDsOf(EntityAdded); len(got) != 1 || got[0] != "C" {
		t.Errorf("added = %v", got)
	}
	if got := d.IDsOf(EntityRemoved); len(got) != 1 || got[0] != "B" {
		t.Errorf("removed = %v", got)
	}
	if got := d.IDsOf(EntityMoved); len(got) != 0 {
		t.Errorf("moved = %v, want none", got)
	}
	if d.OnlyAdditions() {
		t.Error("OnlyAdditions() should be false with a removal")
	}
}
