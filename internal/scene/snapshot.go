package scene

// Snapshot is the state visible at one instant. It only feeds the diff of two
// adjacent scenes and is never persisted beyond that.
type Snapshot struct {
	Entities     []Entity
	Connections  []Connection
	Interactions []Interaction
	Camera       *Camera
}

// NewSnapshot captures a scene's eligible entities with their resolved
// layout positions. Connections and interactions whose endpoints were
// filtered out are dropped.
func NewSnapshot(entities []Entity, positions map[string]Point, s Scene) Snapshot {
	snap := Snapshot{Camera: s.Camera}
	present := make(map[string]bool, len(entities))
	for _, e := range entities {
		if p, ok := positions[e.ID]; ok {
			pos := p
			e.Position = &pos
		}
		snap.Entities = append(snap.Entities, e)
		present[e.ID] = true
	}
	for _, c := range s.Connections {
		if present[c.From] && present[c.To] {
			snap.Connections = append(snap.Connections, c)
		}
	}
	for _, in := range s.Interactions {
		if present[in.From] && present[in.To] {
			snap.Interactions = append(snap.Interactions, in)
		}
	}
	return snap
}

// IDs returns the set of entity ids in the snapshot.
func (s Snapshot) IDs() map[string]bool {
	ids := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		ids[e.ID] = true
	}
	return ids
}

// Entity looks an entity up by id.
func (s Snapshot) Entity(id string) (Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
