package diff

// IsEmpty reports whether the diff carries no change at all.
func (d Diff) IsEmpty() bool {
	return len(d.Entities) == 0 && len(d.Connections) == 0 && len(d.Interactions) == 0 && d.Camera == nil
}

// Len is the total number of change records.
func (d Diff) Len() int {
	n := len(d.Entities) + len(d.Connections) + len(d.Interactions)
	if d.Camera != nil {
		n++
	}
	return n
}

// EntitiesOf returns the entity changes of one kind, in diff order.
func (d Diff) EntitiesOf(kind Kind) []EntityChange {
	var out []EntityChange
	for _, c := range d.Entities {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// IDsOf returns the entity ids of one kind, in diff order.
func (d Diff) IDsOf(kind Kind) []string {
	var ids []string
	for _, c := range d.Entities {
		if c.Kind == kind {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Has reports whether an entity change of the given kind exists for id.
func (d Diff) Has(kind Kind, id string) bool {
	for _, c := range d.Entities {
		if c.Kind == kind && c.ID == id {
			return true
		}
	}
	return false
}

// ConnectionsOf returns the connection changes of one kind, in diff order.
func (d Diff) ConnectionsOf(kind Kind) []ConnectionChange {
	var out []ConnectionChange
	for _, c := range d.Connections {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Promoted returns ids whose importance changed to primary.
func (d Diff) Promoted() []string {
	var ids []string
	for _, c := range d.EntitiesOf(EntityImportanceChanged) {
		if c.After != nil && c.After.IsPrimary() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// NewestAdded returns the id of the last entity added, or "".
func (d Diff) NewestAdded() string {
	ids := d.IDsOf(EntityAdded)
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

// OnlyAdditions reports whether every entity change is an addition and no
// entity was removed or moved. Connection additions are allowed.
func (d Diff) OnlyAdditions() bool {
	if len(d.Entities) == 0 {
		return false
	}
	for _, c := range d.Entities {
		if c.Kind != EntityAdded {
			return false
		}
	}
	for _, c := range d.Connections {
		if c.Kind != ConnectionAdded {
			return false
		}
	}
	return true
}
