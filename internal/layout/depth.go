package layout

import (
	"sort"

	"github.com/gahane31/my-animation-sub000/internal/scene"
)

// Depths layers entities with Kahn's algorithm over the connection graph.
// Bidirectional connections count as edges both ways. Sources get depth 0
// and a successor gets max(predecessor depth)+1. The ready set is always
// drained in lexicographic id order; when only cycles remain, the smallest
// unprocessed id is released with its tentative depth.
func Depths(entities []scene.Entity, connections []scene.Connection) map[string]int {
	present := make(map[string]bool, len(entities))
	for _, e := range entities {
		present[e.ID] = true
	}

	succ := make(map[string]map[string]bool, len(entities))
	indeg := make(map[string]int, len(entities))
	addEdge := func(from, to string) {
		if from == to || !present[from] || !present[to] {
			return
		}
		if succ[from] == nil {
			succ[from] = make(map[string]bool)
		}
		if succ[from][to] {
			return
		}
		succ[from][to] = true
		indeg[to]++
	}
	for _, c := range connections {
		addEdge(c.From, c.To)
		if c.Direction == scene.Bidirectional {
			addEdge(c.To, c.From)
		}
	}

	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)

	depth := make(map[string]int, len(ids))
	done := make(map[string]bool, len(ids))
	var ready []string
	for _, id := range ids {
		depth[id] = 0
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	for len(done) < len(ids) {
		if len(ready) == 0 {
			for _, id := range ids {
				if !done[id] {
					ready = append(ready, id)
					break
				}
			}
		}

		sort.Strings(ready)
		n := ready[0]
		ready = ready[1:]
		if done[n] {
			continue
		}
		done[n] = true

		next := make([]string, 0, len(succ[n]))
		for s := range succ[n] {
			next = append(next, s)
		}
		sort.Strings(next)
		for _, s := range next {
			if done[s] {
				continue
			}
			if depth[n]+1 > depth[s] {
				depth[s] = depth[n] + 1
			}
			indeg[s]--
			if indeg[s] == 0 {
				ready = append(ready, s)
			}
		}
	}
	return depth
}
