package graph

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// Order returns the nodes of g so that every node follows its
// dependencies. Roots are taken in insertion order. A dependency that is
// still on the recursion stack closes a cycle and is treated as already
// satisfied, so the first-reached member of a cycle is emitted first.
func Order(g *Graph) []string {
	states := make(map[string]visitState, len(g.nodes))
	out := make([]string, 0, len(g.nodes))

	var visit func(name string)
	visit = func(name string) {
		switch states[name] {
		case stateVisiting, stateDone:
			return
		}
		states[name] = stateVisiting
		for _, dep := range g.edges[name] {
			visit(dep)
		}
		states[name] = stateDone
		out = append(out, name)
	}

	for _, n := range g.nodes {
		visit(n)
	}
	return out
}
