package graph

import "sort"

// Analysis is the strongly connected component decomposition of a graph.
// A nil *Analysis reports every node as acyclic, which is what the
// discovery walk sees before any analysis exists.
type Analysis struct {
	component map[string]int
	members   [][]string
	cyclic    map[string]bool
}

// Analyze runs Tarjan's algorithm over g. Components are numbered in the
// order Tarjan completes them, which is reverse topological order.
func Analyze(g *Graph) *Analysis {
	a := &Analysis{
		component: make(map[string]int, len(g.nodes)),
		cyclic:    make(map[string]bool),
	}

	index := 0
	indices := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var stack []string

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] != indices[v] {
			return
		}
		id := len(a.members)
		var comp []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			a.component[w] = id
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		sort.Strings(comp)
		a.members = append(a.members, comp)
		if len(comp) > 1 || g.HasEdge(v, v) {
			for _, w := range comp {
				a.cyclic[w] = true
			}
		}
	}

	for _, v := range g.nodes {
		if _, visited := indices[v]; !visited {
			strongConnect(v)
		}
	}
	return a
}

// Cyclic reports whether name belongs to a cycle: a component with more
// than one member, or a single member with a self edge.
func (a *Analysis) Cyclic(name string) bool {
	if a == nil {
		return false
	}
	return a.cyclic[name]
}

// Component returns the component id of name.
func (a *Analysis) Component(name string) (int, bool) {
	if a == nil {
		return 0, false
	}
	id, ok := a.component[name]
	return id, ok
}

// SameComponent reports whether x and y are mutually reachable. A node is
// in the same component as itself only when it is cyclic.
func (a *Analysis) SameComponent(x, y string) bool {
	if a == nil {
		return false
	}
	if x == y {
		return a.cyclic[x]
	}
	cx, okx := a.component[x]
	cy, oky := a.component[y]
	return okx && oky && cx == cy
}

// Components returns every component, members sorted by name.
func (a *Analysis) Components() [][]string {
	if a == nil {
		return nil
	}
	out := make([][]string, len(a.members))
	for i, m := range a.members {
		out[i] = append([]string(nil), m...)
	}
	return out
}

// CyclicNames returns the sorted names of all cyclic nodes.
func (a *Analysis) CyclicNames() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.cyclic))
	for n := range a.cyclic {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
