// Package graph holds the declaration dependency graph: strongly connected
// component analysis, dependency ordering, and edge inference from
// rendered declaration text.
package graph

// Graph is a directed graph over declaration names. Nodes and edges keep
// insertion order so every traversal is deterministic.
type Graph struct {
	nodes []string
	known map[string]bool
	edges map[string][]string
	seen  map[string]map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		known: make(map[string]bool),
		edges: make(map[string][]string),
		seen:  make(map[string]map[string]bool),
	}
}

// AddNode adds name if it is not present yet.
func (g *Graph) AddNode(name string) {
	if g.known[name] {
		return
	}
	g.known[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge records that from depends on to. Both nodes are added.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	if g.seen[from] == nil {
		g.seen[from] = make(map[string]bool)
	}
	if g.seen[from][to] {
		return
	}
	g.seen[from][to] = true
	g.edges[from] = append(g.edges[from], to)
}

// HasNode reports whether name is in the graph.
func (g *Graph) HasNode(name string) bool {
	return g.known[name]
}

// HasEdge reports whether from depends on to.
func (g *Graph) HasEdge(from, to string) bool {
	return g.seen[from][to]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the dependencies of name in insertion order.
func (g *Graph) Edges(name string) []string {
	out := make([]string, len(g.edges[name]))
	copy(out, g.edges[name])
	return out
}

// Merge adds every node and edge of other.
func (g *Graph) Merge(other *Graph) {
	for _, n := range other.nodes {
		g.AddNode(n)
		for _, to := range other.edges[n] {
			g.AddEdge(n, to)
		}
	}
}
