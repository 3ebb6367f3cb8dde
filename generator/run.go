package generator

import (
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/graph"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/naming"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/refs"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/zoderrors"
)

// run is one generation: a discovery walk, cycle analysis, an emission
// walk and the final ordering.
type run struct {
	gen   *Generator
	root  jsonschema.Node
	index *refs.Index
	log   Logger
}

func newRun(g *Generator, node jsonschema.Node, baseURI string, resolver URIResolver) *run {
	return &run{
		gen:   g,
		root:  node,
		index: refs.NewIndex(node, baseURI, refs.Resolver(resolver)),
		log:   g.log(),
	}
}

// walk performs one full walk. seed carries the names issued by an
// earlier walk; analysis is nil for discovery.
func (r *run) walk(seed *naming.Registry, analysis *graph.Analysis) (*resolution, string) {
	names := naming.NewRegistry(naming.Hook(r.gen.NameFunc))
	if seed != nil {
		names.Seed(seed)
	}
	res := newResolution(r.gen, r.index, names, analysis, r.log)
	root := res.walkRoot(r.root, r.gen.Name)

	texts := make(map[string]string, len(res.decls))
	for name, d := range res.decls {
		if d.schema != nil {
			texts[name] = d.schema.Expr
		}
	}
	graph.InferEdges(res.deps, texts)
	return res, root
}

func (r *run) execute() (*GenerateResult, error) {
	discovery, _ := r.walk(nil, nil)
	analysis := graph.Analyze(discovery.deps)
	r.log.Debug("discovery pass complete",
		"declarations", len(discovery.decls),
		"components", len(analysis.Components()),
		"cyclic", len(analysis.CyclicNames()))

	emission, root := r.walk(discovery.names, analysis)
	if err := emission.check(); err != nil {
		return nil, err
	}

	order := graph.Order(emission.deps)
	result := &GenerateResult{
		Name:   root,
		Lifted: emission.lifted,
		Issues: emission.issues,
	}
	for _, name := range order {
		d := emission.decls[name]
		result.Declarations = append(result.Declarations, Declaration{
			Name:         name,
			Pointer:      d.loc.String(),
			Expression:   d.schema.Expr,
			Type:         d.schema.Type,
			Cyclic:       analysis.Cyclic(name),
			Dependencies: emission.deps.Edges(name),
		})
	}
	for _, comp := range analysis.Components() {
		if len(comp) > 0 && analysis.Cyclic(comp[0]) {
			result.Cycles = append(result.Cycles, comp)
		}
	}
	result.Output = r.render(result, emission)

	r.log.Info("generated module",
		"name", root,
		"declarations", len(result.Declarations),
		"cycles", len(result.Cycles),
		"lifted", len(result.Lifted))
	return result, nil
}

// check verifies that every declaration was completed and every
// dependency names a declaration.
func (res *resolution) check() error {
	for _, name := range res.deps.Nodes() {
		d, ok := res.decls[name]
		if !ok {
			return &zoderrors.InternalError{Message: "dependency on undeclared name " + name}
		}
		if d.schema == nil || d.schema.Expr == "" {
			return &zoderrors.InternalError{Pointer: d.loc.String(), Message: "declaration " + name + " has no representation"}
		}
	}
	return nil
}
