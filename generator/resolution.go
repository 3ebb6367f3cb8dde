package generator

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/graph"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/leaf"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/naming"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/refs"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// resolution is the state of one walk over the schema. The discovery walk
// and the emission walk each own one; only the reference index is shared.
type resolution struct {
	gen   *Generator
	index *refs.Index
	names *naming.Registry
	// analysis is nil during discovery.
	analysis  *graph.Analysis
	discovery bool

	decls      map[string]*declaration
	inProgress map[string]bool
	deps       *graph.Graph
	lifted     []string
	issues     []GenerateIssue
	// lazyRefs counts deferred references emitted so far.
	lazyRefs int
	log      Logger
}

// declaration is a named schema being built or already built.
type declaration struct {
	name   string
	loc    refs.Location
	schema *compose.Schema
	lifted bool
}

// walkContext is the position of the walk at one schema node.
type walkContext struct {
	loc refs.Location
	// decl is the declaration whose text the node ends up in.
	decl string
	// path holds the reference tokens from decl's location to loc.
	path  []string
	scope refs.Scope
	// deferred is set once an enclosing union was wrapped in z.lazy.
	deferred bool
	// liftable allows inline objects below to become declarations.
	liftable bool
}

func newResolution(g *Generator, index *refs.Index, names *naming.Registry, analysis *graph.Analysis, log Logger) *resolution {
	return &resolution{
		gen:        g,
		index:      index,
		names:      names,
		analysis:   analysis,
		discovery:  analysis == nil,
		decls:      make(map[string]*declaration),
		inProgress: make(map[string]bool),
		deps:       graph.New(),
		log:        log,
	}
}

// walkRoot declares the root document under hint.
func (r *resolution) walkRoot(root jsonschema.Node, hint string) string {
	loc := r.index.Root()
	name := r.names.Issue(loc.String(), naming.Candidate{Hint: hint, Title: title(root)})
	r.build(name, loc, root, refs.Scope{}, false)
	return name
}

// build translates node into the declaration name. It is a no-op when the
// declaration was started before.
func (r *resolution) build(name string, loc refs.Location, node jsonschema.Node, scope refs.Scope, lifted bool) {
	if _, ok := r.decls[name]; ok {
		return
	}
	d := &declaration{name: name, loc: loc, lifted: lifted}
	r.decls[name] = d
	r.deps.AddNode(name)
	r.inProgress[name] = true
	defer delete(r.inProgress, name)

	w := &walkContext{
		loc:      loc,
		decl:     name,
		scope:    scope.Enter(r.index.BaseOf(loc)),
		liftable: r.gen.LiftDefs || !inDefinitions(loc),
	}
	if r.gen.Override != nil {
		if expr, ok := r.gen.Override(node, OverrideInfo{Name: name, Pointer: loc.String()}); ok {
			d.schema = compose.Opaque(expr, "any")
			return
		}
	}
	d.schema = r.translate(node, w)
}

// translate turns any schema node into its representation.
func (r *resolution) translate(node jsonschema.Node, w *walkContext) *compose.Schema {
	o, ok := node.(*jsonschema.Object)
	if !ok {
		if accept, _ := node.(bool); accept {
			return compose.Fallback(r.gen.UnknownFallback)
		}
		return compose.Never()
	}

	var parts []*compose.Schema
	if jsonschema.HasReference(o) {
		parts = append(parts, r.reference(o, w))
	}
	if leaf.HasTypeKeywords(o) || hasComposition(o) {
		parts = append(parts, r.body(o, w))
	}
	return leaf.Annotate(compose.Intersect(parts, r.gen.UnknownFallback), o)
}

// sub translates child, found at tokens below w. The child becomes a
// reference when it already has a declaration or gets lifted into one.
func (r *resolution) sub(child jsonschema.Node, w *walkContext, tokens ...string) *compose.Schema {
	cw := r.descend(w, tokens...)
	if name, ok := r.names.Lookup(cw.loc.String()); ok {
		if _, declared := r.decls[name]; declared {
			return r.ref(name, w)
		}
	}
	if name, ok := r.lift(child, cw); ok {
		return r.ref(name, w)
	}
	return r.translate(child, cw)
}

func (r *resolution) descend(w *walkContext, tokens ...string) *walkContext {
	c := *w
	c.loc = w.loc.Child(tokens...)
	c.path = append(slices.Clone(w.path), tokens...)
	c.scope = w.scope.Enter(r.index.BaseOf(c.loc))
	return &c
}

// reference resolves the reference keyword of o and returns a reference to
// the declaration of its target.
func (r *resolution) reference(o *jsonschema.Object, w *walkContext) *compose.Schema {
	var (
		target  refs.Target
		err     error
		keyword string
		raw     string
	)
	switch {
	case o.Has("$ref"):
		keyword = "$ref"
		raw, _ = o.String(keyword)
		target, err = r.index.Resolve(raw, w.loc)
	case o.Has("$dynamicRef"):
		keyword = "$dynamicRef"
		raw, _ = o.String(keyword)
		target, err = r.index.ResolveDynamic(raw, w.loc, w.scope)
	default:
		keyword = "$recursiveRef"
		raw, _ = o.String(keyword)
		target, err = r.index.ResolveRecursive(w.loc, w.scope)
	}
	if err == nil && raw == "" && keyword != "$recursiveRef" {
		err = fmt.Errorf("%s must be a non-empty string", keyword)
	}
	if err != nil {
		r.unresolved(raw, keyword, w, err)
		return compose.Fallback(r.gen.UnknownFallback)
	}
	return r.ref(r.declare(target, w), w)
}

// declare returns the declaration name for a reference target, building
// the declaration on first use.
func (r *resolution) declare(target refs.Target, w *walkContext) string {
	loc := target.Location
	tokens := loc.Tokens()
	if len(tokens) == 0 && loc.Doc != "" {
		tokens = []string{documentStem(loc.Doc)}
	}
	name := r.names.Issue(loc.String(), naming.Candidate{Title: title(target.Node), Path: tokens})
	r.build(name, loc, target.Node, w.scope, false)
	return name
}

// ref records the dependency of w's declaration on name and returns a
// reference to it. References back into a declaration under construction,
// or into the current reference cycle, are deferred with z.lazy.
func (r *resolution) ref(name string, w *walkContext) *compose.Schema {
	r.deps.AddEdge(w.decl, name)
	self := name == w.decl
	if r.inProgress[name] || r.analysis.SameComponent(w.decl, name) {
		r.lazyRefs++
		return compose.Lazy(compose.Ref(name, nil, self))
	}
	return compose.Ref(name, r.decls[name].schema, self)
}

func (r *resolution) unresolved(raw, keyword string, w *walkContext, err error) {
	if r.discovery {
		return
	}
	ptr := w.loc.String()
	if r.gen.OnUnresolvedRef != nil {
		r.gen.OnUnresolvedRef(raw, ptr)
	}
	r.log.Warn("unresolved reference", "ref", raw, "pointer", ptr, "error", err)
	r.issues = append(r.issues, GenerateIssue{
		Pointer:     ptr,
		Keyword:     keyword,
		Value:       raw,
		Message:     fmt.Sprintf("unresolved reference %q replaced by the fallback schema: %v", raw, err),
		Severity:    SeverityWarning,
		Declaration: w.decl,
	})
}

func (r *resolution) unknownFormat(format string, w *walkContext) {
	if r.discovery {
		return
	}
	ptr := w.loc.String()
	if r.gen.OnUnknownFormat != nil {
		r.gen.OnUnknownFormat(format, ptr)
	}
	r.issues = append(r.issues, GenerateIssue{
		Pointer:     ptr,
		Keyword:     "format",
		Value:       format,
		Message:     fmt.Sprintf("format %q has no translation and is not enforced", format),
		Severity:    SeverityInfo,
		Declaration: w.decl,
	})
}

// leafContext exposes the walk to leaf translators.
type leafContext struct {
	r *resolution
	w *walkContext
}

var _ leaf.Context = leafContext{}

func (c leafContext) Sub(child jsonschema.Node, tokens ...string) *compose.Schema {
	return c.r.sub(child, c.w, tokens...)
}

func (c leafContext) Unknown() bool { return c.r.gen.UnknownFallback }

func (c leafContext) UnknownFormat(format string) { c.r.unknownFormat(format, c.w) }

func title(node jsonschema.Node) string {
	if o, ok := node.(*jsonschema.Object); ok {
		t, _ := o.String("title")
		return t
	}
	return ""
}

// inDefinitions reports whether loc lies inside a $defs or definitions map.
func inDefinitions(loc refs.Location) bool {
	for _, tok := range loc.Tokens() {
		if tok == "$defs" || tok == "definitions" {
			return true
		}
	}
	return false
}

// documentStem returns the file name of uri without its extension.
func documentStem(uri string) string {
	base := path.Base(strings.TrimSuffix(uri, "/"))
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
