package generator

import (
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/naming"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/refs"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// liftParents are the keywords whose direct subschemas may be lifted.
var liftParents = map[string]bool{
	"properties":  true,
	"prefixItems": true,
	"items":       true,
	"allOf":       true,
	"anyOf":       true,
	"oneOf":       true,
}

// lift turns the inline object at w into a declaration of its own and
// returns its name. Objects whose subtree reaches back into a declaration
// under construction, or into the cycle of the current declaration, stay
// inline.
func (r *resolution) lift(child jsonschema.Node, w *walkContext) (string, bool) {
	if !r.gen.LiftInlineObjects || !w.liftable {
		return "", false
	}
	o, ok := child.(*jsonschema.Object)
	if !ok || !jsonschema.IsObjectShaped(o) || !liftPosition(w.path) {
		return "", false
	}
	if r.reachesCycle(o, w.loc, w) {
		return "", false
	}

	ptr := w.loc.String()
	var hint string
	if r.gen.LiftNameFunc != nil {
		hint = r.gen.LiftNameFunc(ptr, w.path)
	}
	name := r.names.Issue(ptr, naming.Candidate{
		Hint:     hint,
		Title:    title(o),
		Ancestor: w.decl,
		Path:     w.path,
	})
	if _, exists := r.decls[name]; !exists {
		r.lifted = append(r.lifted, name)
		r.log.Debug("lifted inline object", "name", name, "pointer", ptr, "parent", w.decl)
	}
	r.build(name, w.loc, o, w.scope, true)
	return name, true
}

// liftPosition reports whether path ends at a property value, array item,
// additionalProperties or composition member.
func liftPosition(path []string) bool {
	n := len(path)
	if n == 0 {
		return false
	}
	switch path[n-1] {
	case "items", "additionalProperties", "additionalItems":
		return true
	}
	return n >= 2 && liftParents[path[n-2]]
}

// reachesCycle reports whether a reference inside the subtree at loc
// targets the subtree itself, a declaration under construction, or a
// member of w's reference cycle.
func (r *resolution) reachesCycle(node jsonschema.Node, loc refs.Location, w *walkContext) bool {
	o, ok := node.(*jsonschema.Object)
	if !ok {
		return false
	}
	if jsonschema.HasReference(o) {
		if target, ok := r.peek(o, loc, w); ok {
			if within(target.Location, w.loc) {
				return true
			}
			if name, ok := r.names.Lookup(target.Location.String()); ok {
				if r.inProgress[name] || r.analysis.SameComponent(w.decl, name) {
					return true
				}
			}
		}
	}

	found := false
	jsonschema.ForEachSubschema(o, func(tokens []string, child jsonschema.Node) {
		if !found {
			found = r.reachesCycle(child, loc.Child(tokens...), w)
		}
	})
	return found
}

// peek resolves the reference keyword of o without declaring anything.
func (r *resolution) peek(o *jsonschema.Object, loc refs.Location, w *walkContext) (refs.Target, bool) {
	var (
		target refs.Target
		err    error
	)
	switch {
	case o.Has("$ref"):
		raw, _ := o.String("$ref")
		target, err = r.index.Resolve(raw, loc)
	case o.Has("$dynamicRef"):
		raw, _ := o.String("$dynamicRef")
		target, err = r.index.ResolveDynamic(raw, loc, w.scope)
	default:
		target, err = r.index.ResolveRecursive(loc, w.scope)
	}
	return target, err == nil
}

// within reports whether loc is root or lies below it.
func within(loc, root refs.Location) bool {
	if loc.Doc != root.Doc {
		return false
	}
	return loc.Pointer == root.Pointer || strings.HasPrefix(loc.Pointer, root.Pointer+"/")
}
