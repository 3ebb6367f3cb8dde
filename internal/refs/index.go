// Package refs resolves JSON Schema references to concrete schema nodes.
//
// An [Index] scans a document once, recording $id resources, $anchor and
// $dynamicAnchor names, $recursiveAnchor roots and the base URI in effect at
// every schema location. References are then resolved on demand:
//
//   - $ref with a fragment is a JSON Pointer from the current resource root
//   - $ref with a URI is looked up among known $id resources and, failing
//     that, handed to the external [Resolver]
//   - $ref with a plain-name fragment matches a $anchor in the named resource
//   - $dynamicRef binds to the outermost resource in the dynamic scope that
//     declares a matching $dynamicAnchor
//   - $recursiveRef binds to the outermost resource in the dynamic scope
//     whose root sets $recursiveAnchor, or to the current resource root
//
// Every target is identified by its [Location], whose string form is the
// canonical pointer used to deduplicate declarations.
package refs

import (
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// Location addresses a node: the key of the document that holds it and a
// JSON Pointer within that document. The root document's key is empty.
type Location struct {
	Doc     string
	Pointer string
}

// String returns the canonical pointer, e.g. "#/$defs/Node" or
// "https://example.com/pet.json#/properties/tag".
func (l Location) String() string {
	return l.Doc + "#" + l.Pointer
}

// Child returns the location of a descendant.
func (l Location) Child(tokens ...string) Location {
	return Location{Doc: l.Doc, Pointer: jsonschema.AppendPointer(l.Pointer, tokens...)}
}

// Tokens returns the unescaped reference tokens of the pointer.
func (l Location) Tokens() []string {
	tokens, _ := jsonschema.ParsePointer(l.Pointer)
	return tokens
}

// IsRoot reports whether l addresses the whole root document.
func (l Location) IsRoot() bool {
	return l.Doc == "" && l.Pointer == ""
}

// Resolver loads an external document by absolute URI. Returning a nil
// node without error means the URI is unknown.
type Resolver func(uri string) (jsonschema.Node, error)

// Index holds the reference space of one generation run: the root document
// plus every externally resolved document.
type Index struct {
	docs      map[string]jsonschema.Node
	resources map[string]Location
	anchors   map[string]Location
	dynamic   map[string]Location
	bases     map[Location]string
	roots     map[Location]Location
	recursive map[Location]bool
	failed    map[string]error
	resolver  Resolver
}

// NewIndex indexes root. baseURI is the retrieval URI of the root document
// and may be empty.
func NewIndex(root jsonschema.Node, baseURI string, resolver Resolver) *Index {
	ix := &Index{
		docs:      make(map[string]jsonschema.Node),
		resources: make(map[string]Location),
		anchors:   make(map[string]Location),
		dynamic:   make(map[string]Location),
		bases:     make(map[Location]string),
		roots:     make(map[Location]Location),
		recursive: make(map[Location]bool),
		failed:    make(map[string]error),
		resolver:  resolver,
	}
	ix.docs[""] = root
	rootLoc := Location{}
	ix.resources[""] = rootLoc
	base := stripFragment(baseURI)
	if base != "" {
		ix.resources[base] = rootLoc
	}
	ix.scan(root, rootLoc, base, rootLoc)
	return ix
}

// Root returns the location of the root document.
func (ix *Index) Root() Location {
	return Location{}
}

// Node returns the value at loc.
func (ix *Index) Node(loc Location) (jsonschema.Node, bool) {
	doc, ok := ix.docs[loc.Doc]
	if !ok {
		return nil, false
	}
	return jsonschema.Walk(doc, loc.Tokens())
}

// Documents returns the keys of all external documents loaded so far.
func (ix *Index) Documents() []string {
	out := make([]string, 0, len(ix.docs)-1)
	for k := range ix.docs {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// BaseOf returns the base URI in effect at loc.
func (ix *Index) BaseOf(loc Location) string {
	ptr := loc.Pointer
	for {
		if b, ok := ix.bases[Location{Doc: loc.Doc, Pointer: ptr}]; ok {
			return b
		}
		if ptr == "" {
			return loc.Doc
		}
		ptr = ptr[:strings.LastIndex(ptr, "/")]
	}
}

// ResourceRoot returns the location of the resource that encloses loc.
func (ix *Index) ResourceRoot(loc Location) Location {
	ptr := loc.Pointer
	for {
		if r, ok := ix.roots[Location{Doc: loc.Doc, Pointer: ptr}]; ok {
			return r
		}
		if ptr == "" {
			return Location{Doc: loc.Doc}
		}
		ptr = ptr[:strings.LastIndex(ptr, "/")]
	}
}

// scan records identifiers and base URIs for node and its subschemas.
func (ix *Index) scan(node jsonschema.Node, loc Location, base string, resource Location) {
	obj, ok := node.(*jsonschema.Object)
	if !ok {
		ix.bases[loc] = base
		ix.roots[loc] = resource
		return
	}

	if id, ok := obj.String("$id"); ok && id != "" {
		resolved := resolveURI(base, id)
		if frag := fragmentOf(resolved); frag != "" && !strings.HasPrefix(frag, "/") {
			// Pre-2019 drafts spell anchors as "$id": "#name".
			ix.addAnchor(ix.anchors, stripFragment(resolved), frag, loc)
		} else if uri := stripFragment(resolved); uri != "" {
			base = uri
			resource = loc
			if _, exists := ix.resources[uri]; !exists {
				ix.resources[uri] = loc
			}
		}
	}
	ix.bases[loc] = base
	ix.roots[loc] = resource

	if anchor, ok := obj.String("$anchor"); ok && anchor != "" {
		ix.addAnchor(ix.anchors, base, anchor, loc)
	}
	if anchor, ok := obj.String("$dynamicAnchor"); ok && anchor != "" {
		ix.addAnchor(ix.dynamic, base, anchor, loc)
		ix.addAnchor(ix.anchors, base, anchor, loc)
	}
	if rec, ok := obj.Bool("$recursiveAnchor"); ok && rec && resource == loc {
		ix.recursive[loc] = true
	}

	jsonschema.ForEachSubschema(obj, func(tokens []string, child jsonschema.Node) {
		ix.scan(child, loc.Child(tokens...), base, resource)
	})
}

func (ix *Index) addAnchor(table map[string]Location, base, name string, loc Location) {
	key := base + "#" + name
	if _, exists := table[key]; !exists {
		table[key] = loc
	}
}

// addDocument registers an externally resolved document under uri.
func (ix *Index) addDocument(uri string, node jsonschema.Node) Location {
	loc := Location{Doc: uri}
	ix.docs[uri] = node
	if _, exists := ix.resources[uri]; !exists {
		ix.resources[uri] = loc
	}
	ix.scan(node, loc, uri, loc)
	return loc
}
