package refs

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/zoderrors"
)

// Target is a resolved reference.
type Target struct {
	Location Location
	Node     jsonschema.Node
}

// Scope is the dynamic scope of a walk: the base URIs of the resources
// entered so far, outermost first.
type Scope []string

// Enter returns the scope extended by uri. The receiver is not modified.
func (s Scope) Enter(uri string) Scope {
	if len(s) > 0 && s[len(s)-1] == uri {
		return s
	}
	out := make(Scope, len(s), len(s)+1)
	copy(out, s)
	return append(out, uri)
}

// Resolve resolves a $ref value found at from.
func (ix *Index) Resolve(ref string, from Location) (Target, error) {
	uri, fragment, err := ix.split(ref, from)
	if err != nil {
		return Target{}, err
	}

	resource, err := ix.resource(uri, ref)
	if err != nil {
		return Target{}, err
	}

	var loc Location
	switch {
	case fragment == "":
		loc = resource
	case strings.HasPrefix(fragment, "/"):
		if _, err := jsonschema.ParsePointer(fragment); err != nil {
			return Target{}, &zoderrors.ReferenceError{Ref: ref, RefType: "local", Cause: err}
		}
		loc = Location{Doc: resource.Doc, Pointer: resource.Pointer + fragment}
	default:
		anchorLoc, ok := ix.anchors[uri+"#"+fragment]
		if !ok {
			return Target{}, &zoderrors.ReferenceError{Ref: ref, RefType: "anchor", Message: "no $anchor named " + fragment}
		}
		loc = anchorLoc
	}

	node, ok := ix.Node(loc)
	if !ok || !jsonschema.IsSchema(node) {
		return Target{}, &zoderrors.ReferenceError{Ref: ref, RefType: refType(uri, from), Message: "target not found"}
	}
	return Target{Location: loc, Node: node}, nil
}

// ResolveDynamic resolves a $dynamicRef found at from. When the fragment
// names a dynamic anchor, the outermost resource in scope declaring the
// same $dynamicAnchor wins over the static target.
func (ix *Index) ResolveDynamic(ref string, from Location, scope Scope) (Target, error) {
	static, err := ix.Resolve(ref, from)

	name := fragmentOf(ref)
	if name == "" || strings.HasPrefix(name, "/") {
		return static, err
	}
	if err == nil {
		obj, _ := static.Node.(*jsonschema.Object)
		if anchor, _ := obj.String("$dynamicAnchor"); anchor != name {
			// Bound to a plain $anchor: behaves like $ref.
			return static, nil
		}
	}

	for _, uri := range scope {
		if loc, ok := ix.dynamic[uri+"#"+name]; ok {
			node, _ := ix.Node(loc)
			return Target{Location: loc, Node: node}, nil
		}
	}
	if err != nil {
		return Target{}, &zoderrors.ReferenceError{Ref: ref, RefType: "dynamic", Message: "no $dynamicAnchor named " + name + " in scope", Cause: err}
	}
	return static, nil
}

// ResolveRecursive resolves a $recursiveRef found at from: the outermost
// resource in scope whose root sets $recursiveAnchor, or else the root of
// the resource enclosing from.
func (ix *Index) ResolveRecursive(from Location, scope Scope) (Target, error) {
	for _, uri := range scope {
		loc, ok := ix.resources[uri]
		if ok && ix.recursive[loc] {
			node, _ := ix.Node(loc)
			return Target{Location: loc, Node: node}, nil
		}
	}
	root := ix.ResourceRoot(from)
	node, ok := ix.Node(root)
	if !ok {
		return Target{}, &zoderrors.ReferenceError{Ref: "#", RefType: "recursive", Message: "enclosing resource not found"}
	}
	return Target{Location: root, Node: node}, nil
}

// split resolves ref against the base in effect at from and returns the
// absolute resource URI and the decoded fragment.
func (ix *Index) split(ref string, from Location) (string, string, error) {
	base := ix.BaseOf(from)
	if strings.HasPrefix(ref, "#") {
		return stripFragment(base), decodeFragment(ref[1:]), nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", &zoderrors.ReferenceError{Ref: ref, RefType: "local", Message: "malformed reference", Cause: err}
	}
	resolved := resolveURI(base, ref)
	return stripFragment(resolved), u.Fragment, nil
}

// resource returns the location of the resource named by uri, loading it
// through the resolver when it is not known yet.
func (ix *Index) resource(uri, ref string) (Location, error) {
	if loc, ok := ix.resources[uri]; ok {
		return loc, nil
	}
	if err, failed := ix.failed[uri]; failed {
		return Location{}, err
	}
	if ix.resolver == nil {
		err := &zoderrors.ReferenceError{Ref: ref, RefType: kindOfURI(uri), Message: "unknown resource " + uri}
		ix.failed[uri] = err
		return Location{}, err
	}

	node, err := ix.resolver(uri)
	if err == nil && !jsonschema.IsSchema(node) {
		err = fmt.Errorf("resolver returned no schema for %s", uri)
	}
	if err != nil {
		refErr := &zoderrors.ReferenceError{Ref: ref, RefType: kindOfURI(uri), Message: "resolving " + uri, Cause: err}
		ix.failed[uri] = refErr
		return Location{}, refErr
	}
	return ix.addDocument(uri, node), nil
}

func refType(uri string, from Location) string {
	if uri == "" || uri == from.Doc {
		return "local"
	}
	return kindOfURI(uri)
}

func kindOfURI(uri string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return "http"
	}
	return "file"
}

func resolveURI(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if base == "" {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return r.String()
	}
	return b.ResolveReference(r).String()
}

func stripFragment(uri string) string {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}

func fragmentOf(uri string) string {
	i := strings.IndexByte(uri, '#')
	if i < 0 {
		return ""
	}
	return decodeFragment(uri[i+1:])
}

func decodeFragment(fragment string) string {
	if decoded, err := url.PathUnescape(fragment); err == nil {
		return decoded
	}
	return fragment
}
