package naming

import (
	"sort"
	"strconv"
)

// Hook returns a preferred name for the schema at pointer, or "" to decline.
// path holds the reference tokens from the nearest named ancestor.
type Hook func(pointer string, path []string) string

// Candidate describes the schema a name is requested for.
type Candidate struct {
	// Hint is an explicit name chosen by the caller (e.g. the configured
	// top-level name). It wins over every other source.
	Hint string
	// Title is the schema's "title" keyword.
	Title string
	// Ancestor is the name of the nearest named ancestor, empty at the top level.
	Ancestor string
	// Path holds the reference tokens from Ancestor (or the document root) to the schema.
	Path []string
}

// Registry issues names for schema pointers. A name, once issued, is
// permanent for that pointer.
type Registry struct {
	byPointer map[string]string
	used      map[string]string
	hook      Hook
}

// NewRegistry creates an empty registry. The identifier "z" is reserved for
// the validator library import.
func NewRegistry(hook Hook) *Registry {
	r := &Registry{
		byPointer: make(map[string]string),
		used:      make(map[string]string),
		hook:      hook,
	}
	r.used["z"] = ""
	return r
}

// Reserve records name for pointer, as issued by an earlier walk.
// It is a no-op when either side is already taken.
func (r *Registry) Reserve(name, pointer string) {
	if _, ok := r.byPointer[pointer]; ok {
		return
	}
	if _, ok := r.used[name]; ok {
		return
	}
	r.byPointer[pointer] = name
	r.used[name] = pointer
}

// Seed reserves every name issued by other.
func (r *Registry) Seed(other *Registry) {
	for _, ptr := range other.Pointers() {
		r.Reserve(other.byPointer[ptr], ptr)
	}
}

// Lookup returns the name issued for pointer.
func (r *Registry) Lookup(pointer string) (string, bool) {
	name, ok := r.byPointer[pointer]
	return name, ok
}

// Owner returns the pointer that holds name.
func (r *Registry) Owner(name string) (string, bool) {
	ptr, ok := r.used[name]
	return ptr, ok && ptr != ""
}

// Pointers returns every named pointer, sorted.
func (r *Registry) Pointers() []string {
	out := make([]string, 0, len(r.byPointer))
	for p := range r.byPointer {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Issue returns the name for pointer, creating one from c on first use.
func (r *Registry) Issue(pointer string, c Candidate) string {
	if name, ok := r.byPointer[pointer]; ok {
		return name
	}
	name := r.choose(pointer, c)
	r.byPointer[pointer] = name
	r.used[name] = pointer
	return name
}

// choose picks a new name for pointer. A title is used when no name issued
// so far holds it: uniqueness is first-come in issue order, not checked
// across the whole document, so a later schema with the same title falls
// through to a synthesized name. Issue order follows the walk, which is
// deterministic for a given document.
func (r *Registry) choose(pointer string, c Candidate) string {
	if c.Hint != "" {
		return r.withSuffix(Sanitize(c.Hint))
	}
	if r.hook != nil {
		if hooked := r.hook(pointer, c.Path); hooked != "" {
			return r.withSuffix(Sanitize(hooked))
		}
	}
	if c.Title != "" {
		if title := Sanitize(ToPascalCase(c.Title)); r.free(title) {
			return title
		}
	}

	segments := Segments(c.Path)
	if len(segments) == 0 {
		base := c.Ancestor
		if base == "" {
			base = Placeholder
		}
		return r.withSuffix(Sanitize(base))
	}
	var full string
	for k := 1; k <= len(segments); k++ {
		full = Sanitize(c.Ancestor + pascalJoin(segments[len(segments)-k:]))
		if r.free(full) {
			return full
		}
	}
	return r.withSuffix(full)
}

func (r *Registry) free(name string) bool {
	_, taken := r.used[name]
	return !taken
}

// withSuffix returns base, or base followed by the first free number from 2.
func (r *Registry) withSuffix(base string) string {
	if r.free(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if r.free(candidate) {
			return candidate
		}
	}
}

func pascalJoin(segments []string) string {
	var out string
	for _, s := range segments {
		out += ToPascalCase(s)
	}
	return out
}

// segmentAliases maps schema keywords found in paths to the word used in
// synthesized names. An empty alias drops the segment.
var segmentAliases = map[string]string{
	"properties":        "",
	"$defs":             "",
	"definitions":       "",
	"allOf":             "",
	"dependentSchemas":  "",
	"patternProperties": "",
	"then":              "",
	"else":              "",
	"if":                "",
	"items":             "Item",
	"prefixItems":       "Item",
	"additionalItems":   "Item",
	"contains":          "Item",
	"unevaluatedItems":  "Item",
	"anyOf":             "Option",
	"oneOf":             "Option",
	"not":               "Not",
	"propertyNames":     "Key",

	"additionalProperties":  "Value",
	"unevaluatedProperties": "Value",
}

// Segments converts reference tokens into name segments, dropping or
// renaming schema keywords.
func Segments(path []string) []string {
	out := make([]string, 0, len(path))
	afterContainer := false
	for _, tok := range path {
		alias, isKeyword := segmentAliases[tok]
		// A token directly under "properties" is a property name, even
		// when it spells a keyword.
		if afterContainer || !isKeyword {
			out = append(out, tok)
			afterContainer = false
			continue
		}
		if alias != "" {
			out = append(out, alias)
		}
		afterContainer = isNameContainer(tok)
	}
	return out
}

func isNameContainer(tok string) bool {
	switch tok {
	case "properties", "$defs", "definitions", "patternProperties", "dependentSchemas":
		return true
	}
	return false
}
