package graph

// References returns the names from known that occur in src as whole
// identifiers, in order of first occurrence. String and template literal
// contents, member accesses (".name") and object keys ("name:") are not
// references.
func References(src string, known map[string]bool) []string {
	var out []string
	seen := make(map[string]bool)

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			i = skipString(src, i)
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			if !known[word] || seen[word] {
				continue
			}
			if start > 0 && src[start-1] == '.' {
				continue
			}
			if followedByColon(src, i) {
				continue
			}
			seen[word] = true
			out = append(out, word)
		case isDigit(c):
			// Skip numeric literals so "1e5" never yields "e5".
			for i < len(src) && (isIdentPart(src[i]) || src[i] == '.') {
				i++
			}
		default:
			i++
		}
	}
	return out
}

// InferEdges adds an edge from each declaration to every other declared
// name its text mentions.
func InferEdges(g *Graph, texts map[string]string) {
	known := make(map[string]bool, len(texts))
	for name := range texts {
		known[name] = true
	}
	for _, name := range g.Nodes() {
		text, ok := texts[name]
		if !ok {
			continue
		}
		for _, ref := range References(text, known) {
			g.AddEdge(name, ref)
		}
	}
}

// skipString returns the index just past the literal that starts at i.
func skipString(src string, i int) int {
	quote := src[i]
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(src)
}

func followedByColon(src string, i int) bool {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n') {
		i++
	}
	return i < len(src) && src[i] == ':'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
