// Package printer lays out generated declarations as module source text.
//
// Rendering is a pure function of its input: the same [Module] always
// yields the same string.
package printer

import "strings"

// Convention selects how the module exposes its declarations.
type Convention int

const (
	// ESM uses import and export statements.
	ESM Convention = iota
	// CJS uses require and a module.exports assignment.
	CJS
	// None emits plain statements.
	None
)

// Declaration is one "const Name = Expr;" statement.
type Declaration struct {
	Name string
	Expr string
	// Annotated adds ": z.ZodTypeAny" to the binding.
	Annotated bool
}

// TypeAlias is an "export type Name = Type;" statement.
type TypeAlias struct {
	Name string
	Type string
}

// Module is everything the printer needs to lay out one output file.
type Module struct {
	Convention Convention
	// Imports emits the zod import statement. None never imports.
	Imports      bool
	Declarations []Declaration
	// Default names the declaration exported as the module value. When
	// empty every declaration is exported by name.
	Default string
	// InlineDefault renders the default declaration as the exported
	// expression itself instead of a binding plus an export.
	InlineDefault bool
	// TypeAlias is emitted after the declarations under ESM.
	TypeAlias *TypeAlias
}

// Render returns the module text. ESM and CJS output ends with a newline.
func Render(m Module) string {
	var lines []string

	if m.Imports {
		switch m.Convention {
		case ESM:
			lines = append(lines, `import { z } from "zod";`, "")
		case CJS:
			lines = append(lines, `const { z } = require("zod");`, "")
		}
	}

	var inline *Declaration
	for i := range m.Declarations {
		d := m.Declarations[i]
		if m.InlineDefault && d.Name == m.Default && m.Convention != None {
			inline = &m.Declarations[i]
			continue
		}
		lines = append(lines, statement(m, d))
	}

	switch m.Convention {
	case ESM:
		switch {
		case inline != nil:
			lines = append(lines, "export default "+inline.Expr+";")
		case m.Default != "":
			lines = append(lines, "export default "+m.Default+";")
		}
		if m.TypeAlias != nil {
			lines = append(lines, "export type "+m.TypeAlias.Name+" = "+m.TypeAlias.Type+";")
		}
	case CJS:
		switch {
		case inline != nil:
			lines = append(lines, "module.exports = "+inline.Expr+";")
		case m.Default != "":
			lines = append(lines, "module.exports = "+m.Default+";")
		default:
			names := make([]string, len(m.Declarations))
			for i, d := range m.Declarations {
				names[i] = d.Name
			}
			lines = append(lines, "module.exports = { "+strings.Join(names, ", ")+" };")
		}
	}

	out := strings.Join(lines, "\n")
	if m.Convention != None {
		out += "\n"
	}
	return out
}

func statement(m Module, d Declaration) string {
	var b strings.Builder
	if m.Convention == ESM && m.Default == "" {
		b.WriteString("export ")
	}
	b.WriteString("const ")
	b.WriteString(d.Name)
	if d.Annotated && m.Convention != CJS {
		b.WriteString(": z.ZodTypeAny")
	}
	b.WriteString(" = ")
	b.WriteString(d.Expr)
	b.WriteString(";")
	return b.String()
}
