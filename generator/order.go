package generator

import (
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/printer"
)

var conventions = map[Module]printer.Convention{
	ModuleESM:  printer.ESM,
	ModuleCJS:  printer.CJS,
	ModuleNone: printer.None,
}

// render lays out the ordered declarations in the configured module
// convention.
func (r *run) render(result *GenerateResult, emission *resolution) string {
	m := printer.Module{
		Convention:   conventions[r.gen.Module],
		Imports:      r.gen.Imports,
		Declarations: make([]printer.Declaration, 0, len(result.Declarations)),
	}
	for _, d := range result.Declarations {
		m.Declarations = append(m.Declarations, printer.Declaration{
			Name:      d.Name,
			Expr:      d.Expression,
			Annotated: d.Cyclic,
		})
	}

	if r.gen.Name == "" {
		// Unnamed output exports the root as the module value; a root
		// nothing else refers to is exported without a binding.
		m.Default = result.Name
		m.InlineDefault = !referenced(result.Name, result.Declarations)
	}

	if r.gen.TypeExport {
		root := result.GetDeclaration(result.Name)
		alias := &printer.TypeAlias{Name: root.Name, Type: "z.infer<typeof " + root.Name + ">"}
		if root.Cyclic {
			// z.infer of a z.ZodTypeAny binding is any.
			alias.Type = emission.decls[root.Name].schema.Type
		}
		m.TypeAlias = alias
	}
	return printer.Render(m)
}

func referenced(name string, decls []Declaration) bool {
	for _, d := range decls {
		for _, dep := range d.Dependencies {
			if dep == name {
				return true
			}
		}
	}
	return false
}
