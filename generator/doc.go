// Package generator turns JSON Schema documents into Zod validator modules.
//
// The generator emits TypeScript source with one named declaration per
// referenced schema. Declarations are ordered so that every declaration is
// defined before it is used; references inside a reference cycle are
// deferred with z.lazy and the cyclic declarations are annotated
// z.ZodTypeAny.
//
// # Quick Start
//
// Generate a module using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("schema.json"),
//		generator.WithName("Config"),
//		generator.WithTypeExport(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Output)
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.Name = "Config"
//	g.Module = generator.ModuleCJS
//	result, _ := g.Generate(ctx, "schema.json")
//
// # How generation works
//
// A run walks the schema twice. The discovery walk assigns names to every
// referenced schema and records which declarations refer to which. The
// reference graph is then split into strongly connected components. The
// emission walk repeats the traversal with the same names and knows which
// references close a cycle. Those references become z.lazy(() => Name).
//
// Pointers, $id/$anchor targets, $dynamicRef and $recursiveRef are all
// resolved to one canonical location, so different spellings of the same
// target share a declaration.
//
// # Unions and intersections
//
// oneOf and anyOf become z.union, or z.discriminatedUnion when every member
// is an object with a distinct literal value for a shared required
// property. With StrictOneOf a oneOf is checked to match exactly one
// member. allOf branches that only add properties are merged into the
// object they extend; other branches become z.intersection.
//
// # Lifting
//
// With LiftInlineObjects, object schemas written inline under properties,
// items and composition keywords become named declarations of their own.
// Lifting never moves a schema that takes part in a cycle.
//
// # Issues
//
// References that cannot be resolved and formats with no translation are
// reported in GenerateResult.Issues. Unresolved references translate to
// z.any() (or z.unknown() with UnknownFallback). StrictMode turns warnings
// into an error.
package generator
