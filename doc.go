// Package jsonschematozod generates Zod validator modules from JSON Schema
// documents.
//
// The generator handles documents whose references point anywhere: into
// the same document by JSON Pointer, $id or $anchor, into other documents,
// and through the dynamic scope with $dynamicRef and $recursiveRef. Every
// referenced schema becomes exactly one named declaration. Declarations
// that refer to each other in cycles are emitted with deferred evaluation,
// and all declarations are ordered so that each follows what it depends
// on.
//
// # Packages
//
//   - generator: the public API (Generator, GenerateWithOptions)
//   - jsonschema: the schema document model and JSON/YAML decoding
//   - zoderrors: structured error types
//
// # Quick Start
//
//	import "github.com/gabrielbryk/json-schema-to-zod-sub001/generator"
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("schema.json"),
//		generator.WithName("Pet"),
//		generator.WithTypeExport(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(result.Output)
//
// The json-schema-to-zod command wraps the same API:
//
//	json-schema-to-zod generate -name Pet -type schema.json > pet.ts
//	json-schema-to-zod mcp
package jsonschematozod
