// Package entschema infers, combines, validates and exports schemas for
// loosely typed entities (ordered property bags read from CSV, JSON or YAML).
//
// - entity holds the value model (Entity, List, String, Integer, ...)
// - node holds the schema lattice: inference, Combine, IsSuperset, transform
//   and JSON Schema export
// - restrict holds the enumerated, numeric, string and format restrictions
// - format holds the coercion settings (date formats, truthy spellings, ...)
// - source reads entities out of JSON and YAML
//
// The root package carries the shared error model: every failed transform
// returns Violations, each one with a code, a translated message, the property
// path and the row it came from.
//
// Design policy:
// - Keep only the error model and paths in the root package.
// - Library packages never log; the CLI under cmd/entschema does.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema := node.InferSchema(reference, nil)
//	out, err := node.TransformAll(ctx, schema, records, nil)
//	if vs, ok := entschema.AsViolations(err); ok {
//		for _, v := range vs {
//			fmt.Println(v)
//		}
//	}
//	doc, err := node.ExportJSONSchema(schema)
package entschema
