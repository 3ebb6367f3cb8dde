// Package naming derives stable, collision-free identifiers for generated
// declarations.
//
// A [Registry] issues one name per schema pointer and never renames it. Name
// sources are tried in order: an explicit hint, a caller-supplied [Hook],
// the schema's title, and finally a name synthesized from the nearest named
// ancestor plus the remaining path segments:
//
//	ancestor "CallTask", path properties/with/properties/asyncapi
//	-> "CallTaskAsyncapi" (shortest suffix)
//	-> "CallTaskWithAsyncapi" (full path, when the shorter name is taken)
//	-> "CallTaskWithAsyncapi2" (numeric suffix, when both are taken)
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
