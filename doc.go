// Command graphql-ir-compiler compiles GraphQL documents that load parts of their data on demand.
//
// About @match and @module
//
// A field returning a union or interface may be annotated with @match. Its selections are
// fragment spreads annotated with @module(name: "Component.js"), at most one per concrete type.
// At runtime the client asks the server which of the supported types the field resolved to and
// loads only the matching component together with its normalization artifact.
//
// About this tool
//
// The compiler parses documents against a schema into an intermediate representation and runs
// the match transform over every document in parallel. The output is the transformed documents,
// a manifest of all modules and match fields (yaml or json), or a dump of the IR.
//
// The packages under pkg can be used as a library: schema loads the type system, irparser builds
// the IR, compiler runs passes, matchtransform is the pass itself and manifest summarizes its output.
package main
