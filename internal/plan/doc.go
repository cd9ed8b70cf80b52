// Package plan implements the metadata resolver. It consumes a raw command
// definition from the config model and produces an immutable Plan: the
// ordered list of argument specs that fixes, for every instance of the
// shape, which tokens each field contributes and in what order.
//
// Resolution is strict. Defects in the declaration itself (no executable,
// duplicated annotations, a flag without a flag string, a type with no
// string conversion) surface here as ConfigurationError values, before any
// command is ever built.
package plan
