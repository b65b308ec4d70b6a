// Package typewright is a combinator library for validating, coercing and
// reshaping arbitrary input data. Small steps — predicates, coercions,
// transforms, static values — compose with algebraic operators into larger
// types that produce either a typed value or a structured error tree.
//
// Overview
//   - Result: the two-variant value every Step consumes and returns —
//     Valid(value) or Halt(value, errors). See result.go.
//   - Step: the single-method contract (Call(Result) Result) every leaf
//     and combinator implements. See step.go.
//   - Leaves: Any, Static, Value, Match, Nil, Present, Boolean, Interface,
//     Nothing. See leaves.go.
//   - Combinators: And (sequence), Or (union), Not (negation), Defer
//     (lazy/recursive reference). See combinators.go.
//   - Compound types: Array, Tuple, Stream, Hash (schema + map mode),
//     HashMap, TaggedHash. See array.go, tuple.go, stream.go, hash.go,
//     hashmap.go, taggedhash.go.
//   - Rules: a registered policy facility in package rules, attached to a
//     type via Type.Rule. See rulesattach.go.
//   - AST/metadata: every step exposes AST() via package ast; package
//     jsonschema is the canonical AST consumer for draft-08 JSON Schema.
//
// File layout (roles)
//   - result.go: the Result sum type.
//   - step.go: the Step interface and the Type chain-building wrapper.
//   - leaves.go: zero/one-argument terminal steps.
//   - combinators.go: And/Or/Not/Defer.
//   - operators.go: Type's chain methods (Default/Nullable/RequirePresent/...).
//   - pipeline.go: ordered Pipeline with around-hooks.
//   - array.go/tuple.go/stream.go: sequence-shaped compound types.
//   - hash.go/hashmap.go/taggedhash.go: mapping-shaped compound types.
//   - rulesattach.go: wiring Type.Rule to package rules.
//   - constructor.go: the Constructor step (mapstructure-backed).
//   - freeze.go: the terminal freeze/name step.
//   - errors.go: Issue/Issues, the structured error-kind vocabulary.
//
// Example (quickstart)
//
//	name := typewright.String().Default("Mr")
//	person := typewright.Hash(
//	    typewright.HashField{Key: "title", Step: name},
//	    typewright.HashField{Key: "name", Step: typewright.String()},
//	).Freeze("Person")
//
//	res := person.Call(typewright.Wrap(map[string]any{"name": "Ismael"}))
//	if res.Valid() {
//	    fmt.Println(res.Value())
//	}
package typewright
