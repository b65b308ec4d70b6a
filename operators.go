package typewright

import (
	"github.com/archwright/typewright/ast"
)

// ---- default(v): (Nothing >> Static(v)) | self ----

type defaultStep struct {
	self  Step
	value any
}

func (s defaultStep) Call(r Result) Result {
	branch := andStep{a: nothingStep{}, b: staticStep{v: s.value}}
	combined := orStep{a: branch, b: s.self}
	return combined.Call(r)
}

// AST wraps the self child directly rather than the desugared And/Or
// tree; the JSON-Schema visitor's or-with-one-default-branch flattening
// rule depends on this child being the wrapped type, not the Nothing
// branch.
func (s defaultStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagDefault, map[string]any{"default": s.value}, s.self.AST())
}

// Default returns v when the input is Undefined, otherwise delegates to
// the receiver unchanged.
func (t *Type) Default(v any) *Type { return Of(defaultStep{self: t.step, value: v}) }

// ---- nullable / optional: Nil | self ----

// Nullable accepts nil in addition to whatever the receiver accepts.
func (t *Type) Nullable() *Type { return Or(nilStep{}, t.step) }

// Optional is an alias for Nullable.
func (t *Type) Optional() *Type { return t.Nullable() }

// ---- present: require a non-empty value before continuing ----

// RequirePresent sequences the Present leaf before the receiver, so a
// caller gets the presence error rather than falling through to whatever
// the receiver would otherwise report on Undefined/nil/empty input.
func (t *Type) RequirePresent() *Type { return And(presentStep{}, t.step) }

// ---- transform(target_type, fn): unconditional mapping ----

type transformStep struct {
	inner      Step
	targetType string
	fn         func(any) any
}

func (s transformStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.Halted() {
		return res
	}
	return res.AsValid(s.fn(res.Value()))
}
func (s transformStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagTransform, map[string]any{"target_type": s.targetType, "type": s.targetType}, s.inner.AST())
}

// Transform applies fn unconditionally once the receiver is Valid,
// recording targetType in metadata. Typically used as one alternative
// inside an Or, e.g. String().Transform("Integer", toInt).
func (t *Type) Transform(targetType string, fn func(any) any) *Type {
	return Of(transformStep{inner: t.step, targetType: targetType, fn: fn})
}

// ---- check(err, predicate) ----

type checkStep struct {
	inner     Step
	err       Issue
	predicate func(any) bool
}

func (s checkStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.Halted() {
		return res
	}
	if s.predicate(res.Value()) {
		return res
	}
	return res.AsHalt(s.err)
}
func (s checkStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagStep, map[string]any{"check": true}, s.inner.AST())
}

// Check runs predicate against the receiver's validated value; Valid
// unchanged, or Halt with err.
func (t *Type) Check(err Issue, predicate func(any) bool) *Type {
	return Of(checkStep{inner: t.step, err: err, predicate: predicate})
}

// ---- constructor(cls, factory, fn?) ----

type constructorStep struct {
	inner Step
	fn    func(any) (any, error)
}

func (s constructorStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.Halted() {
		return res
	}
	out, err := s.fn(res.Value())
	if err != nil {
		return res.AsHalt(Issue{Code: CodeCoercionFailure, Message: err.Error(), Cause: err})
	}
	return res.AsValid(out)
}
func (s constructorStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagConstructor, nil, s.inner.AST())
}

// Constructor applies fn to the receiver's validated value, mapping to a
// new Go value or a coercion_failure Halt. See constructor.go for the
// mapstructure-backed struct-binding convenience built on this.
func (t *Type) Constructor(fn func(any) (any, error)) *Type {
	return Of(constructorStep{inner: t.step, fn: fn})
}

// ---- coerce(matcher, fn) ----

type coerceStep struct {
	m  Matcher
	fn func(any) any
}

func (s coerceStep) Call(r Result) Result {
	if !s.m.Matches(r.Value()) {
		return r.AsHalt(Issue{Code: CodeCoercionFailure, Message: "can't be coerced"})
	}
	return r.AsValid(s.fn(r.Value()))
}
func (s coerceStep) AST() *ast.Node {
	return ast.New(ast.TagStep, map[string]any{"coerce": s.m.String()})
}

// Coerce applies fn when matcher matches the input value, otherwise halts
// with a coercion_failure.
func Coerce(m Matcher, fn func(any) any) *Type { return Of(coerceStep{m: m, fn: fn}) }

// ---- value(v): sequence with Value(v) ----

// Value sequences an exact-match check for v after the receiver.
func (t *Type) Value(v any) *Type { return t.Then(valueStep{v: v}) }

// ---- meta(mapping): no-op step contributing to computed metadata ----

type metadataStep struct{ attrs map[string]any }

func (s metadataStep) Call(r Result) Result { return r }
func (s metadataStep) AST() *ast.Node        { return ast.New(ast.TagMetadata, s.attrs) }

// Meta sequences a no-op Metadata step after the receiver so attrs merge
// into the computed metadata without affecting validation.
func (t *Type) Meta(attrs map[string]any) *Type { return t.Then(metadataStep{attrs: attrs}) }

// ---- halt(err?): force any Valid into a Halt ----

type haltStep struct {
	inner Step
	err   Issue
}

func (s haltStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.Halted() {
		return res
	}
	return res.AsHalt(s.err)
}
func (s haltStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagStep, map[string]any{"halt": true}, s.inner.AST())
}

// Halt turns any Valid result from the receiver into a Halt carrying err.
func (t *Type) Halt(err ...Issue) *Type {
	e := Issue{Code: CodeValueMismatch, Message: "halted"}
	if len(err) > 0 {
		e = err[0]
	}
	return Of(haltStep{inner: t.step, err: e})
}

// ---- not: negation as a chain method, mirroring the free Not() ----

// Not inverts the receiver's success; see the free function Not for the
// two-argument form used outside a chain.
func (t *Type) Not(err ...Issue) *Type { return Not(t.step, err...) }

// ---- or / and as chain methods ----

// Or unions the receiver with other, left-biased.
func (t *Type) Or(other Step) *Type { return Or(t.step, other) }
