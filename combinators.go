package typewright

import (
	"sync"

	"github.com/archwright/typewright/ast"
)

// ---- And: sequence, short-circuit on halt ----

type andStep struct{ a, b Step }

func (s andStep) Call(r Result) Result {
	left := s.a.Call(r)
	if left.Halted() {
		return left
	}
	return s.b.Call(left)
}
func (s andStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagAnd, nil, s.a.AST(), s.b.AST())
}

// And sequences a then b: if a.Call(r) is Valid, b runs on the result;
// otherwise the Halt from a is returned unchanged.
func And(a, b Step) *Type { return Of(andStep{a: a, b: b}) }

// Then is sugar for And(t, other) as a chain method.
func (t *Type) Then(other Step) *Type { return And(t.step, other) }

// ---- Or: try a, then b, aggregating errors on double failure ----

type orStep struct{ a, b Step }

func (s orStep) Call(r Result) Result {
	left := s.a.Call(r)
	if !left.Halted() {
		return left
	}
	right := s.b.Call(r)
	if !right.Halted() {
		return right
	}
	return r.AsHalt(concatErrors(left.Errors(), right.Errors()), right.Value())
}
func (s orStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagOr, nil, s.a.AST(), s.b.AST())
}

// Or tries a; if Valid, returns it unchanged (left bias). Otherwise tries
// b; if Valid, returns it. If both halt, the resulting errors is the
// ordered concatenation of both branches' errors.
func Or(a, b Step) *Type { return Of(orStep{a: a, b: b}) }

// Union is an alias for Or, matching the vocabulary schema unions use for
// combining hash variants built from the same primitive.
func Union(a, b Step) *Type { return Or(a, b) }

func concatErrors(a, b any) Issues {
	out := Issues{}
	out = appendIssue(out, a)
	out = appendIssue(out, b)
	return out
}

func appendIssue(out Issues, v any) Issues {
	switch e := v.(type) {
	case nil:
		return out
	case Issue:
		return append(out, e)
	case Issues:
		return append(out, e...)
	case error:
		return append(out, Issue{Code: CodeValueMismatch, Message: e.Error()})
	default:
		return out
	}
}

// ---- Not: invert success ----

type notStep struct {
	inner Step
	err   *Issue
}

func (s notStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.Halted() {
		return r.AsValid(r.Value())
	}
	if s.err != nil {
		return r.AsHalt(*s.err)
	}
	return r.AsHalt(Issue{Code: CodeValueMismatch, Message: "must not match"})
}
func (s notStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagNot, nil, s.inner.AST())
}

// Not inverts a's success: Valid becomes Halt(err), Halt becomes Valid.
// err is optional; when omitted a generic message is used.
func Not(a Step, err ...Issue) *Type {
	n := notStep{inner: a}
	if len(err) > 0 {
		n.err = &err[0]
	}
	return Of(n)
}

// ---- Defer: lazy reference for recursive types ----

type deferStep struct {
	thunk func() Step
	once  sync.Once
	cell  Step
}

func (s *deferStep) resolve() Step {
	s.once.Do(func() { s.cell = s.thunk() })
	return s.cell
}

func (s *deferStep) Call(r Result) Result { return s.resolve().Call(r) }

// AST deliberately emits a leaf `any` node rather than recursing into the
// resolved step, to keep AST traversals finite over recursive types.
func (s *deferStep) AST() *ast.Node { return ast.New(ast.TagAny, map[string]any{"deferred": true}) }

// Defer builds a lazily-resolved step: thunk runs (and memoizes, via
// sync.Once) on first Call, not at construction — the mechanism that lets
// a recursive type's thunk close over the type currently being built.
// The returned step may be called re-entrantly once resolved; thunk itself
// is only ever invoked once.
func Defer(thunk func() Step) *Type { return Of(&deferStep{thunk: thunk}) }
