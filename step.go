package typewright

import (
	"fmt"

	"github.com/archwright/typewright/ast"
)

// Step is the single operation every leaf and combinator implements:
// Call(Result) Result, plus the AST node describing its own structure.
// There is no class hierarchy: And, Or, Not, the compound types and every
// leaf are concrete structs satisfying this one interface.
type Step interface {
	Call(Result) Result
	AST() *ast.Node
}

// StepFunc adapts a plain function to the Step interface for steps with no
// interesting AST shape beyond a single leaf tag; most leaves in leaves.go
// instead define their own struct so they can carry AST attrs.
type StepFunc struct {
	Fn   func(Result) Result
	Node *ast.Node
}

func (f StepFunc) Call(r Result) Result { return f.Fn(r) }
func (f StepFunc) AST() *ast.Node        { return f.Node }

// Type wraps a Step with chain-building sugar for the operator-style
// composition (sequence, union, negation, default, ...) the underlying
// algebra supports. Go has no operator overloading, so each becomes a
// method that returns a new, independent Type — published Types are never
// mutated in place; every chain method allocates a fresh wrapper around a
// fresh composite Step.
type Type struct {
	step Step
	name string
}

// Of wraps an existing Step so it can be chained with Type's sugar.
func Of(s Step) *Type { return &Type{step: s} }

// Step returns the underlying Step, e.g. to embed this Type as a field
// type inside Array/Hash/Tuple.
func (t *Type) Step() Step { return t.step }

// Call implements Step by delegating to the wrapped step.
func (t *Type) Call(r Result) Result { return t.step.Call(r) }

// AST implements Step by delegating to the wrapped step.
func (t *Type) AST() *ast.Node { return t.step.AST() }

// Name returns the display name assigned by Freeze, or "" if unfrozen.
func (t *Type) Name() string { return t.name }

// Resolve wraps value (or Undefined, when omitted) and calls the step.
func (t *Type) Resolve(value ...any) Result {
	v := Undefined
	if len(value) > 0 {
		v = value[0]
	}
	return t.Call(Wrap(v))
}

// Parse unwraps a Valid Result's value, or raises the structured errors as
// an error. Resolve never raises; Parse always does on failure.
func (t *Type) Parse(value any) (any, error) {
	res := t.Resolve(value)
	if res.Halted() {
		return nil, &ParseError{Value: res.Value(), Errors: res.Errors()}
	}
	return res.Value(), nil
}

// ParseError is the domain-specific error Parse raises on Halt, carrying
// the structured errors payload.
type ParseError struct {
	Value  any
	Errors any
}

func (e *ParseError) Error() string {
	if err, ok := e.Errors.(error); ok {
		return fmt.Sprintf("typewright: parse failed: %s", err.Error())
	}
	return fmt.Sprintf("typewright: parse failed: %v", e.Errors)
}

// Unwrap exposes the underlying errors payload via errors.As when it is
// itself an error (Issue/Issues/FieldErrors/IndexErrors).
func (e *ParseError) Unwrap() error {
	if err, ok := e.Errors.(error); ok {
		return err
	}
	return nil
}

// Metadata computes this Type's merged AST metadata.
func (t *Type) Metadata() ast.Metadata { return ast.MergeMetadata(t.AST()) }
