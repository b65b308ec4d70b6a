package typewright

import (
	"fmt"
	"reflect"

	"github.com/archwright/typewright/ast"
)

// ---- Any: identity ----

type anyStep struct{}

func (anyStep) Call(r Result) Result { return r }
func (anyStep) AST() *ast.Node        { return ast.New(ast.TagAny, nil) }

// Any is the identity step: always Valid, value unchanged.
func Any() *Type { return Of(anyStep{}) }

// ---- Static(v): always replace the value ----

type staticStep struct{ v any }

func (s staticStep) Call(r Result) Result { return r.AsValid(s.v) }
func (s staticStep) AST() *ast.Node {
	return ast.New(ast.TagStatic, map[string]any{"value": s.v, "default": s.v})
}

// Static always returns Valid(v) regardless of input value.
func Static(v any) *Type { return Of(staticStep{v: v}) }

// ---- Value(v): exact match via equality ----

type valueStep struct{ v any }

func (s valueStep) Call(r Result) Result {
	if reflect.DeepEqual(r.Value(), s.v) {
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodeValueMismatch, Message: fmt.Sprintf("must equal %v", s.v)})
}
func (s valueStep) AST() *ast.Node {
	return ast.New(ast.TagValue, map[string]any{"value": s.v, "const": s.v})
}

// ValueOf halts unless the value equals v exactly.
func ValueOf(v any) *Type { return Of(valueStep{v: v}) }

// ---- Match(m): polymorphic predicate ----

type matchStep struct{ m Matcher }

func (s matchStep) Call(r Result) Result {
	if s.m.Matches(r.Value()) {
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodeValueMismatch, Message: fmt.Sprintf("must match %s", s.m.String())})
}
func (s matchStep) AST() *ast.Node {
	return ast.New(ast.TagMatch, map[string]any{"matcher": s.m.String()})
}

// MatchOf builds a Match leaf from a Matcher.
func MatchOf(m Matcher) *Type { return Of(matchStep{m: m}) }

// ---- Nothing: matches only the Undefined sentinel ----

type nothingStep struct{}

func (nothingStep) Call(r Result) Result {
	if IsUndefined(r.Value()) {
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodePresence, Message: "must be undefined"})
}
func (nothingStep) AST() *ast.Node { return ast.New(ast.TagUndefined, nil) }

// Nothing matches only when value is the Undefined sentinel.
func Nothing() *Type { return Of(nothingStep{}) }

// ---- Nil: matches only nil ----

type nilStep struct{}

func (nilStep) Call(r Result) Result {
	if isNil(r.Value()) {
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be nil"})
}
func (nilStep) AST() *ast.Node { return ast.New(ast.TagStep, map[string]any{"type": "Nil"}) }

// Nil matches only nil/null.
func Nil() *Type { return Of(nilStep{}) }

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// ---- Present: fails on Undefined, nil, empty string, empty collection ----

type presentStep struct{}

func (presentStep) Call(r Result) Result {
	if isPresent(r.Value()) {
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodePresence, Message: "must be present"})
}
func (presentStep) AST() *ast.Node { return ast.New(ast.TagStep, map[string]any{"type": "Present"}) }

// Present halts for Undefined, nil, "", or any empty sequence/mapping, via
// a type switch over the shapes that can be empty.
func Present() *Type { return Of(presentStep{}) }

func isPresent(v any) bool {
	if IsUndefined(v) || isNil(v) {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() > 0
		default:
			return true
		}
	}
}

// ---- String/Integer/Float/Numeric: scalar type checks ----

type stringStep struct{}

func (stringStep) Call(r Result) Result {
	if s, ok := r.Value().(string); ok {
		return r.AsValid(s)
	}
	return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a string"})
}
func (stringStep) AST() *ast.Node { return ast.New(ast.TagStep, map[string]any{"type": "String"}) }

// String matches Go string values.
func String() *Type { return Of(stringStep{}) }

type integerStep struct{}

func (integerStep) Call(r Result) Result {
	switch r.Value().(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be an integer"})
}
func (integerStep) AST() *ast.Node { return ast.New(ast.TagStep, map[string]any{"type": "Integer"}) }

// Integer matches Go's signed and unsigned integer kinds.
func Integer() *Type { return Of(integerStep{}) }

type floatStep struct{}

func (floatStep) Call(r Result) Result {
	switch r.Value().(type) {
	case float32, float64:
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a float"})
}
func (floatStep) AST() *ast.Node { return ast.New(ast.TagStep, map[string]any{"type": "Float"}) }

// Float matches float32/float64.
func Float() *Type { return Of(floatStep{}) }

// Numeric matches either Integer or Float, exposing "Numeric" as its own
// merged base tag so rules can declare compatibility with either without
// listing both.
func Numeric() *Type {
	return Or(integerStep{}, floatStep{}).Meta(map[string]any{"type": "Numeric"})
}

// ---- Boolean: True | False ----

type booleanStep struct{}

func (booleanStep) Call(r Result) Result {
	if _, ok := r.Value().(bool); ok {
		return r.AsValid(r.Value())
	}
	return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a boolean"})
}
func (booleanStep) AST() *ast.Node { return ast.New(ast.TagBoolean, map[string]any{"type": "Boolean"}) }

// Boolean matches Go's bool directly; the type is already a closed
// two-value type, so there's no True | False union to build.
func Boolean() *Type { return Of(booleanStep{}) }

// ---- Interface(names...): structural capability check ----

type interfaceStep struct{ names []string }

func (s interfaceStep) Call(r Result) Result {
	v := r.Value()
	if v == nil {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must respond to " + joinNames(s.names)})
	}
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	for _, name := range s.names {
		if _, ok := rt.MethodByName(name); !ok {
			if rt.Kind() != reflect.Ptr {
				if pt := reflect.PtrTo(rt); pt != nil {
					if _, ok2 := pt.MethodByName(name); ok2 {
						continue
					}
				}
			}
			return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must respond to " + name})
		}
	}
	return r.AsValid(v)
}
func (s interfaceStep) AST() *ast.Node {
	return ast.New(ast.TagInterface, map[string]any{"methods": s.names})
}

// Interface is Valid iff value responds to every named method.
func Interface(names ...string) *Type { return Of(interfaceStep{names: names}) }

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
