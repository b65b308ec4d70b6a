package typewright

import (
	"fmt"
	"reflect"

	"github.com/archwright/typewright/ast"
)

type hashMapStep struct{ keyStep, valStep Step }

func (s hashMapStep) Call(r Result) Result {
	v := r.Value()
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Map {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a hash"})
	}
	out := map[string]any{}
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		kr := s.keyStep.Call(Wrap(k))
		if kr.Halted() {
			return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: fmt.Sprintf("key %v: %s", k, errString(kr.Errors()))}, out)
		}
		vr := s.valStep.Call(Wrap(iter.Value().Interface()))
		if vr.Halted() {
			return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: fmt.Sprintf("%v: %s", k, errString(vr.Errors()))}, out)
		}
		out[fmt.Sprintf("%v", kr.Value())] = vr.Value()
	}
	return r.AsValid(out)
}

func (s hashMapStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagHashMap, map[string]any{"type": "HashMap"}, s.keyStep.AST(), s.valStep.AST())
}

// HashMap validates every entry of a map value against keyStep/valStep,
// stopping at the first failing entry and returning a single formatted
// error rather than aggregating every failure (contrast HashOfType).
// Go's map iteration order is randomized, so which entry is "first" is
// not reproducible across runs when more than one entry fails.
func HashMap(keyStep, valStep Step) *Type { return Of(hashMapStep{keyStep: keyStep, valStep: valStep}) }
