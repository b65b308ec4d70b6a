package typewright

import (
	"fmt"
	"reflect"

	"github.com/archwright/typewright/ast"
)

type tupleStep struct{ elems []Step }

func (s tupleStep) Call(r Result) Result {
	v := r.Value()
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be an array"})
	}
	if rv.Len() != len(s.elems) {
		return r.AsHalt(Issue{Code: CodeShapeMismatch, Message: fmt.Sprintf("must have exactly %d elements", len(s.elems))})
	}
	out := make([]any, len(s.elems))
	errs := IndexErrors{}
	for i, step := range s.elems {
		res := step.Call(Wrap(rv.Index(i).Interface()))
		out[i] = res.Value()
		if res.Halted() {
			errs[i] = res.Errors()
		}
	}
	if len(errs) > 0 {
		return r.AsHalt(errs, out)
	}
	return r.AsValid(out)
}

func (s tupleStep) AST() *ast.Node {
	children := make([]*ast.Node, len(s.elems))
	for i, e := range s.elems {
		children[i] = e.AST()
	}
	return ast.WithChildren(ast.TagTuple, map[string]any{"type": "Tuple"}, children...)
}

// Tuple validates a fixed-length, positionally-typed sequence: length
// must equal len(elems) exactly, and each position is checked against its
// own step, with failures aggregated by index.
func Tuple(elems ...Step) *Type { return Of(tupleStep{elems: elems}) }
