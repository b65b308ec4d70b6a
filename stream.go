package typewright

import (
	"context"
	"reflect"

	"github.com/archwright/typewright/ast"
)

// Handle is the pull-based cursor a Stream step produces: calling a
// Stream's step never iterates anything itself, it only wraps the source
// and returns a Handle for the caller to drive with Next.
type Handle struct {
	elem   Step
	source reflect.Value
	idx    int
}

// Next validates and returns the next element, or (_, false) once the
// source is exhausted. A failing element does not stop iteration — the
// caller decides whether to keep pulling after a Halt. A Handle is
// single-pass: once exhausted it cannot be restarted.
func (h *Handle) Next(ctx context.Context) (Result, bool) {
	if err := ctx.Err(); err != nil {
		return Wrap(Undefined).AsHalt(Issue{Code: CodeValueMismatch, Message: err.Error()}), true
	}
	if h.idx >= h.source.Len() {
		return Result{}, false
	}
	item := h.source.Index(h.idx).Interface()
	h.idx++
	return h.elem.Call(Wrap(item)), true
}

type streamStep struct{ elem Step }

func (s streamStep) Call(r Result) Result {
	v := r.Value()
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a stream source"})
	}
	return r.AsValid(&Handle{elem: s.elem, source: rv})
}

func (s streamStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagStream, map[string]any{"type": "Stream"}, s.elem.AST())
}

// Stream wraps a slice/array source into a lazily-pulled sequence: Call
// only checks that the source is a slice or array (halting otherwise) and
// validates no element itself; it produces a *Handle whose Next method
// validates one element at a time against elem on demand.
func Stream(elem Step) *Type { return Of(streamStep{elem: elem}) }
