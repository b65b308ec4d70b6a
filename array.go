package typewright

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/archwright/typewright/ast"
)

type arrayStep struct {
	elem       Step
	concurrent bool
	workers    int
}

func (s arrayStep) Call(r Result) Result {
	v := r.Value()
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be an array"})
	}
	if s.concurrent {
		return s.callConcurrent(r, rv)
	}
	n := rv.Len()
	out := make([]any, n)
	errs := IndexErrors{}
	for i := 0; i < n; i++ {
		res := s.elem.Call(Wrap(rv.Index(i).Interface()))
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

// callConcurrent validates every element on a worker pool, assembling
// results positionally (by index) rather than in completion order, so the
// output is identical to the sequential path regardless of scheduling. A
// panicking element step is recovered and reported as a value_mismatch
// for that index rather than crashing the whole validation.
func (s arrayStep) callConcurrent(r Result, rv reflect.Value) Result {
	n := rv.Len()
	out := make([]any, n)
	errs := make([]any, n)
	failed := make([]bool, n)
	if n == 0 {
		return r.AsValid(out)
	}
	workers := s.workers
	if workers <= 0 || workers > n {
		workers = n
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if p := recover(); p != nil {
					failed[i] = true
					errs[i] = Issue{Code: CodeValueMismatch, Message: fmt.Sprintf("panic: %v", p)}
				}
			}()
			res := s.elem.Call(Wrap(rv.Index(i).Interface()))
			out[i] = res.Value()
			if res.Halted() {
				failed[i] = true
				errs[i] = res.Errors()
			}
		}(i)
	}
	wg.Wait()
	agg := IndexErrors{}
	for i, f := range failed {
		if f {
			agg[i] = errs[i]
		}
	}
	if len(agg) > 0 {
		return r.AsHalt(agg, out)
	}
	return r.AsValid(out)
}

func (s arrayStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagArray, map[string]any{"type": "Array", "concurrent": s.concurrent}, s.elem.AST())
}

// Array validates a slice/array value element-wise against elem,
// aggregating every failing index into an IndexErrors rather than
// stopping at the first one.
func Array(elem Step) *Type { return Of(arrayStep{elem: elem}) }

// Concurrent switches an Array to validate its elements on a worker pool
// instead of sequentially. workers bounds pool size; 0 (the default) uses
// one goroutine per element.
func (t *Type) Concurrent(workers ...int) *Type {
	as, ok := t.step.(arrayStep)
	if !ok {
		return t
	}
	as.concurrent = true
	if len(workers) > 0 {
		as.workers = workers[0]
	}
	return Of(as)
}
