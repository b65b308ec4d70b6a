package typewright

import "github.com/archwright/typewright/ast"

// Pipeline runs an ordered list of steps in sequence, exactly like nested
// And, but exposes registration points ("around" hooks) that wrap the
// whole run rather than just one step. Middleware built in package
// integration is layered here.
type Pipeline struct {
	steps  []Step
	around []func(next func(Result) Result) func(Result) Result
}

// NewPipeline builds a Pipeline running steps in order.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Around registers a wrapper around the whole pipeline call. Multiple
// registrations compose innermost-first: the last Around call registered
// is the outermost wrapper, matching how each new layer wraps what came
// before it.
func (p *Pipeline) Around(fn func(next func(Result) Result) func(Result) Result) *Pipeline {
	p.around = append(p.around, fn)
	return p
}

func (p *Pipeline) run(r Result) Result {
	for _, s := range p.steps {
		r = s.Call(r)
		if r.Halted() {
			return r
		}
	}
	return r
}

// Call runs the pipeline's steps in order, short-circuiting on the first
// Halt, wrapped by any registered Around hooks.
func (p *Pipeline) Call(r Result) Result {
	next := p.run
	for i := 0; i < len(p.around); i++ {
		next = p.around[i](next)
	}
	return next(r)
}

// AST returns a pipeline node listing every step's AST as a child, in
// order.
func (p *Pipeline) AST() *ast.Node {
	children := make([]*ast.Node, len(p.steps))
	for i, s := range p.steps {
		children[i] = s.AST()
	}
	return ast.WithChildren(ast.TagPipeline, nil, children...)
}

// Type wraps this Pipeline for chaining, e.g. NewPipeline(a, b).Type().
func (p *Pipeline) Type() *Type { return Of(p) }
