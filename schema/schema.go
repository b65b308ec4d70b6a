// Package schema is fluent sugar over typewright.Hash: declare fields one
// at a time instead of building the whole HashField slice up front, and
// optionally register before/after hooks that run around the whole
// schema rather than around one field.
package schema

import (
	"github.com/archwright/typewright"
	"github.com/archwright/typewright/ast"
)

// Builder accumulates fields and hooks for one Hash schema.
type Builder struct {
	fields []typewright.HashField
	before []func(map[string]any) map[string]any
	after  []func(map[string]any) map[string]any
}

// New starts an empty Builder.
func New() *Builder { return &Builder{} }

// Field declares a required-by-default field; wrap step in Default (or
// use OptionalField) to tolerate a missing key, or in Nullable to accept
// nil.
func (b *Builder) Field(key string, step typewright.Step) *Builder {
	b.fields = append(b.fields, typewright.HashField{Key: key, Step: step})
	return b
}

// OptionalField is sugar for Field(key, typewright.Of(step).Default(def)),
// also marking the field Optional so a later Merge treats it as
// optional-on-this-side rather than required.
func (b *Builder) OptionalField(key string, step typewright.Step, def any) *Builder {
	b.fields = append(b.fields, typewright.HashField{Key: key, Step: typewright.Of(step).Default(def), Optional: true})
	return b
}

// Before registers a hook that rewrites the raw input map before any
// field is validated. Hooks run in registration order.
func (b *Builder) Before(fn func(map[string]any) map[string]any) *Builder {
	b.before = append(b.before, fn)
	return b
}

// After registers a hook that rewrites the validated output map once
// every field has passed. Hooks run in registration order.
func (b *Builder) After(fn func(map[string]any) map[string]any) *Builder {
	b.after = append(b.after, fn)
	return b
}

// Build finalizes the schema. With no before/after hooks registered, the
// result is exactly typewright.Hash(fields...); otherwise it's wrapped in
// a step that runs the hooks around that Hash.
func (b *Builder) Build() *typewright.Type {
	h := typewright.Hash(b.fields...)
	if len(b.before) == 0 && len(b.after) == 0 {
		return h.Type
	}
	return typewright.Of(buildStep{hash: h, before: b.before, after: b.after})
}

type buildStep struct {
	hash   *typewright.HashType
	before []func(map[string]any) map[string]any
	after  []func(map[string]any) map[string]any
}

func (s buildStep) Call(r typewright.Result) typewright.Result {
	v := r.Value()
	if m, ok := v.(map[string]any); ok {
		for _, fn := range s.before {
			m = fn(m)
		}
		r = r.AsValid(m)
	}
	res := s.hash.Call(r)
	if res.Halted() || len(s.after) == 0 {
		return res
	}
	oh, ok := res.Value().(*typewright.OrderedHash)
	if !ok {
		return res
	}
	m := oh.Map()
	for _, fn := range s.after {
		m = fn(m)
	}
	out := typewright.NewOrderedHash()
	for _, k := range oh.Keys() {
		if v, ok := m[k]; ok {
			out.Set(k, v)
			delete(m, k)
		}
	}
	for k, v := range m {
		out.Set(k, v)
	}
	return res.AsValid(out)
}

func (s buildStep) AST() *ast.Node { return s.hash.AST() }
