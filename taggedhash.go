package typewright

import (
	"fmt"

	"github.com/archwright/typewright/ast"
)

type taggedHashStep struct {
	key      string
	dispatch map[any]*HashType
	variants []*HashType
}

func (s taggedHashStep) Call(r Result) Result {
	v := r.Value()
	m, ok := v.(map[string]any)
	if !ok {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a hash"})
	}
	disc, present := m[s.key]
	if !present {
		return r.AsHalt(Issue{Code: CodeDispatchMiss, Message: fmt.Sprintf("missing discriminator %q", s.key)})
	}
	variant, ok := s.dispatch[disc]
	if !ok {
		return r.AsHalt(Issue{Code: CodeDispatchMiss, Message: fmt.Sprintf("no variant for %s = %v", s.key, disc)})
	}
	return variant.Call(r)
}

func (s taggedHashStep) AST() *ast.Node {
	children := make([]*ast.Node, len(s.variants))
	for i, v := range s.variants {
		children[i] = v.AST()
	}
	return ast.WithChildren(ast.TagTaggedHash, map[string]any{"type": "TaggedHash", "key": s.key}, children...)
}

// TaggedBy builds a discriminated union over hash-schema variants:
// construction panics unless every variant declares key and that field's
// Step resolves to a static value (its AST carries a "value" or "const"
// attr) — the only way to know, ahead of any input, which literal
// dispatches to which variant. At call time, the variant is chosen solely
// by key's value; no variant is attempted unless it is the exact match.
func TaggedBy(key string, variants ...*HashType) *Type {
	dispatch := map[any]*HashType{}
	for _, variant := range variants {
		var found *HashField
		for i := range variant.step.fields {
			if variant.step.fields[i].Key == key {
				found = &variant.step.fields[i]
				break
			}
		}
		if found == nil {
			panic(fmt.Sprintf("typewright: tagged_by variant missing discriminator key %q", key))
		}
		node := found.Step.AST()
		val, ok := node.Attr("value")
		if !ok {
			val, ok = node.Attr("const")
		}
		if !ok {
			panic(fmt.Sprintf("typewright: tagged_by discriminator %q must resolve to a static value", key))
		}
		dispatch[val] = variant
	}
	return Of(taggedHashStep{key: key, dispatch: dispatch, variants: variants})
}
