package typewright

import (
	"bytes"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/archwright/typewright/ast"
)

// HashField declares one field of a schema-mode Hash: the key, and the
// Step its value must satisfy. A field that should tolerate a missing
// key wraps its Step in Default or Or(Nothing(), step) (Optional and
// Nullable accept nil, not a missing key); day-to-day
// required-ness falls out of whether the field's own Step accepts
// Undefined. Optional additionally records that intent explicitly, so
// Merge can compute the merged field's required-ness (required wins)
// independent of which side's Step it keeps for the type.
type HashField struct {
	Key      string
	Step     Step
	Optional bool
}

// requirePresentStep halts on Undefined regardless of what inner would
// otherwise do with it, for every other value it simply delegates. Merge
// wraps a kept field's Step in this when required-ness wins over an
// optional Step on the losing side.
type requirePresentStep struct{ inner Step }

func (s requirePresentStep) Call(r Result) Result {
	if IsUndefined(r.Value()) {
		return r.AsHalt(Issue{Code: CodePresence, Message: "is required"})
	}
	return s.inner.Call(r)
}

func (s requirePresentStep) AST() *ast.Node { return s.inner.AST() }

type hashStep struct{ fields []HashField }

func (s hashStep) Call(r Result) Result {
	v := r.Value()
	m, ok := v.(map[string]any)
	if !ok {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a hash"})
	}
	out := NewOrderedHash()
	errs := FieldErrors{}
	for _, f := range s.fields {
		input, present := m[f.Key]
		if !present {
			input = Undefined
		}
		res := f.Step.Call(Wrap(input))
		if res.Halted() {
			errs[f.Key] = res.Errors()
			continue
		}
		if IsUndefined(res.Value()) {
			continue
		}
		out.Set(f.Key, res.Value())
	}
	if len(errs) > 0 {
		return r.AsHalt(errs, out)
	}
	return r.AsValid(out)
}

func (s hashStep) AST() *ast.Node {
	children := make([]*ast.Node, len(s.fields))
	for i, f := range s.fields {
		children[i] = ast.WithChildren(ast.TagStep, map[string]any{"key": f.Key}, f.Step.AST())
	}
	return ast.WithChildren(ast.TagHash, map[string]any{"type": "Hash", "mode": "schema"}, children...)
}

// mergeFields unions both sides' fields by key. A key declared on only
// one side passes through unchanged. A key declared on both sides keeps
// the right side's Step (right wins on type) but is optional in the
// result only if optional on both sides — required wins regardless of
// which side's Step would itself tolerate a missing key.
func (s hashStep) mergeFields(other hashStep) []HashField {
	idx := map[string]int{}
	out := append([]HashField{}, s.fields...)
	for i, f := range out {
		idx[f.Key] = i
	}
	for _, f := range other.fields {
		i, exists := idx[f.Key]
		if !exists {
			idx[f.Key] = len(out)
			out = append(out, f)
			continue
		}
		left := out[i]
		merged := HashField{Key: f.Key, Step: f.Step, Optional: left.Optional && f.Optional}
		if !merged.Optional {
			merged.Step = requirePresentStep{inner: f.Step}
		}
		out[i] = merged
	}
	return out
}

// HashType is the schema-mode Hash builder, carrying its declared fields
// alongside the generic Type so Merge/Intersect/TaggedBy can inspect them.
type HashType struct {
	*Type
	step hashStep
}

// Hash builds a schema-mode hash validator: every declared field is
// checked (substituting Undefined when the key is absent from the
// input), undeclared input keys are dropped, and output preserves
// declaration order via OrderedHash.
func Hash(fields ...HashField) *HashType {
	hs := hashStep{fields: fields}
	return &HashType{Type: Of(hs), step: hs}
}

// Merge (+) combines two hash schemas: fields from other override fields
// of the same key in the receiver for typing purposes, but a field
// required on either side stays required in the result; fields unique to
// either side pass through unchanged.
func (h *HashType) Merge(other *HashType) *HashType {
	hs := hashStep{fields: h.step.mergeFields(other.step)}
	return &HashType{Type: Of(hs), step: hs}
}

// Intersect (&) keeps only the fields declared in both schemas, using
// other's Step for each kept field (right's type wins).
func (h *HashType) Intersect(other *HashType) *HashType {
	have := map[string]bool{}
	for _, f := range h.step.fields {
		have[f.Key] = true
	}
	var fields []HashField
	for _, f := range other.step.fields {
		if have[f.Key] {
			fields = append(fields, f)
		}
	}
	hs := hashStep{fields: fields}
	return &HashType{Type: Of(hs), step: hs}
}

// Union (|) is Or over the two schemas: an input is valid if it matches
// either one, left-biased.
func (h *HashType) Union(other *HashType) *Type { return Or(h.Type.Step(), other.Type.Step()) }

// OrderedHash is the output of a schema-mode Hash: a map that remembers
// the order fields were first set in, since Go's map[string]any does not.
type OrderedHash struct {
	keys   []string
	values map[string]any
}

// NewOrderedHash returns an empty OrderedHash.
func NewOrderedHash() *OrderedHash {
	return &OrderedHash{values: map[string]any{}}
}

// Set stores v under k, recording k's position the first time it is set.
func (h *OrderedHash) Set(k string, v any) {
	if _, exists := h.values[k]; !exists {
		h.keys = append(h.keys, k)
	}
	h.values[k] = v
}

// Get looks up k, reporting whether it was set.
func (h *OrderedHash) Get(k string) (any, bool) {
	v, ok := h.values[k]
	return v, ok
}

// Keys returns the set keys in first-set order.
func (h *OrderedHash) Keys() []string { return append([]string(nil), h.keys...) }

// Map flattens the OrderedHash into a plain map, discarding order.
func (h *OrderedHash) Map() map[string]any {
	out := make(map[string]any, len(h.values))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the hash as a JSON object with its keys in
// declaration order, since encoding a plain map[string]any would sort
// them lexically instead.
func (h *OrderedHash) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range h.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(h.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ---- map mode: schema(KeyType, ValueType), every entry validated ----

type hashOfTypeStep struct{ keyStep, valStep Step }

func (s hashOfTypeStep) Call(r Result) Result {
	v := r.Value()
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Map {
		return r.AsHalt(Issue{Code: CodeTypeMismatch, Message: "must be a hash"})
	}
	out := map[string]any{}
	errs := FieldErrors{}
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		kr := s.keyStep.Call(Wrap(k))
		vr := s.valStep.Call(Wrap(iter.Value().Interface()))
		label := fmt.Sprintf("%v", k)
		if kr.Halted() || vr.Halted() {
			var combined Issues
			combined = appendIssue(combined, kr.Errors())
			combined = appendIssue(combined, vr.Errors())
			errs[label] = combined
			continue
		}
		out[fmt.Sprintf("%v", kr.Value())] = vr.Value()
	}
	if len(errs) > 0 {
		return r.AsHalt(errs, out)
	}
	return r.AsValid(out)
}

func (s hashOfTypeStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagHash, map[string]any{"type": "Hash", "mode": "map"}, s.keyStep.AST(), s.valStep.AST())
}

// HashOfType builds a map-mode hash validator: every entry of a map value
// is checked against keyStep/valStep, with every failing entry
// aggregated into FieldErrors (contrast HashMap, which stops at the first
// failing entry).
func HashOfType(keyStep, valStep Step) *Type { return Of(hashOfTypeStep{keyStep: keyStep, valStep: valStep}) }
