package typewright

import (
	"strconv"
	"testing"

	json "github.com/goccy/go-json"
)

// Invariant 7: Hash schema projects keys; undeclared input keys are
// absent from the output.
func TestHashProjectsDeclaredKeysOnly(t *testing.T) {
	h := Hash(
		HashField{Key: "name", Step: String()},
	)
	res := h.Resolve(map[string]any{"name": "Joe", "extra": "dropped"})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	oh := res.Value().(*OrderedHash)
	if _, ok := oh.Get("extra"); ok {
		t.Fatal("expected undeclared key to be dropped")
	}
	if v, _ := oh.Get("name"); v != "Joe" {
		t.Fatalf("got %v", v)
	}
}

func TestHashReportsFieldErrorsByKey(t *testing.T) {
	h := Hash(
		HashField{Key: "name", Step: String()},
		HashField{Key: "age", Step: Integer()},
	)
	res := h.Resolve(map[string]any{"name": 42, "age": "nope"})
	if !res.Halted() {
		t.Fatal("expected Halt")
	}
	errs, ok := res.Errors().(FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T", res.Errors())
	}
	if _, ok := errs["name"]; !ok {
		t.Fatal("expected name to fail")
	}
	if _, ok := errs["age"]; !ok {
		t.Fatal("expected age to fail")
	}
}

func TestHashMissingRequiredFieldHalts(t *testing.T) {
	h := Hash(HashField{Key: "name", Step: String()})
	res := h.Resolve(map[string]any{})
	if !res.Halted() {
		t.Fatal("expected Halt: name has no default and tolerates no Undefined")
	}
}

func TestHashOptedOutFieldIsOmittedFromOutput(t *testing.T) {
	h := Hash(
		HashField{Key: "name", Step: String()},
		HashField{Key: "nickname", Step: Or(Nothing(), String()), Optional: true},
	)
	res := h.Resolve(map[string]any{"name": "Joe"})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	oh := res.Value().(*OrderedHash)
	if _, ok := oh.Get("nickname"); ok {
		t.Fatal("expected nickname to be absent since it resolved to Undefined")
	}
}

// Invariant 8: Hash merge (+): union of keys, right wins on conflicts.
func TestHashMergeUnionsKeysRightWins(t *testing.T) {
	s1 := Hash(HashField{Key: "a", Step: String()}, HashField{Key: "b", Step: String()})
	s2 := Hash(HashField{Key: "b", Step: Integer()}, HashField{Key: "c", Step: Integer()})

	merged := s1.Merge(s2)
	res := merged.Resolve(map[string]any{"a": "x", "b": 1, "c": 2})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	keys := res.Value().(*OrderedHash).Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %v", keys)
	}
	// b must be validated as Integer (s2's type), not String (s1's).
	if !merged.Resolve(map[string]any{"a": "x", "b": "not an int", "c": 2}).Halted() {
		t.Fatal("expected b to be typed by s2 after merge")
	}
}

// Merge's required-wins rule: a field required on either side stays
// required in the merged schema even when the kept (right-hand) Step
// would itself tolerate a missing key.
func TestHashMergeRequiredWinsOverOptionalStep(t *testing.T) {
	required := Hash(HashField{Key: "x", Step: String()})
	optional := Hash(HashField{Key: "x", Step: Or(Nothing(), String()), Optional: true})

	merged := required.Merge(optional)
	if !merged.Resolve(map[string]any{}).Halted() {
		t.Fatal("expected Halt: x is required on the left side, so required wins")
	}
	res := merged.Resolve(map[string]any{"x": "hi"})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	oh := res.Value().(*OrderedHash)
	if v, _ := oh.Get("x"); v != "hi" {
		t.Fatalf("got %v", v)
	}
}

func TestHashMergeStaysOptionalWhenBothSidesOptional(t *testing.T) {
	a := Hash(HashField{Key: "y", Step: Or(Nothing(), String()), Optional: true})
	b := Hash(HashField{Key: "y", Step: Or(Nothing(), Integer()), Optional: true})

	merged := a.Merge(b)
	res := merged.Resolve(map[string]any{})
	if res.Halted() {
		t.Fatalf("expected optional-on-both to stay optional, got halt: %v", res.Errors())
	}
	oh := res.Value().(*OrderedHash)
	if _, ok := oh.Get("y"); ok {
		t.Fatal("expected y to be absent since it resolved to Undefined")
	}
}

// Invariant 9: Hash intersection (&): keeps only shared keys, typed by s2.
func TestHashIntersectKeepsSharedKeysTypedByRight(t *testing.T) {
	s1 := Hash(HashField{Key: "a", Step: String()}, HashField{Key: "b", Step: String()})
	s2 := Hash(HashField{Key: "b", Step: Integer()}, HashField{Key: "c", Step: Integer()})

	inter := s1.Intersect(s2)
	res := inter.Resolve(map[string]any{"b": 1})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	keys := res.Value().(*OrderedHash).Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("expected only shared key b, got %v", keys)
	}
}

func TestHashUnionAcceptsEitherSchema(t *testing.T) {
	s1 := Hash(HashField{Key: "a", Step: String()})
	s2 := Hash(HashField{Key: "b", Step: Integer()})
	u := s1.Union(s2)

	if u.Resolve(map[string]any{"a": "x"}).Halted() {
		t.Fatal("expected left schema to satisfy the union")
	}
	if u.Resolve(map[string]any{"b": 1}).Halted() {
		t.Fatal("expected right schema to satisfy the union")
	}
}

// S1: schema with defaults and a coercing alternative.
func TestScenarioS1SchemaWithDefaultsAndCoercion(t *testing.T) {
	laxInt := Or(Integer(), String().Transform("Integer", func(v any) any {
		n, _ := strconv.Atoi(v.(string))
		return n
	}))
	friend := Hash(HashField{Key: "name", Step: String()})
	person := Hash(
		HashField{Key: "title", Step: String().Default("Mr"), Optional: true},
		HashField{Key: "name", Step: String()},
		HashField{Key: "age", Step: Or(Nothing(), laxInt), Optional: true},
		HashField{Key: "friend", Step: friend},
	)

	input := map[string]any{
		"name":   "Ismael",
		"age":    "42",
		"friend": map[string]any{"name": "Joe"},
	}
	res := person.Resolve(input)
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	oh := res.Value().(*OrderedHash)
	if v, _ := oh.Get("title"); v != "Mr" {
		t.Fatalf("expected default title, got %v", v)
	}
	if v, _ := oh.Get("age"); v != 42 {
		t.Fatalf("expected coerced age 42, got %v (%T)", v, v)
	}
}

func TestOrderedHashPreservesDeclarationOrderThroughJSON(t *testing.T) {
	h := Hash(
		HashField{Key: "z", Step: String()},
		HashField{Key: "a", Step: String()},
	)
	res := h.Resolve(map[string]any{"z": "1", "a": "2"})
	b, err := json.Marshal(res.Value())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"z":"1","a":"2"}` {
		t.Fatalf("got %s", b)
	}
}

func TestHashOfTypeValidatesEveryEntry(t *testing.T) {
	m := HashOfType(String(), Integer())
	res := m.Resolve(map[string]any{"a": 1, "b": 2})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}

	bad := m.Resolve(map[string]any{"a": 1, "b": "not an int", "c": "also not"})
	if !bad.Halted() {
		t.Fatal("expected Halt")
	}
	errs := bad.Errors().(FieldErrors)
	if len(errs) != 2 {
		t.Fatalf("expected both bad entries reported, got %d", len(errs))
	}
}
