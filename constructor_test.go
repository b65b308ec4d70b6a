package typewright

import "testing"

type userStruct struct {
	Name string `typewright:"name"`
	Age  int    `typewright:"age"`
}

func TestDecodeIntoDecodesOrderedHashIntoStruct(t *testing.T) {
	h := Hash(
		HashField{Key: "name", Step: String()},
		HashField{Key: "age", Step: Integer()},
	).Type.DecodeInto(func() any { return &userStruct{} })

	res := h.Resolve(map[string]any{"name": "Joe", "age": 30})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	u, ok := res.Value().(*userStruct)
	if !ok {
		t.Fatalf("expected *userStruct, got %T", res.Value())
	}
	if u.Name != "Joe" || u.Age != 30 {
		t.Fatalf("got %#v", u)
	}
}

func TestDecodeIntoPropagatesValidationHalt(t *testing.T) {
	h := Hash(
		HashField{Key: "name", Step: String()},
	).Type.DecodeInto(func() any { return &userStruct{} })

	res := h.Resolve(map[string]any{"name": 42})
	if !res.Halted() {
		t.Fatal("expected Halt before any decoding happens")
	}
}
