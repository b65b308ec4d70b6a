package typewright

import (
	"reflect"
	"testing"
)

// Invariant 1: Any.resolve(v).value == v and the result is Valid.
func TestAnyResolveIdentity(t *testing.T) {
	for _, v := range []any{1, "x", nil, []any{1, 2}} {
		res := Any().Resolve(v)
		if res.Halted() {
			t.Fatalf("expected Valid for %v", v)
		}
		if res.Value() != nil && v != nil {
			if !reflect.DeepEqual(res.Value(), v) {
				t.Fatalf("expected %v, got %v", v, res.Value())
			}
		}
	}
}

func TestResolveDefaultsToUndefined(t *testing.T) {
	res := Any().Resolve()
	if !IsUndefined(res.Value()) {
		t.Fatalf("expected Undefined, got %v", res.Value())
	}
}

func TestParseRaisesOnHalt(t *testing.T) {
	_, err := String().Parse(42)
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if pe2, ok := err.(*ParseError); ok {
		pe = pe2
	} else {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Value != 42 {
		t.Fatalf("expected offending value preserved, got %v", pe.Value)
	}
}

func TestParseReturnsValueOnSuccess(t *testing.T) {
	v, err := String().Parse("hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hi" {
		t.Fatalf("got %v", v)
	}
}

func TestParseErrorUnwrapsUnderlyingError(t *testing.T) {
	_, err := String().Parse(42)
	pe := err.(*ParseError)
	if pe.Unwrap() == nil {
		t.Fatal("expected Unwrap to expose the Issue")
	}
}
