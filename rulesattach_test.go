package typewright

import "testing"

func TestRuleAttachesAndChecksAfterValidation(t *testing.T) {
	gte, err := Integer().Rule("gte", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gte.Resolve(5).Halted() {
		t.Fatal("expected Valid")
	}
	res := gte.Resolve(-5)
	if !res.Halted() {
		t.Fatal("expected Halt")
	}
	iss := res.Errors().(Issue)
	if iss.Code != CodeRuleViolation || iss.Rule != "gte" {
		t.Fatalf("got %#v", iss)
	}
}

func TestRuleRejectsUnregisteredRuleSynchronously(t *testing.T) {
	_, err := Integer().Rule("not_a_real_rule", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*UnsupportedRuleError); !ok {
		t.Fatalf("expected *UnsupportedRuleError, got %T", err)
	}
}

func TestRuleRejectsIncompatibleBaseType(t *testing.T) {
	// "gte" is compatible with Integer/Float/Numeric/Decimal/Array/String,
	// but not Boolean.
	_, err := Boolean().Rule("gte", 0)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*UnsupportedRuleError); !ok {
		t.Fatalf("expected *UnsupportedRuleError, got %T", err)
	}
}

func TestRuleAcceptsStringAndArrayForOrderedComparisons(t *testing.T) {
	gte, err := String().Rule("gte", "apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gte.Resolve("banana").Halted() {
		t.Fatal("expected Valid: banana >= apple lexicographically")
	}
	if !gte.Resolve("aardvark").Halted() {
		t.Fatal("expected Halt: aardvark < apple lexicographically")
	}

	lt, err := Array(Integer()).Rule("lt", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lt.Resolve([]any{1, 2}).Halted() {
		t.Fatal("expected Valid: array of length 2 is less than 3")
	}
	if !lt.Resolve([]any{1, 2, 3}).Halted() {
		t.Fatal("expected Halt: array of length 3 is not less than 3")
	}
}

func TestMustRulePanicsOnUnsupportedRule(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Boolean().MustRule("gte", 0)
}

func TestMustRuleReturnsUsableTypeOnSuccess(t *testing.T) {
	t1 := Integer().MustRule("gte", 0)
	if t1.Resolve(5).Halted() {
		t.Fatal("expected Valid")
	}
}
