package rules

import "testing"

func TestBuiltinRulesAreRegisteredAtInit(t *testing.T) {
	for _, name := range []string{"eq", "not_eq", "gt", "gte", "lt", "lte", "match", "included_in", "excluded_from", "respond_to", "size"} {
		if _, ok := Lookup(name); !ok {
			t.Fatalf("expected %q to be registered", name)
		}
	}
}

func TestLookupMissesUnregisteredRule(t *testing.T) {
	if _, ok := Lookup("not_a_rule"); ok {
		t.Fatal("expected miss")
	}
}

func TestCompatibleWithEmptyBaseTagsAcceptsAny(t *testing.T) {
	if !CompatibleWith("eq", "AnythingAtAll") {
		t.Fatal("expected eq to be compatible with any base tag")
	}
}

func TestCompatibleWithRestrictedBaseTags(t *testing.T) {
	if !CompatibleWith("gte", "Integer") {
		t.Fatal("expected gte compatible with Integer")
	}
	if CompatibleWith("gte", "Boolean") {
		t.Fatal("expected gte incompatible with Boolean")
	}
}

func TestCompatibleWithUnregisteredRuleIsFalse(t *testing.T) {
	if CompatibleWith("nope", "Integer") {
		t.Fatal("expected false for an unregistered rule")
	}
}

func TestRegisterOverwritesExistingDefinition(t *testing.T) {
	Register(Def{Name: "test_only_rule", Check: func(any, any) bool { return true }})
	d, ok := Lookup("test_only_rule")
	if !ok || !d.Check(nil, nil) {
		t.Fatal("expected the rule to be registered and pass")
	}
	Register(Def{Name: "test_only_rule", Check: func(any, any) bool { return false }})
	d2, _ := Lookup("test_only_rule")
	if d2.Check(nil, nil) {
		t.Fatal("expected the second registration to replace the first")
	}
}
