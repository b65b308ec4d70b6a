package typewright

import "testing"

func TestIssueErrorIncludesPathWhenSet(t *testing.T) {
	i := Issue{Path: "/name", Message: "must be a string"}
	if i.Error() != "/name: must be a string" {
		t.Fatalf("got %q", i.Error())
	}
}

func TestIssueErrorOmitsPathWhenEmpty(t *testing.T) {
	i := Issue{Message: "must be a string"}
	if i.Error() != "must be a string" {
		t.Fatalf("got %q", i.Error())
	}
}

func TestIssuesErrorJoinsInOrder(t *testing.T) {
	iss := Issues{
		{Message: "first"},
		{Message: "second"},
	}
	if iss.Error() != "first; second" {
		t.Fatalf("got %q", iss.Error())
	}
}

func TestFieldErrorsImplementsError(t *testing.T) {
	fe := FieldErrors{"name": Issue{Message: "bad"}}
	var err error = fe
	if err.Error() == "" {
		t.Fatal("expected a non-empty message")
	}
}

func TestIndexErrorsImplementsError(t *testing.T) {
	ie := IndexErrors{0: Issue{Message: "bad"}}
	var err error = ie
	if err.Error() == "" {
		t.Fatal("expected a non-empty message")
	}
}

func TestUnsupportedRuleErrorMessage(t *testing.T) {
	e := &UnsupportedRuleError{Rule: "gte", BaseTag: "String"}
	want := `typewright: rule "gte" is not supported for base type "String"`
	if e.Error() != want {
		t.Fatalf("got %q", e.Error())
	}
}
