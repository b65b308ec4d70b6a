package typewright

import (
	"fmt"

	"github.com/archwright/typewright/ast"
	"github.com/archwright/typewright/rules"
)

type ruleStep struct {
	inner Step
	name  string
	arg   any
}

func (s ruleStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.Halted() {
		return res
	}
	def, _ := rules.Lookup(s.name)
	if !def.Check(res.Value(), s.arg) {
		return res.AsHalt(Issue{Code: CodeRuleViolation, Rule: s.name, Message: fmt.Sprintf("violates rule %q", s.name)})
	}
	return res
}

func (s ruleStep) AST() *ast.Node {
	return ast.WithChildren(ast.TagPolicy, map[string]any{"rule": s.name, "arg": s.arg}, s.inner.AST())
}

// Rule attaches a registered rule to the receiver, run after the
// receiver's own validation succeeds. It fails synchronously, before any
// value is ever checked, when name is unregistered or its declared
// compatibility set excludes the receiver's base tag.
func (t *Type) Rule(name string, arg any) (*Type, error) {
	tag := baseTagOf(t)
	if _, ok := rules.Lookup(name); !ok {
		return nil, &UnsupportedRuleError{Rule: name, BaseTag: tag}
	}
	if !rules.CompatibleWith(name, tag) {
		return nil, &UnsupportedRuleError{Rule: name, BaseTag: tag}
	}
	return Of(ruleStep{inner: t.step, name: name, arg: arg}), nil
}

// MustRule is Rule, panicking on error. Convenient for package-level
// schema declarations where an incompatible rule is a programming error
// that should surface at startup rather than as a returned error.
func (t *Type) MustRule(name string, arg any) *Type {
	out, err := t.Rule(name, arg)
	if err != nil {
		panic(err)
	}
	return out
}

func baseTagOf(t *Type) string {
	if s, ok := t.Metadata()["type"].(string); ok {
		return s
	}
	return string(t.AST().Tag)
}
