package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLRuleSpec describes a rule compatibility document: which built-in
// rules apply to which base tags, loadable without recompiling code.
type YAMLRuleSpec struct {
	Rules []struct {
		Name     string   `yaml:"name"`
		BaseTags []string `yaml:"base_tags"`
	} `yaml:"rules"`
}

// LoadYAML extends the compatibility set of already-registered rules from
// a YAML document; it cannot define new Check functions, since those are
// Go code, only widen which base tags an existing rule accepts.
func LoadYAML(data []byte) error {
	var spec YAMLRuleSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("rules: parse yaml: %w", err)
	}
	for _, entry := range spec.Rules {
		d, ok := Lookup(entry.Name)
		if !ok {
			return fmt.Errorf("rules: unknown rule %q in config", entry.Name)
		}
		if len(d.BaseTags) == 0 {
			continue // already compatible with every base tag
		}
		d.BaseTags = mergeTags(d.BaseTags, entry.BaseTags)
		Register(d)
	}
	return nil
}

func mergeTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range a {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range b {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
