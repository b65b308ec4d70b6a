// Package rules is the named-predicate registry that Type.Rule attaches
// to a type: each rule has a check function and a declared compatibility
// set of base-type tags it may be applied to.
package rules

import "sync"

// Def is a single registered rule.
type Def struct {
	Name string
	// BaseTags lists the base type tags this rule may be attached to. An
	// empty set means compatible with everything.
	BaseTags []string
	Check    func(value any, arg any) bool
}

var (
	mu       sync.RWMutex
	registry = map[string]Def{}
)

// Register adds or replaces a rule definition.
func Register(d Def) {
	mu.Lock()
	defer mu.Unlock()
	registry[d.Name] = d
}

// Lookup finds a registered rule by name.
func Lookup(name string) (Def, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[name]
	return d, ok
}

// CompatibleWith reports whether rule name may be attached to baseTag.
func CompatibleWith(name, baseTag string) bool {
	d, ok := Lookup(name)
	if !ok {
		return false
	}
	if len(d.BaseTags) == 0 {
		return true
	}
	for _, t := range d.BaseTags {
		if t == baseTag {
			return true
		}
	}
	return false
}

func init() {
	registerBuiltins()
}
