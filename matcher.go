package typewright

import (
	"fmt"
	"reflect"
	"regexp"
)

// matcherKind tags which branch of Matcher's union is populated. Go has no
// case-equality operator, so Match is implemented as an explicit tagged
// union with a Matches dispatcher instead.
type matcherKind int

const (
	matchClass matcherKind = iota
	matchRange
	matchRegexp
	matchFunc
	matchValue
)

// Matcher is the polymorphic predicate behind the Match leaf step.
type Matcher struct {
	kind    matcherKind
	class   reflect.Type
	lo, hi  float64
	re      *regexp.Regexp
	fn      func(any) bool
	literal any
	desc    string
}

// MatchClass matches any value assignable to the given reflect.Type —
// class membership.
func MatchClass(t reflect.Type) Matcher {
	return Matcher{kind: matchClass, class: t, desc: fmt.Sprintf("kind of %s", t)}
}

// MatchRange matches values numerically within [lo, hi] inclusive.
func MatchRange(lo, hi float64) Matcher {
	return Matcher{kind: matchRange, lo: lo, hi: hi, desc: fmt.Sprintf("in range %v..%v", lo, hi)}
}

// MatchRegexp matches string values against re.
func MatchRegexp(re *regexp.Regexp) Matcher {
	return Matcher{kind: matchRegexp, re: re, desc: fmt.Sprintf("matching %s", re.String())}
}

// MatchFunc matches via an arbitrary callable predicate.
func MatchFunc(fn func(any) bool) Matcher {
	return Matcher{kind: matchFunc, fn: fn, desc: "satisfying predicate"}
}

// MatchValue matches via equality, the fallback for other scalars.
func MatchValue(v any) Matcher {
	return Matcher{kind: matchValue, literal: v, desc: fmt.Sprintf("%v", v)}
}

// Matches reports whether v satisfies this matcher.
func (m Matcher) Matches(v any) bool {
	switch m.kind {
	case matchClass:
		if v == nil {
			return false
		}
		vt := reflect.TypeOf(v)
		return vt == m.class || vt.AssignableTo(m.class)
	case matchRange:
		f, ok := toFloat(v)
		if !ok {
			return false
		}
		return f >= m.lo && f <= m.hi
	case matchRegexp:
		s, ok := v.(string)
		if !ok {
			return false
		}
		return m.re.MatchString(s)
	case matchFunc:
		return m.fn(v)
	case matchValue:
		return reflect.DeepEqual(v, m.literal)
	default:
		return false
	}
}

// String renders a human-readable description, used in "must match ..."
// error messages.
func (m Matcher) String() string { return m.desc }

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
