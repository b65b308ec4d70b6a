package rules

import (
	"reflect"
	"regexp"
)

// orderedBaseTags lists the base tags gt/gte/lt/lte accept: the numeric
// kinds, plus Array (compared by size) and String (compared
// lexicographically). Decimal is listed for parity with the matrix even
// though no leaf in this module currently produces that base tag.
var orderedBaseTags = []string{"Integer", "Float", "Numeric", "Decimal", "Array", "String"}

// matchBaseTags lists the base tags "match" accepts: String against a
// regexp, Integer/Numeric against a numeric range, Array against a range
// over its size.
var matchBaseTags = []string{"String", "Integer", "Float", "Numeric", "Array"}

func registerBuiltins() {
	Register(Def{Name: "eq", Check: func(v, arg any) bool { return reflect.DeepEqual(v, arg) }})
	Register(Def{Name: "not_eq", Check: func(v, arg any) bool { return !reflect.DeepEqual(v, arg) }})
	Register(Def{Name: "gt", BaseTags: orderedBaseTags, Check: numericCompare(func(a, b float64) bool { return a > b })})
	Register(Def{Name: "gte", BaseTags: orderedBaseTags, Check: numericCompare(func(a, b float64) bool { return a >= b })})
	Register(Def{Name: "lt", BaseTags: orderedBaseTags, Check: numericCompare(func(a, b float64) bool { return a < b })})
	Register(Def{Name: "lte", BaseTags: orderedBaseTags, Check: numericCompare(func(a, b float64) bool { return a <= b })})
	Register(Def{Name: "match", BaseTags: matchBaseTags, Check: matchRule})
	Register(Def{Name: "included_in", Check: func(v, arg any) bool { return containsAny(arg, v) }})
	Register(Def{Name: "excluded_from", Check: func(v, arg any) bool { return !containsAny(arg, v) }})
	Register(Def{Name: "respond_to", Check: respondToRule})
	Register(Def{Name: "size", BaseTags: []string{"Array", "String", "Hash"}, Check: sizeRule})
}

// matchRule dispatches on the value's shape: strings match against a
// regexp (compiled lazily from a string pattern, or passed in already
// compiled), numeric values match against a [lo, hi] range, and
// slices/arrays match that same range against their length.
func matchRule(v, arg any) bool {
	if s, ok := v.(string); ok {
		return matchPattern(s, arg)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return matchRange(float64(rv.Len()), arg)
	}
	if f, ok := toFloat(v); ok {
		return matchRange(f, arg)
	}
	return false
}

func matchPattern(s string, arg any) bool {
	re, ok := arg.(*regexp.Regexp)
	if !ok {
		pattern, ok2 := arg.(string)
		if !ok2 {
			return false
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		re = compiled
	}
	return re.MatchString(s)
}

// matchRange reports whether f falls within the [lo, hi] range arg
// encodes, accepting a [2]float64, a []float64 of length 2, or a two
// element []any of numeric-ish values.
func matchRange(f float64, arg any) bool {
	switch r := arg.(type) {
	case [2]float64:
		return f >= r[0] && f <= r[1]
	case []float64:
		if len(r) != 2 {
			return false
		}
		return f >= r[0] && f <= r[1]
	case []any:
		if len(r) != 2 {
			return false
		}
		lo, ok1 := toFloat(r[0])
		hi, ok2 := toFloat(r[1])
		return ok1 && ok2 && f >= lo && f <= hi
	default:
		return false
	}
}

func respondToRule(v, arg any) bool {
	name, ok := arg.(string)
	if !ok || v == nil {
		return false
	}
	rt := reflect.TypeOf(v)
	if _, ok := rt.MethodByName(name); ok {
		return true
	}
	if _, ok := reflect.PtrTo(rt).MethodByName(name); ok {
		return true
	}
	return false
}

func sizeRule(v, arg any) bool {
	n, ok := sizeOf(v)
	if !ok {
		return false
	}
	want, ok := toInt(arg)
	return ok && n == want
}

// numericCompare builds a gt/gte/lt/lte check from a float comparator,
// extended to order strings lexicographically and arrays/slices by
// length, per their declared base-tag compatibility.
func numericCompare(cmp func(a, b float64) bool) func(any, any) bool {
	return func(v, arg any) bool {
		if s, ok := v.(string); ok {
			argStr, ok2 := arg.(string)
			if !ok2 {
				return false
			}
			return cmp(stringOrder(s, argStr), 0)
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			b, ok := toFloat(arg)
			if !ok {
				return false
			}
			return cmp(float64(rv.Len()), b)
		}
		a, ok1 := toFloat(v)
		b, ok2 := toFloat(arg)
		return ok1 && ok2 && cmp(a, b)
	}
}

func stringOrder(a, b string) float64 {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

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

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	return int(f), ok
}

func sizeOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return len(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func containsAny(collection, v any) bool {
	rv := reflect.ValueOf(collection)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if reflect.DeepEqual(rv.Index(i).Interface(), v) {
			return true
		}
	}
	return false
}
