package typewright

// Result is the two-variant value every Step consumes and produces:
// Valid(value) or Halt(value, errors). The value is always present, even
// on Halt, so callers can report against the offending value.
type Result struct {
	value  any
	errors any
	halted bool
}

// Wrap constructs a Valid Result around v. This is the entry point for
// resolving a Step against a concrete input (see Type.Resolve).
func Wrap(v any) Result { return Result{value: v} }

// Value returns the Result's carried value, Valid or Halt.
func (r Result) Value() any { return r.value }

// Errors returns the Halt errors payload, or nil when Valid.
func (r Result) Errors() any { return r.errors }

// Valid reports whether this Result is the Valid variant.
func (r Result) Valid() bool { return !r.halted }

// Halted reports whether this Result is the Halt variant.
func (r Result) Halted() bool { return r.halted }

// AsValid returns a new Valid Result carrying v, discarding any prior halt.
func (r Result) AsValid(v any) Result {
	return Result{value: v}
}

// AsHalt returns a new Halt Result. When value is omitted the current
// value is preserved (the common case: halting without rewriting what the
// caller sees as "the offending value").
func (r Result) AsHalt(errors any, value ...any) Result {
	v := r.value
	if len(value) > 0 {
		v = value[0]
	}
	return Result{value: v, errors: errors, halted: true}
}

// Halt is a free constructor for a fresh Halt Result, for callers that
// have no prior Result to transition from.
func Halt(value any, errors any) Result {
	return Result{value: value, errors: errors, halted: true}
}
