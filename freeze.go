package typewright

// Freeze assigns a stable display name to a Type. It is idempotent: an
// already-named Type returns itself unchanged rather than being renamed,
// so re-freezing a Type that's embedded in several schemas can't silently
// drift its name depending on which schema happened to freeze it last.
func (t *Type) Freeze(name string) *Type {
	if t.name != "" {
		return t
	}
	return &Type{step: t.step, name: name}
}
