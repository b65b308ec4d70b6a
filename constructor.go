package typewright

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeInto builds a Constructor step that decodes the receiver's
// validated map[string]any (or *OrderedHash) into a freshly-allocated Go
// value via mapstructure, so a Hash schema can terminate in a typed
// struct rather than a bag of maps. newTarget must return a pointer.
func (t *Type) DecodeInto(newTarget func() any) *Type {
	return t.Constructor(func(v any) (any, error) {
		if oh, ok := v.(*OrderedHash); ok {
			v = oh.Map()
		}
		target := newTarget()
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           target,
			WeaklyTypedInput: true,
			TagName:          "typewright",
		})
		if err != nil {
			return nil, fmt.Errorf("build decoder: %w", err)
		}
		if err := dec.Decode(v); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return target, nil
	})
}
