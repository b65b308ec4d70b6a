// Package integration wires typewright validation into request/response
// boundaries: decoding a request body, stashing the validated value on a
// context, and shaping Halt errors into a response payload.
package integration

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/archwright/typewright"
)

// ctxKeyValue is a typed context key for storing a validated value of
// type T. Using a generic struct type ensures uniqueness per T without
// colliding with keys other packages might store on the same context.
type ctxKeyValue[T any] struct{}

// ContextWithValue attaches a validated value of type T to ctx.
func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

// ValueFromContext retrieves a value of type T previously stored by
// ContextWithValue.
func ValueFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

// DecodeAndValidate reads a JSON document from body, decodes it into
// a generic any via goccy/go-json, and resolves it against t. The
// returned error is either a transport-level decode failure or t's
// structured ParseError.
func DecodeAndValidate(body io.Reader, t *typewright.Type) (any, error) {
	var raw any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("integration: decode body: %w", err)
	}
	return t.Parse(raw)
}

// ErrorPayload shapes a Halt's errors value for a JSON error response.
func ErrorPayload(errs any) map[string]any {
	return map[string]any{"errors": errs}
}

// Around builds a Pipeline.Around hook that validates the running Result
// against t before handing off to next, short-circuiting the pipeline on
// Halt exactly like any other step would.
func Around(t *typewright.Type) func(next func(typewright.Result) typewright.Result) func(typewright.Result) typewright.Result {
	return func(next func(typewright.Result) typewright.Result) func(typewright.Result) typewright.Result {
		return func(r typewright.Result) typewright.Result {
			res := t.Call(r)
			if res.Halted() {
				return res
			}
			return next(res)
		}
	}
}
