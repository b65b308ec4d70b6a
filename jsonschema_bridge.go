package typewright

import "github.com/archwright/typewright/jsonschema"

// JSONSchema renders the receiver's AST as a top-level JSON Schema
// document. Only schema-mode Hash types make sense as a top-level
// document in practice, but any Step's AST can be visited.
func (t *Type) JSONSchema() *jsonschema.Schema { return jsonschema.Generate(t.AST()) }
