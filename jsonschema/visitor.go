package jsonschema

import "github.com/archwright/typewright/ast"

// draftURL is emitted only at the document root by Generate.
const draftURL = "https://json-schema.org/draft-08/schema#"

// Generate renders the top-level JSON Schema document for an AST node,
// stamping the draft URL that only belongs on the root.
func Generate(n *ast.Node) *Schema {
	s := Visit(n)
	out := *s
	out.SchemaURL = draftURL
	return &out
}

// Visit renders a single AST node (and its children) as a Schema,
// dispatching purely on tag.
func Visit(n *ast.Node) *Schema {
	if n == nil {
		return &Schema{}
	}
	switch n.Tag {
	case ast.TagAny:
		return &Schema{}
	case ast.TagStep:
		return visitStep(n)
	case ast.TagBoolean:
		return &Schema{Type: "boolean"}
	case ast.TagValue:
		return visitValue(n)
	case ast.TagStatic:
		return visitStatic(n)
	case ast.TagMatch:
		return &Schema{}
	case ast.TagUndefined:
		return &Schema{}
	case ast.TagAnd:
		return visitAnd(n)
	case ast.TagOr:
		return visitOr(n)
	case ast.TagNot:
		return visitNot(n)
	case ast.TagDefault:
		return visitDefault(n)
	case ast.TagTransform:
		return visitTransform(n)
	case ast.TagMetadata:
		return &Schema{}
	case ast.TagPolicy:
		return visitPolicy(n)
	case ast.TagArray:
		return visitArray(n)
	case ast.TagTuple:
		return visitTuple(n)
	case ast.TagStream:
		return visitStream(n)
	case ast.TagHash:
		return visitHash(n)
	case ast.TagHashMap:
		return visitHashMap(n)
	case ast.TagTaggedHash:
		return visitTaggedHash(n)
	case ast.TagConstructor:
		if len(n.Children) > 0 {
			return Visit(n.Children[0])
		}
		return &Schema{}
	default:
		return &Schema{}
	}
}

func visitStep(n *ast.Node) *Schema {
	t, _ := n.Attr("type")
	name, _ := t.(string)
	switch name {
	case "String":
		return &Schema{Type: "string"}
	case "Integer":
		return &Schema{Type: "integer"}
	case "Float", "Numeric":
		return &Schema{Type: "number"}
	case "Nil":
		return &Schema{Type: "null"}
	default:
		return &Schema{}
	}
}

func visitValue(n *ast.Node) *Schema {
	v, _ := n.Attr("const")
	return &Schema{Const: v}
}

func visitStatic(n *ast.Node) *Schema {
	v, _ := n.Attr("value")
	return &Schema{Const: v, Default: v}
}

// visitAnd deep-merges both children's schemas, right child's fields
// winning on conflict (matching MergeMetadata's and-node rule).
func visitAnd(n *ast.Node) *Schema {
	if len(n.Children) == 0 {
		return &Schema{}
	}
	left := Visit(n.Children[0])
	if len(n.Children) == 1 {
		return left
	}
	return mergeSchema(left, Visit(n.Children[1]))
}

func mergeSchema(a, b *Schema) *Schema {
	out := *a
	if b.Type != nil {
		out.Type = b.Type
	}
	if b.Format != "" {
		out.Format = b.Format
	}
	if b.Default != nil {
		out.Default = b.Default
	}
	if b.Const != nil {
		out.Const = b.Const
	}
	if b.Enum != nil {
		out.Enum = b.Enum
	}
	if b.Properties != nil {
		if out.Properties == nil {
			out.Properties = map[string]*Schema{}
		}
		for k, v := range b.Properties {
			out.Properties[k] = v
		}
	}
	if b.PatternProperties != nil {
		out.PatternProperties = b.PatternProperties
	}
	if len(b.Required) > 0 {
		out.Required = append(append([]string{}, out.Required...), b.Required...)
	}
	if b.AdditionalProperties != nil {
		out.AdditionalProperties = b.AdditionalProperties
	}
	if b.Items != nil {
		out.Items = b.Items
	}
	if b.PrefixItems != nil {
		out.PrefixItems = b.PrefixItems
	}
	if b.MinItems != nil {
		out.MinItems = b.MinItems
	}
	if b.MaxItems != nil {
		out.MaxItems = b.MaxItems
	}
	if b.Minimum != nil {
		out.Minimum = b.Minimum
	}
	if b.Maximum != nil {
		out.Maximum = b.Maximum
	}
	if b.Pattern != "" {
		out.Pattern = b.Pattern
	}
	if b.MinLength != nil {
		out.MinLength = b.MinLength
	}
	if b.MaxLength != nil {
		out.MaxLength = b.MaxLength
	}
	if b.AllOf != nil {
		out.AllOf = append(append([]*Schema{}, out.AllOf...), b.AllOf...)
	}
	if b.AnyOf != nil {
		out.AnyOf = b.AnyOf
	}
	if b.OneOf != nil {
		out.OneOf = b.OneOf
	}
	if b.Not != nil {
		out.Not = b.Not
	}
	if b.If != nil {
		out.If = b.If
	}
	if b.Then != nil {
		out.Then = b.Then
	}
	if b.Else != nil {
		out.Else = b.Else
	}
	return &out
}

func collectOrBranches(n *ast.Node) []*ast.Node {
	if n.Tag == ast.TagOr && len(n.Children) == 2 {
		return append(collectOrBranches(n.Children[0]), collectOrBranches(n.Children[1])...)
	}
	return []*ast.Node{n}
}

// visitOr builds {anyOf:[...]}, flattening nested ors; when exactly two
// branches survive and only one carries a default, the anyOf collapses
// into that default carried on top of the other branch's schema.
func visitOr(n *ast.Node) *Schema {
	branchNodes := collectOrBranches(n)
	branches := make([]*Schema, len(branchNodes))
	for i, bn := range branchNodes {
		branches[i] = Visit(bn)
	}
	if len(branches) == 2 {
		if branches[0].Default != nil && branches[1].Default == nil {
			out := *branches[1]
			out.Default = branches[0].Default
			return &out
		}
		if branches[1].Default != nil && branches[0].Default == nil {
			out := *branches[0]
			out.Default = branches[1].Default
			return &out
		}
	}
	return &Schema{AnyOf: branches}
}

func visitNot(n *ast.Node) *Schema {
	if len(n.Children) == 0 {
		return &Schema{}
	}
	return &Schema{Not: Visit(n.Children[0])}
}

func visitDefault(n *ast.Node) *Schema {
	var child *Schema
	if len(n.Children) > 0 {
		child = Visit(n.Children[0])
	} else {
		child = &Schema{}
	}
	out := *child
	if v, ok := n.Attr("default"); ok {
		out.Default = v
	}
	return &out
}

func visitTransform(n *ast.Node) *Schema {
	t, _ := n.Attr("target_type")
	name, _ := t.(string)
	return &Schema{Type: jsonTypeFor(name)}
}

func jsonTypeFor(name string) any {
	switch name {
	case "String":
		return "string"
	case "Integer":
		return "integer"
	case "Float", "Numeric":
		return "number"
	case "Boolean":
		return "boolean"
	case "Nil":
		return "null"
	default:
		return nil
	}
}

// visitPolicy dispatches rule-attached nodes by rule name, per the
// minimum JSON-Schema mapping: included_in -> enum, eq -> const,
// gt/gte -> minimum, lt/lte -> maximum, match -> pattern, size -> the
// matching length/item bound.
func visitPolicy(n *ast.Node) *Schema {
	var child *Schema
	if len(n.Children) > 0 {
		child = Visit(n.Children[0])
	} else {
		child = &Schema{}
	}
	out := *child
	ruleAttr, _ := n.Attr("rule")
	arg, _ := n.Attr("arg")
	rule, _ := ruleAttr.(string)
	switch rule {
	case "included_in":
		if s, ok := arg.([]any); ok {
			out.Enum = s
		}
	case "eq":
		out.Const = arg
	case "gt", "gte":
		if f, ok := toFloat(arg); ok {
			out.Minimum = &f
		}
	case "lt", "lte":
		if f, ok := toFloat(arg); ok {
			out.Maximum = &f
		}
	case "match":
		if s, ok := arg.(string); ok {
			out.Pattern = s
		}
	case "size":
		if f, ok := toFloat(arg); ok {
			n := int(f)
			out.MinItems, out.MaxItems = &n, &n
			ml := n
			out.MinLength, out.MaxLength = &n, &ml
		}
	}
	return &out
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	default:
		return 0, false
	}
}

func visitArray(n *ast.Node) *Schema {
	var elem *Schema
	if len(n.Children) > 0 {
		elem = Visit(n.Children[0])
	} else {
		elem = &Schema{}
	}
	return &Schema{Type: "array", Items: elem}
}

func visitTuple(n *ast.Node) *Schema {
	items := make([]*Schema, len(n.Children))
	for i, c := range n.Children {
		items[i] = Visit(c)
	}
	return &Schema{Type: "array", PrefixItems: items}
}

func visitStream(n *ast.Node) *Schema {
	var elem *Schema
	if len(n.Children) > 0 {
		elem = Visit(n.Children[0])
	} else {
		elem = &Schema{}
	}
	return &Schema{Type: "array", Items: elem}
}

// visitHash handles both schema mode (type=object, properties/required)
// and map mode (type=object, patternProperties). Required keys are those
// whose field schema does not carry a default — the only structural
// signal an AST-only visitor has for "tolerates a missing key".
func visitHash(n *ast.Node) *Schema {
	if mode, _ := n.Attr("mode"); mode == "map" {
		var valSchema *Schema
		if len(n.Children) > 1 {
			valSchema = Visit(n.Children[1])
		} else {
			valSchema = &Schema{}
		}
		return &Schema{Type: "object", PatternProperties: map[string]*Schema{".*": valSchema}}
	}
	props := map[string]*Schema{}
	var required []string
	for _, c := range n.Children {
		keyAttr, _ := c.Attr("key")
		key, _ := keyAttr.(string)
		if key == "" || len(c.Children) == 0 {
			continue
		}
		fieldNode := c.Children[0]
		props[key] = Visit(fieldNode)
		if meta := ast.MergeMetadata(fieldNode); meta["default"] == nil {
			required = append(required, key)
		}
	}
	return &Schema{Type: "object", Properties: props, Required: required}
}

func visitHashMap(n *ast.Node) *Schema {
	var valSchema *Schema
	if len(n.Children) > 1 {
		valSchema = Visit(n.Children[1])
	} else {
		valSchema = &Schema{}
	}
	return &Schema{Type: "object", PatternProperties: map[string]*Schema{".*": valSchema}}
}

// visitTaggedHash emits the discriminator key as an enum of its variants'
// literal values, plus one allOf if/then pair per variant dispatching on
// that literal.
func visitTaggedHash(n *ast.Node) *Schema {
	keyAttr, _ := n.Attr("key")
	key, _ := keyAttr.(string)
	var enumVals []any
	var allOf []*Schema
	for _, variant := range n.Children {
		variantSchema := Visit(variant)
		var discVal any
		if variantSchema.Properties != nil {
			if fs, ok := variantSchema.Properties[key]; ok {
				discVal = fs.Const
			}
		}
		enumVals = append(enumVals, discVal)
		allOf = append(allOf, &Schema{
			If:   &Schema{Properties: map[string]*Schema{key: {Const: discVal}}},
			Then: variantSchema,
		})
	}
	return &Schema{
		Type:       "object",
		Properties: map[string]*Schema{key: {Enum: enumVals}},
		Required:   []string{key},
		AllOf:      allOf,
	}
}
