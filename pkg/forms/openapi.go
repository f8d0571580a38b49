package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OrderExtension orders properties when building a definition from OpenAPI;
// properties without it sort after ordered ones, by name.
const OrderExtension = "x-order"

// ErrOperationNotFound is returned when FromOpenAPI cannot find the operation.
var ErrOperationNotFound = errors.New("forms: openapi operation not found")

// FromOpenAPI builds a Definition from the request body schema of the
// operation identified by operationID. Form media types are preferred over
// JSON so multipart uploads keep their file fields.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}
	if len(raw) == 0 {
		return Definition{}, errors.New("forms: openapi document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("forms: load openapi document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return NewDefinition()
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := propertyOrder(schema.Properties[names[i]])
		oj, jok := propertyOrder(schema.Properties[names[j]])
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, fieldFromSchema(name, ref.Value, required[name]))
	}
	return NewDefinition(fields...)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if id == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) Field {
	field := Field{
		Name:     name,
		Label:    src.Title,
		HelpText: src.Description,
		Initial:  src.Default,
		Required: required,
		Pattern:  src.Pattern,
		Type:     TypeText,
	}
	if src.MinLength > 0 {
		field.MinLength = int(src.MinLength)
	}
	if src.MaxLength != nil {
		field.MaxLength = int(*src.MaxLength)
	}
	if src.Min != nil {
		field.Min = Bound(*src.Min)
	}
	if src.Max != nil {
		field.Max = Bound(*src.Max)
	}

	switch schemaType(src.Type) {
	case "integer":
		field.Type = TypeInteger
	case "number":
		field.Type = TypeNumber
	case "boolean":
		field.Type = TypeBoolean
	case "array":
		if src.Items != nil && src.Items.Value != nil && len(src.Items.Value.Enum) > 0 {
			field.Type = TypeMultipleChoice
			field.Choices = enumChoices(src.Items.Value.Enum)
		}
	default:
		field.Type = typeForFormat(src.Format)
		if len(src.Enum) > 0 {
			field.Type = TypeChoice
			field.Choices = enumChoices(src.Enum)
		}
	}
	return field
}

func typeForFormat(format string) FieldType {
	switch strings.ToLower(format) {
	case "email":
		return TypeEmail
	case "uri", "url":
		return TypeURL
	case "date":
		return TypeDate
	case "password":
		return TypePassword
	case "binary":
		return TypeFile
	case "textarea":
		return TypeTextArea
	default:
		return TypeText
	}
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func enumChoices(values []any) []Choice {
	out := make([]Choice, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		str := fmt.Sprint(value)
		out = append(out, Choice{Value: str, Label: humanize(str)})
	}
	return out
}

func propertyOrder(ref *openapi3.SchemaRef) (float64, bool) {
	if ref == nil || ref.Value == nil {
		return 0, false
	}
	switch v := ref.Value.Extensions[OrderExtension].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
