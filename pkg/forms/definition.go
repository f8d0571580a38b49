package forms

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
)

// CleanFunc validates the form as a whole once every field cleaned without
// errors. Returning a *ValidationError attaches messages to fields; any other
// error becomes a non-field error.
type CleanFunc func(cleaned map[string]any) error

// Factory produces form instances. Definition is the stock implementation.
type Factory interface {
	New() *Form
	Bind(values url.Values, files map[string][]*multipart.FileHeader) *Form
}

// ErrInvalidDefinition reports a malformed field list.
var ErrInvalidDefinition = errors.New("forms: invalid definition")

// Definition declares the fields of a form. The zero value is a form without
// fields, which is always valid once bound.
type Definition struct {
	fields []Field
	index  map[string]int
	clean  CleanFunc
}

var _ Factory = Definition{}

// NewDefinition validates and copies the supplied fields.
func NewDefinition(fields ...Field) (Definition, error) {
	def := Definition{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		field = field.normalized()
		if field.Name == "" {
			return Definition{}, fmt.Errorf("%w: field without a name", ErrInvalidDefinition)
		}
		if field.Name == NonFieldErrors {
			return Definition{}, fmt.Errorf("%w: field name %q is reserved", ErrInvalidDefinition, field.Name)
		}
		if _, exists := def.index[field.Name]; exists {
			return Definition{}, fmt.Errorf("%w: duplicate field %q", ErrInvalidDefinition, field.Name)
		}
		if field.Pattern != "" {
			if _, err := compilePattern(field.Pattern); err != nil {
				return Definition{}, fmt.Errorf("%w: field %q pattern: %v", ErrInvalidDefinition, field.Name, err)
			}
		}
		if (field.Type == TypeChoice || field.Type == TypeMultipleChoice) && len(field.Choices) == 0 {
			return Definition{}, fmt.Errorf("%w: field %q has no choices", ErrInvalidDefinition, field.Name)
		}
		def.index[field.Name] = len(def.fields)
		def.fields = append(def.fields, field)
	}
	return def, nil
}

// MustDefinition is NewDefinition that panics on error, for package-level
// declarations.
func MustDefinition(fields ...Field) Definition {
	def, err := NewDefinition(fields...)
	if err != nil {
		panic(err)
	}
	return def
}

// WithClean returns a copy of the definition using fn as form-level clean hook.
func (d Definition) WithClean(fn CleanFunc) Definition {
	d.clean = fn
	return d
}

// Fields returns a copy of the declared fields in order.
func (d Definition) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Field looks up a field by name.
func (d Definition) Field(name string) (Field, bool) {
	idx, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[idx], true
}

// New returns an unbound form, rendered from initial values.
func (d Definition) New() *Form {
	return &Form{def: d}
}

// Bind returns a form bound to the submitted values and files.
func (d Definition) Bind(values url.Values, files map[string][]*multipart.FileHeader) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{
		def:    d,
		bound:  true,
		values: values,
		files:  files,
	}
}
