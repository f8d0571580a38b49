package forms

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"
)

// Form is an instance of a Definition, bound to submitted data or not.
type Form struct {
	def    Definition
	bound  bool
	values url.Values
	files  map[string][]*multipart.FileHeader

	cleaned map[string]any
	errors  Errors
	checked bool
}

// Definition returns the declaration the form was created from.
func (f *Form) Definition() Definition {
	return f.def
}

// IsBound reports whether the form carries submitted data.
func (f *Form) IsBound() bool {
	return f != nil && f.bound
}

// IsValid cleans the form on first use and reports whether it has no errors.
// Unbound forms are never valid.
func (f *Form) IsValid() bool {
	if f == nil || !f.bound {
		return false
	}
	f.fullClean()
	return len(f.errors) == 0
}

// Errors returns the collected errors. Errors are only populated after
// IsValid ran on a bound form, or after AddError.
func (f *Form) Errors() Errors {
	if f == nil {
		return nil
	}
	if f.bound {
		f.fullClean()
	}
	return f.errors.clone()
}

// HasErrors reports whether any error was collected.
func (f *Form) HasErrors() bool {
	return len(f.Errors()) > 0
}

// NonFieldErrors returns messages that are not tied to a field.
func (f *Form) NonFieldErrors() []string {
	return f.Errors()[NonFieldErrors]
}

// Cleaned returns the cleaned values of a valid form, keyed by field name.
// It returns nil for invalid or unbound forms.
func (f *Form) Cleaned() map[string]any {
	if !f.IsValid() {
		return nil
	}
	out := make(map[string]any, len(f.cleaned))
	for key, value := range f.cleaned {
		out[key] = value
	}
	return out
}

// Value returns the first submitted value for name.
func (f *Form) Value(name string) string {
	if f == nil || f.values == nil {
		return ""
	}
	return f.values.Get(name)
}

// Values returns every submitted value for name.
func (f *Form) Values(name string) []string {
	if f == nil || f.values == nil {
		return nil
	}
	return append([]string(nil), f.values[name]...)
}

// Files returns the uploaded files for name.
func (f *Form) Files(name string) []*multipart.FileHeader {
	if f == nil || f.files == nil {
		return nil
	}
	return f.files[name]
}

// AddError attaches msg to field. Unknown or empty field names record a
// non-field error. Adding an error to a valid form removes the field from the
// cleaned values.
func (f *Form) AddError(field, msg string) {
	if f == nil {
		return
	}
	if f.bound {
		f.fullClean()
	}
	if _, ok := f.def.Field(field); !ok {
		field = NonFieldErrors
	}
	if f.errors == nil {
		f.errors = Errors{}
	}
	f.errors.add(field, msg)
	if f.cleaned != nil && field != NonFieldErrors {
		delete(f.cleaned, field)
	}
}

// AddErrors merges a payload keyed by loosely formed paths, for example
// "#/properties/email", "data.email" or "email", onto the form fields.
// Unmatched paths become non-field errors.
func (f *Form) AddErrors(payload map[string][]string) {
	if f == nil {
		return
	}
	mapping := mapErrorPayload(f.def, payload)
	for _, field := range sortedKeys(mapping.Fields) {
		for _, msg := range mapping.Fields[field] {
			f.AddError(field, msg)
		}
	}
	for _, msg := range mapping.Form {
		f.AddError(NonFieldErrors, msg)
	}
}

func (f *Form) fullClean() {
	if f.checked {
		return
	}
	f.checked = true
	f.cleaned = make(map[string]any, len(f.def.fields))
	if f.errors == nil {
		f.errors = Errors{}
	}

	for _, field := range f.def.fields {
		value, err := field.Clean(f.values[field.Name], f.files[field.Name])
		if err != nil {
			f.errors.add(field.Name, err.Error())
			continue
		}
		f.cleaned[field.Name] = value
	}

	if len(f.errors) > 0 || f.def.clean == nil {
		return
	}
	if err := f.def.clean(f.cleaned); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			mapping := mapErrorPayload(f.def, verr.Errors)
			for _, name := range sortedKeys(mapping.Fields) {
				for _, msg := range mapping.Fields[name] {
					f.errors.add(name, msg)
					delete(f.cleaned, name)
				}
			}
			for _, msg := range mapping.Form {
				f.errors.add(NonFieldErrors, msg)
			}
			return
		}
		f.errors.add(NonFieldErrors, err.Error())
	}
}

// BoundField is the template view of a field.
type BoundField struct {
	Name     string
	ID       string
	Label    string
	Type     string
	HelpText string
	Required bool
	Value    string
	Values   []string
	Checked  bool
	Choices  []BoundChoice
	Errors   []string
}

// BoundChoice is the template view of a choice.
type BoundChoice struct {
	Value    string
	Label    string
	Selected bool
}

// BoundFields returns the template view of every field in declaration order.
// Bound forms display submitted values, unbound forms display initial values.
func (f *Form) BoundFields() []BoundField {
	if f == nil {
		return nil
	}
	errs := f.Errors()
	out := make([]BoundField, 0, len(f.def.fields))
	for _, field := range f.def.fields {
		values := f.displayValues(field)
		view := BoundField{
			Name:     field.Name,
			ID:       "id_" + field.Name,
			Label:    field.Label,
			Type:     string(field.Type),
			HelpText: field.HelpText,
			Required: field.Required,
			Errors:   append([]string(nil), errs[field.Name]...),
		}
		if len(values) > 0 && field.Type != TypePassword && field.Type != TypeFile {
			view.Value = values[0]
			view.Values = append([]string(nil), values...)
		}
		if field.Type == TypeBoolean && len(values) > 0 {
			view.Checked, _ = parseBool(values[0])
		}
		for _, choice := range field.Choices {
			view.Choices = append(view.Choices, BoundChoice{
				Value:    choice.Value,
				Label:    choice.Label,
				Selected: contains(values, choice.Value),
			})
		}
		out = append(out, view)
	}
	return out
}

func (f *Form) displayValues(field Field) []string {
	if f.bound {
		return f.values[field.Name]
	}
	return initialStrings(field.Initial)
}

// InitialValues returns the initial value of the field as submitted strings.
func (f Field) InitialValues() []string {
	return initialStrings(f.Initial)
}

func initialStrings(initial any) []string {
	switch v := initial.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case bool:
		return []string{strconv.FormatBool(v)}
	case int:
		return []string{strconv.Itoa(v)}
	case int64:
		return []string{strconv.FormatInt(v, 10)}
	case float64:
		return []string{formatNumber(v)}
	case time.Time:
		return []string{v.Format(DateLayout)}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
