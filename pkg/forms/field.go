package forms

import (
	"strings"
	"unicode"
)

// FieldType selects the widget and the conversion applied while cleaning.
type FieldType string

const (
	TypeText           FieldType = "text"
	TypeTextArea       FieldType = "textarea"
	TypePassword       FieldType = "password"
	TypeEmail          FieldType = "email"
	TypeURL            FieldType = "url"
	TypeInteger        FieldType = "integer"
	TypeNumber         FieldType = "number"
	TypeBoolean        FieldType = "boolean"
	TypeDate           FieldType = "date"
	TypeChoice         FieldType = "choice"
	TypeMultipleChoice FieldType = "multiple_choice"
	TypeFile           FieldType = "file"
	TypeHidden         FieldType = "hidden"
)

// DateLayout is the layout accepted by date fields.
const DateLayout = "2006-01-02"

// ValidatorFunc runs after a field value has been converted. The value has the
// cleaned Go type of the field (string, int64, float64, bool, time.Time,
// []string or []*multipart.FileHeader).
type ValidatorFunc func(value any) error

// Choice is a single option of a choice or multiple choice field.
type Choice struct {
	Value string
	Label string
}

// Field declares one input of a form.
type Field struct {
	Name       string
	Label      string
	Type       FieldType
	HelpText   string
	Initial    any
	Required   bool
	MinLength  int
	MaxLength  int
	Pattern    string
	Min        *float64
	Max        *float64
	Choices    []Choice
	Validators []ValidatorFunc
}

// Text is a shorthand for a text field.
func Text(name, label string) Field {
	return Field{Name: name, Label: label, Type: TypeText}
}

// Bound returns a pointer to v, convenient for Field.Min and Field.Max.
func Bound(v float64) *float64 {
	return &v
}

func (f Field) normalized() Field {
	f.Name = strings.TrimSpace(f.Name)
	if f.Type == "" {
		f.Type = TypeText
	}
	if strings.TrimSpace(f.Label) == "" {
		f.Label = humanize(f.Name)
	}
	if len(f.Choices) > 0 {
		f.Choices = append([]Choice(nil), f.Choices...)
		for i := range f.Choices {
			if f.Choices[i].Label == "" {
				f.Choices[i].Label = f.Choices[i].Value
			}
		}
	}
	if len(f.Validators) > 0 {
		f.Validators = append([]ValidatorFunc(nil), f.Validators...)
	}
	return f
}

func (f Field) hasChoice(value string) bool {
	for _, choice := range f.Choices {
		if choice.Value == value {
			return true
		}
	}
	return false
}

// humanize turns "send_at" or "sendAt" into "Send at".
func humanize(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		b.WriteRune(unicode.ToLower(r))
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if out == "" {
		return ""
	}
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
