package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/form/v4"
)

// ErrNotValid is returned by Decode for unbound or invalid forms.
var ErrNotValid = errors.New("forms: form is not valid")

var (
	decoderOnce sync.Once
	decoder     *form.Decoder
)

func structDecoder() *form.Decoder {
	decoderOnce.Do(func() {
		decoder = form.NewDecoder()
		decoder.SetTagName("form")
		decoder.SetMode(form.ModeExplicit)
		decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
			if len(vals) == 0 || vals[0] == "" {
				return time.Time{}, nil
			}
			if t, err := time.Parse(DateLayout, vals[0]); err == nil {
				return t, nil
			}
			return time.Parse(time.RFC3339, vals[0])
		}, time.Time{})
	})
	return decoder
}

// Decode copies the submitted values of a valid form into dst, a pointer to a
// struct whose fields carry `form:"name"` tags. Only declared fields are
// decoded; undeclared request values are ignored.
func Decode(f *Form, dst any) error {
	if f == nil || !f.IsValid() {
		return ErrNotValid
	}
	values := url.Values{}
	for _, field := range f.def.fields {
		switch field.Type {
		case TypeFile:
			continue
		case TypeBoolean:
			if checked, _ := f.cleaned[field.Name].(bool); checked {
				values.Set(field.Name, "true")
			} else {
				values.Set(field.Name, "false")
			}
			continue
		}
		if submitted, ok := f.values[field.Name]; ok {
			values[field.Name] = trimAll(submitted, field.Type != TypePassword)
		}
	}
	if err := structDecoder().Decode(dst, values); err != nil {
		return fmt.Errorf("forms: decode: %w", err)
	}
	return nil
}

func trimAll(values []string, trim bool) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trim {
			value = strings.TrimSpace(value)
		}
		out = append(out, value)
	}
	return out
}
