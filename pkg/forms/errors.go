package forms

import (
	"sort"
	"strconv"
	"strings"
)

// NonFieldErrors is the Errors key holding messages for the whole form.
const NonFieldErrors = "__all__"

// Errors maps field names to their messages.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	for _, existing := range e[field] {
		if existing == msg {
			return
		}
	}
	e[field] = append(e[field], msg)
}

func (e Errors) clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for key, messages := range e {
		out[key] = append([]string(nil), messages...)
	}
	return out
}

// ValidationError carries messages produced outside field cleaning, by a
// form-level clean hook or by a button callback, back onto the form.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "forms: validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, key := range sortedKeys(e.Errors) {
		parts = append(parts, key+": "+strings.Join(e.Errors[key], " "))
	}
	return "forms: validation failed: " + strings.Join(parts, "; ")
}

// FieldError builds a ValidationError for a single field.
func FieldError(field, msg string) *ValidationError {
	return &ValidationError{Errors: Errors{field: {msg}}}
}

// FormError builds a ValidationError not tied to a field.
func FormError(msg string) *ValidationError {
	return &ValidationError{Errors: Errors{NonFieldErrors: {msg}}}
}

type errorMapping struct {
	Fields map[string][]string
	Form   []string
}

// mapErrorPayload normalises server error payloads (JSON pointers, dotted or
// slashed paths, wrapper segments such as "data" or "body") onto field names.
// Unknown paths are kept as form-level messages so nothing is lost.
func mapErrorPayload(def Definition, payload map[string][]string) errorMapping {
	mapping := errorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping
	}

	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		field, ok := matchField(def, rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[field] = append(mapping.Fields[field], messages...)
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchField(def Definition, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	if _, ok := def.Field(trimmed); ok {
		return trimmed, true
	}

	for _, segment := range dropWrapperSegments(parsePathSegments(trimmed)) {
		if segment == "properties" || isNumeric(segment) {
			continue
		}
		if _, ok := def.Field(segment); ok {
			return segment, true
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isNumeric(segment string) bool {
	_, err := strconv.Atoi(segment)
	return err == nil
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", NonFieldErrors, "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
