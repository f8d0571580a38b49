package forms

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	msgRequired       = "This field is required."
	msgInvalid        = "Enter a valid value."
	msgEmail          = "Enter a valid email address."
	msgURL            = "Enter a valid URL."
	msgInteger        = "Enter a whole number."
	msgNumber         = "Enter a number."
	msgDate           = "Enter a valid date."
	msgBoolean        = "Enter a valid boolean."
	msgChoice         = "Select a valid choice. %s is not one of the available choices."
	msgMaxLength      = "Ensure this value has at most %d characters (it has %d)."
	msgMinLength      = "Ensure this value has at least %d characters (it has %d)."
	msgMaxValue       = "Ensure this value is less than or equal to %s."
	msgMinValue       = "Ensure this value is greater than or equal to %s."
	msgRequiredChoice = "Select at least one choice."
)

var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// Clean converts raw submitted values for a single field and runs its
// validators. It is exported for callers that validate answers one field at a
// time, such as terminal prompts.
func (f Field) Clean(raw []string, files []*multipart.FileHeader) (any, error) {
	f = f.normalized()
	value, err := f.convert(raw, files)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return zeroValue(f), nil
	}
	for _, validator := range f.Validators {
		if validator == nil {
			continue
		}
		if err := validator(value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// CleanString is Clean for a single raw string.
func (f Field) CleanString(raw string) (any, error) {
	return f.Clean([]string{raw}, nil)
}

// convert returns a nil value when the field is empty and optional.
func (f Field) convert(raw []string, files []*multipart.FileHeader) (any, error) {
	switch f.Type {
	case TypeFile:
		if len(files) == 0 {
			if f.Required {
				return nil, errors.New(msgRequired)
			}
			return nil, nil
		}
		return append([]*multipart.FileHeader(nil), files...), nil
	case TypeMultipleChoice:
		selected := make([]string, 0, len(raw))
		for _, value := range raw {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				selected = append(selected, trimmed)
			}
		}
		if len(selected) == 0 {
			if f.Required {
				return nil, errors.New(msgRequiredChoice)
			}
			return nil, nil
		}
		for _, value := range selected {
			if !f.hasChoice(value) {
				return nil, fmt.Errorf(msgChoice, value)
			}
		}
		return selected, nil
	case TypeBoolean:
		value := ""
		if len(raw) > 0 {
			value = raw[0]
		}
		checked, ok := parseBool(value)
		if !ok {
			return nil, errors.New(msgBoolean)
		}
		if !checked && f.Required {
			return nil, errors.New(msgRequired)
		}
		return checked, nil
	}

	value := ""
	if len(raw) > 0 {
		value = raw[0]
	}
	if f.Type != TypePassword {
		value = strings.TrimSpace(value)
	}
	if strings.TrimSpace(value) == "" {
		if f.Required {
			return nil, errors.New(msgRequired)
		}
		return nil, nil
	}

	if n := utf8.RuneCountInString(value); f.MaxLength > 0 && n > f.MaxLength {
		return nil, fmt.Errorf(msgMaxLength, f.MaxLength, n)
	}
	if n := utf8.RuneCountInString(value); f.MinLength > 0 && n < f.MinLength {
		return nil, fmt.Errorf(msgMinLength, f.MinLength, n)
	}
	if f.Pattern != "" {
		re, err := compilePattern(f.Pattern)
		if err != nil || !re.MatchString(value) {
			return nil, errors.New(msgInvalid)
		}
	}

	switch f.Type {
	case TypeEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Name != "" || addr.Address != value {
			return nil, errors.New(msgEmail)
		}
		return addr.Address, nil
	case TypeURL:
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.New(msgURL)
		}
		return u.String(), nil
	case TypeInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.New(msgInteger)
		}
		if err := f.checkRange(float64(n)); err != nil {
			return nil, err
		}
		return n, nil
	case TypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.New(msgNumber)
		}
		if err := f.checkRange(n); err != nil {
			return nil, err
		}
		return n, nil
	case TypeDate:
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return nil, errors.New(msgDate)
		}
		return t, nil
	case TypeChoice:
		if !f.hasChoice(value) {
			return nil, fmt.Errorf(msgChoice, value)
		}
		return value, nil
	default:
		return value, nil
	}
}

func (f Field) checkRange(n float64) error {
	if f.Min != nil && n < *f.Min {
		return fmt.Errorf(msgMinValue, formatNumber(*f.Min))
	}
	if f.Max != nil && n > *f.Max {
		return fmt.Errorf(msgMaxValue, formatNumber(*f.Max))
	}
	return nil
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off", "no", "n":
		return false, true
	case "1", "true", "on", "yes", "y":
		return true, true
	default:
		return false, false
	}
}

func zeroValue(f Field) any {
	switch f.Type {
	case TypeBoolean:
		return false
	case TypeMultipleChoice:
		return []string{}
	case TypeFile:
		return []*multipart.FileHeader(nil)
	case TypeInteger, TypeNumber, TypeDate:
		return nil
	default:
		return ""
	}
}
