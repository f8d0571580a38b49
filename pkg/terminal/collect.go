package terminal

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/forms"
)

// Options configures Collect.
type Options struct {
	SubmitField string
	Selected    []string
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the options used when no OptionFn is given.
func DefaultOptions() Options {
	return Options{SubmitField: button.DefaultSubmitField}
}

// NewOptions applies fns over DefaultOptions.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.SubmitField = strings.TrimSpace(opts.SubmitField)
	if opts.SubmitField == "" {
		opts.SubmitField = button.DefaultSubmitField
	}
	return opts
}

// WithSubmitField matches a button built with button.WithSubmitField.
func WithSubmitField(field string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubmitField = field
	}
}

// WithSelected sends ids as the change-list selection.
func WithSelected(ids ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Selected = append(o.Selected, ids...)
	}
}

// Collect prompts for every field of def and returns the answers encoded as a
// form submission. Invalid answers are reported through driver.Info and asked
// again. File fields cannot be filled from a terminal and are skipped.
func Collect(ctx context.Context, driver PromptDriver, def forms.Definition, fns ...OptionFn) (url.Values, error) {
	if driver == nil {
		return nil, ErrMissingDriver
	}
	opts := NewOptions(fns...)
	values := url.Values{}

	for _, field := range def.Fields() {
		answers, err := promptField(ctx, driver, field)
		if err != nil {
			return nil, fmt.Errorf("terminal: %s: %w", field.Name, err)
		}
		for _, answer := range answers {
			values.Add(field.Name, answer)
		}
	}

	for _, id := range opts.Selected {
		values.Add(button.SelectedActionField, id)
	}
	values.Set(opts.SubmitField, "Submit")
	return values, nil
}

func promptField(ctx context.Context, driver PromptDriver, field forms.Field) ([]string, error) {
	switch field.Type {
	case forms.TypeFile:
		msg := fmt.Sprintf("Skipping %s: files can only be uploaded from the browser.", field.Label)
		return nil, driver.Info(ctx, msg)
	case forms.TypeHidden:
		return field.InitialValues(), nil
	}

	for {
		answers, err := driver.Ask(ctx, field)
		if err != nil {
			return nil, err
		}
		if _, err := field.Clean(answers, nil); err != nil {
			if infoErr := driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Label, err)); infoErr != nil {
				return nil, infoErr
			}
			continue
		}
		return answers, nil
	}
}
