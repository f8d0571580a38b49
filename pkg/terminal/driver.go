package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	surveyterm "github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formbutton/pkg/forms"
)

// emptyChoice is offered first for optional choice fields.
const emptyChoice = "---------"

// PromptDriver asks for the raw answers of one field. Collect validates what
// comes back, so a driver only has to pick a prompt that fits the field.
type PromptDriver interface {
	Ask(ctx context.Context, field forms.Field) ([]string, error)
	Info(ctx context.Context, msg string) error
}

// SurveyDriver prompts through survey.
type SurveyDriver struct {
	opts  []survey.AskOpt
	stdio surveyterm.Stdio
}

// NewSurveyDriver returns a driver that passes opts to every prompt. Use
// survey.WithStdio to run against something other than the process terminal;
// Info messages follow the configured output.
func NewSurveyDriver(opts ...survey.AskOpt) *SurveyDriver {
	d := &SurveyDriver{
		stdio: surveyterm.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		var applied survey.AskOptions
		if err := opt(&applied); err == nil && applied.Stdio.Out != nil {
			d.stdio = applied.Stdio
		}
		d.opts = append(d.opts, opt)
	}
	return d
}

// Ask maps the field type onto a survey prompt. Choice answers are returned
// as choice values, not labels.
func (d *SurveyDriver) Ask(ctx context.Context, field forms.Field) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	initial := field.InitialValues()
	first := ""
	if len(initial) > 0 {
		first = initial[0]
	}

	switch field.Type {
	case forms.TypeBoolean:
		var ok bool
		prompt := &survey.Confirm{
			Message: field.Label,
			Default: isChecked(first),
			Help:    field.HelpText,
		}
		if err := d.askOne(prompt, &ok); err != nil || !ok {
			return nil, err
		}
		return []string{"on"}, nil

	case forms.TypeChoice:
		labels, values := choiceOptions(field, !field.Required)
		prompt := &survey.Select{
			Message: field.Label,
			Options: labels,
			Help:    field.HelpText,
		}
		for i, value := range values {
			if value == first {
				prompt.Default = i
				break
			}
		}
		var idx int
		if err := d.askOne(prompt, &idx); err != nil {
			return nil, err
		}
		return []string{values[idx]}, nil

	case forms.TypeMultipleChoice:
		labels, values := choiceOptions(field, false)
		prompt := &survey.MultiSelect{
			Message: field.Label,
			Options: labels,
			Help:    field.HelpText,
		}
		if defaults := positions(values, initial); len(defaults) > 0 {
			prompt.Default = defaults
		}
		var picked []int
		if err := d.askOne(prompt, &picked); err != nil {
			return nil, err
		}
		out := make([]string, 0, len(picked))
		for _, idx := range picked {
			out = append(out, values[idx])
		}
		return out, nil

	case forms.TypeTextArea:
		var text string
		prompt := &survey.Multiline{
			Message: field.Label,
			Default: first,
			Help:    field.HelpText,
		}
		if err := d.askOne(prompt, &text); err != nil {
			return nil, err
		}
		return []string{text}, nil

	case forms.TypePassword:
		var secret string
		prompt := &survey.Password{Message: field.Label, Help: field.HelpText}
		if err := d.askOne(prompt, &secret, cleanWith(field)); err != nil {
			return nil, err
		}
		return []string{secret}, nil
	}

	var answer string
	prompt := &survey.Input{
		Message: field.Label,
		Default: first,
		Help:    inputHelp(field),
	}
	if err := d.askOne(prompt, &answer, cleanWith(field)); err != nil {
		return nil, err
	}
	return []string{answer}, nil
}

// Info prints msg on its own line.
func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.stdio.Out, msg)
	return err
}

func (d *SurveyDriver) askOne(prompt survey.Prompt, answer any, extra ...survey.AskOpt) error {
	opts := append(append([]survey.AskOpt(nil), d.opts...), extra...)
	err := survey.AskOne(prompt, answer, opts...)
	if errors.Is(err, surveyterm.InterruptErr) {
		return ErrAborted
	}
	return err
}

// cleanWith lets survey re-ask in place using the field's own rules.
func cleanWith(field forms.Field) survey.AskOpt {
	return survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		_, err := field.CleanString(s)
		return err
	})
}

func choiceOptions(field forms.Field, withEmpty bool) (labels, values []string) {
	if withEmpty {
		labels = append(labels, emptyChoice)
		values = append(values, "")
	}
	for _, choice := range field.Choices {
		labels = append(labels, choice.Label)
		values = append(values, choice.Value)
	}
	return labels, values
}

func positions(values, wanted []string) []int {
	var out []int
	for i, value := range values {
		for _, w := range wanted {
			if value == w {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func inputHelp(field forms.Field) string {
	if field.Type == forms.TypeDate && field.HelpText == "" {
		return "Format: YYYY-MM-DD"
	}
	return field.HelpText
}

func isChecked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes", "y":
		return true
	}
	return false
}
