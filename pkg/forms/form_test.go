package forms_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbutton/pkg/forms"
)

func importDefinition(t *testing.T) forms.Definition {
	t.Helper()
	def, err := forms.NewDefinition(
		forms.Field{Name: "source", Type: forms.TypeURL, Required: true, HelpText: "Feed to import"},
		forms.Field{Name: "limit", Type: forms.TypeInteger, Min: forms.Bound(1), Max: forms.Bound(100), Initial: 10},
		forms.Field{Name: "notify", Type: forms.TypeEmail},
		forms.Field{Name: "format", Type: forms.TypeChoice, Choices: []forms.Choice{{Value: "rss"}, {Value: "atom"}}, Initial: "rss"},
		forms.Field{Name: "dry_run", Type: forms.TypeBoolean},
		forms.Field{Name: "since", Type: forms.TypeDate},
	)
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	return def
}

func TestForm_UnboundIsNeverValid(t *testing.T) {
	form := importDefinition(t).New()
	if form.IsBound() {
		t.Fatalf("expected unbound form")
	}
	if form.IsValid() {
		t.Fatalf("expected unbound form to be invalid")
	}
	if form.HasErrors() {
		t.Fatalf("expected no errors on unbound form, got %v", form.Errors())
	}
}

func TestForm_BindValid(t *testing.T) {
	form := importDefinition(t).Bind(url.Values{
		"source":  {" https://example.com/feed.xml "},
		"limit":   {"25"},
		"notify":  {"ops@example.com"},
		"format":  {"atom"},
		"dry_run": {"on"},
		"since":   {"2024-03-01"},
	}, nil)

	if !form.IsValid() {
		t.Fatalf("expected valid form, got errors %v", form.Errors())
	}

	want := map[string]any{
		"source":  "https://example.com/feed.xml",
		"limit":   int64(25),
		"notify":  "ops@example.com",
		"format":  "atom",
		"dry_run": true,
		"since":   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, form.Cleaned()); diff != "" {
		t.Fatalf("cleaned mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_BindCollectsFieldErrors(t *testing.T) {
	form := importDefinition(t).Bind(url.Values{
		"limit":  {"500"},
		"notify": {"Ops <ops@example.com>"},
		"format": {"json"},
		"since":  {"yesterday"},
	}, nil)

	if form.IsValid() {
		t.Fatalf("expected invalid form")
	}
	want := forms.Errors{
		"source": {"This field is required."},
		"limit":  {"Ensure this value is less than or equal to 100."},
		"notify": {"Enter a valid email address."},
		"format": {"Select a valid choice. json is not one of the available choices."},
		"since":  {"Enter a valid date."},
	}
	if diff := cmp.Diff(want, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if form.Cleaned() != nil {
		t.Fatalf("expected nil cleaned data for invalid form")
	}
}

func TestForm_CleanHookValidationError(t *testing.T) {
	def := forms.MustDefinition(
		forms.Field{Name: "password", Type: forms.TypePassword, Required: true},
		forms.Field{Name: "confirm", Type: forms.TypePassword, Required: true},
	).WithClean(func(cleaned map[string]any) error {
		if cleaned["password"] != cleaned["confirm"] {
			return forms.FieldError("confirm", "Passwords do not match.")
		}
		return nil
	})

	form := def.Bind(url.Values{"password": {"a"}, "confirm": {"b"}}, nil)
	if form.IsValid() {
		t.Fatalf("expected invalid form")
	}
	if diff := cmp.Diff(forms.Errors{"confirm": {"Passwords do not match."}}, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_CleanHookPlainErrorIsNonField(t *testing.T) {
	def := forms.MustDefinition(forms.Text("name", "")).WithClean(func(map[string]any) error {
		return errors.New("Import already running.")
	})
	form := def.Bind(url.Values{"name": {"x"}}, nil)
	if form.IsValid() {
		t.Fatalf("expected invalid form")
	}
	if diff := cmp.Diff([]string{"Import already running."}, form.NonFieldErrors()); diff != "" {
		t.Fatalf("non-field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_AddErrorsMapsPaths(t *testing.T) {
	form := importDefinition(t).Bind(url.Values{"source": {"https://example.com"}}, nil)
	if !form.IsValid() {
		t.Fatalf("expected valid form, got %v", form.Errors())
	}

	form.AddErrors(map[string][]string{
		"#/properties/source": {"Feed unreachable.", " Feed unreachable. "},
		"data.limit":          {"Quota exceeded."},
		"__all__":             {"Try again later."},
		"unknown.path":        {"Unexpected."},
		"notify":              {"   "},
	})

	want := forms.Errors{
		"source":             {"Feed unreachable."},
		"limit":              {"Quota exceeded."},
		forms.NonFieldErrors: {"Try again later.", "Unexpected."},
	}
	if diff := cmp.Diff(want, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if form.IsValid() {
		t.Fatalf("expected form to become invalid")
	}
}

func TestForm_BoundFieldsUseInitialWhenUnbound(t *testing.T) {
	fields := importDefinition(t).New().BoundFields()
	if len(fields) != 6 {
		t.Fatalf("expected 6 fields, got %d", len(fields))
	}
	if fields[0].Label != "Source" || fields[0].ID != "id_source" || !fields[0].Required {
		t.Fatalf("unexpected source field: %#v", fields[0])
	}
	if fields[1].Value != "10" {
		t.Fatalf("expected initial limit, got %q", fields[1].Value)
	}
	want := []forms.BoundChoice{
		{Value: "rss", Label: "rss", Selected: true},
		{Value: "atom", Label: "atom"},
	}
	if diff := cmp.Diff(want, fields[3].Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if fields[4].Label != "Dry run" {
		t.Fatalf("expected humanized label, got %q", fields[4].Label)
	}
}

func TestForm_BoundFieldsCarryErrorsAndValues(t *testing.T) {
	form := importDefinition(t).Bind(url.Values{"limit": {"abc"}}, nil)
	fields := form.BoundFields()
	if fields[1].Value != "abc" {
		t.Fatalf("expected submitted value, got %q", fields[1].Value)
	}
	if diff := cmp.Diff([]string{"Enter a whole number."}, fields[1].Errors); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDefinition_Rejects(t *testing.T) {
	cases := map[string][]forms.Field{
		"empty name": {{Name: " "}},
		"duplicate":  {{Name: "a"}, {Name: "a"}},
		"reserved":   {{Name: forms.NonFieldErrors}},
		"pattern":    {{Name: "a", Pattern: "("}},
		"no choices": {{Name: "a", Type: forms.TypeChoice}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := forms.NewDefinition(fields...)
			if !errors.Is(err, forms.ErrInvalidDefinition) {
				t.Fatalf("expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}
