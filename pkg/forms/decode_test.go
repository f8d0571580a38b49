package forms_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbutton/pkg/forms"
)

type importInput struct {
	Source string    `form:"source"`
	Limit  int       `form:"limit"`
	Tags   []string  `form:"tags"`
	DryRun bool      `form:"dry_run"`
	Since  time.Time `form:"since"`
	Secret string
}

func TestDecode_ValidForm(t *testing.T) {
	def := forms.MustDefinition(
		forms.Field{Name: "source", Required: true},
		forms.Field{Name: "limit", Type: forms.TypeInteger},
		forms.Field{Name: "tags", Type: forms.TypeMultipleChoice, Choices: []forms.Choice{{Value: "go"}, {Value: "web"}}},
		forms.Field{Name: "dry_run", Type: forms.TypeBoolean},
		forms.Field{Name: "since", Type: forms.TypeDate},
	)
	form := def.Bind(url.Values{
		"source":  {" feed "},
		"limit":   {"7"},
		"tags":    {"go", "web"},
		"dry_run": {"on"},
		"since":   {"2024-01-02"},
		"Secret":  {"ignored"},
	}, nil)

	var got importInput
	if err := forms.Decode(form, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := importInput{
		Source: "feed",
		Limit:  7,
		Tags:   []string{"go", "web"},
		DryRun: true,
		Since:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_InvalidForm(t *testing.T) {
	def := forms.MustDefinition(forms.Field{Name: "source", Required: true})
	var got importInput
	if err := forms.Decode(def.Bind(url.Values{}, nil), &got); !errors.Is(err, forms.ErrNotValid) {
		t.Fatalf("expected ErrNotValid, got %v", err)
	}
	if err := forms.Decode(def.New(), &got); !errors.Is(err, forms.ErrNotValid) {
		t.Fatalf("expected ErrNotValid for unbound form, got %v", err)
	}
}
