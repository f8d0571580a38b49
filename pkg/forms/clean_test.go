package forms

import (
	"errors"
	"testing"
)

func TestFieldClean(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		raw     []string
		want    any
		wantErr string
	}{
		{name: "optional blank text", field: Field{Name: "a"}, raw: []string{"  "}, want: ""},
		{name: "trimmed text", field: Field{Name: "a"}, raw: []string{" hi "}, want: "hi"},
		{name: "password keeps spaces", field: Field{Name: "a", Type: TypePassword}, raw: []string{" pw "}, want: " pw "},
		{name: "max length", field: Field{Name: "a", MaxLength: 3}, raw: []string{"abcd"}, wantErr: "Ensure this value has at most 3 characters (it has 4)."},
		{name: "min length", field: Field{Name: "a", MinLength: 3}, raw: []string{"ab"}, wantErr: "Ensure this value has at least 3 characters (it has 2)."},
		{name: "pattern anchored", field: Field{Name: "a", Pattern: "[a-z]+"}, raw: []string{"abc1"}, wantErr: "Enter a valid value."},
		{name: "url without scheme", field: Field{Name: "a", Type: TypeURL}, raw: []string{"example.com"}, wantErr: "Enter a valid URL."},
		{name: "number", field: Field{Name: "a", Type: TypeNumber, Min: Bound(0.5)}, raw: []string{"0.25"}, wantErr: "Ensure this value is greater than or equal to 0.5."},
		{name: "required boolean unchecked", field: Field{Name: "a", Type: TypeBoolean, Required: true}, raw: nil, wantErr: "This field is required."},
		{name: "boolean garbage", field: Field{Name: "a", Type: TypeBoolean}, raw: []string{"maybe"}, wantErr: "Enter a valid boolean."},
		{name: "multiple choice", field: Field{Name: "a", Type: TypeMultipleChoice, Choices: []Choice{{Value: "x"}, {Value: "y"}}}, raw: []string{"x", "", "y"}, want: []string{"x", "y"}},
		{name: "multiple choice required", field: Field{Name: "a", Type: TypeMultipleChoice, Required: true, Choices: []Choice{{Value: "x"}}}, raw: []string{""}, wantErr: "Select at least one choice."},
		{name: "file required", field: Field{Name: "a", Type: TypeFile, Required: true}, wantErr: "This field is required."},
		{name: "validator", field: Field{Name: "a", Validators: []ValidatorFunc{func(v any) error {
			if v.(string) == "root" {
				return errors.New("Reserved name.")
			}
			return nil
		}}}, raw: []string{"root"}, wantErr: "Reserved name."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Clean(tt.raw, nil)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch want := tt.want.(type) {
			case []string:
				gotSlice, ok := got.([]string)
				if !ok || len(gotSlice) != len(want) {
					t.Fatalf("expected %v, got %#v", want, got)
				}
				for i := range want {
					if gotSlice[i] != want[i] {
						t.Fatalf("expected %v, got %v", want, gotSlice)
					}
				}
			default:
				if got != tt.want {
					t.Fatalf("expected %#v, got %#v", tt.want, got)
				}
			}
		})
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"send_at":   "Send at",
		"sendAt":    "Send at",
		"dry-run":   "Dry run",
		"URL":       "Url",
		"":          "",
		"feed_url2": "Feed url2",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Fatalf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
