package templates

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	filtersOnce sync.Once

	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// SanitizeHTML strips markup that is unsafe in help texts while keeping
// formatting and links.
func SanitizeHTML(raw string) string {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		helpPolicy = policy
	})
	return strings.TrimSpace(helpPolicy.Sanitize(raw))
}

// InputType maps a form field type to the HTML input type attribute.
func InputType(fieldType string) string {
	switch fieldType {
	case "email", "url", "password", "date", "hidden", "file":
		return fieldType
	case "integer", "number":
		return "number"
	case "boolean":
		return "checkbox"
	default:
		return "text"
	}
}

func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
		if !pongo2.FilterExists("input_type") {
			_ = pongo2.RegisterFilter("input_type", filterInputType)
		}
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(SanitizeHTML(in.String())), nil
}

func filterInputType(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(InputType(in.String())), nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
