package button

import (
	"net/http"

	"github.com/goliatone/go-formbutton/pkg/forms"
	"github.com/goliatone/go-formbutton/pkg/templates"
)

// FormPage describes the form page of a button.
type FormPage struct {
	Title       string
	Action      string
	SubmitField string
	Form        *forms.Form
	Hidden      []forms.HiddenField
	Selected    []string
}

// FormRenderer writes the form page of a button.
type FormRenderer interface {
	RenderForm(w http.ResponseWriter, r *http.Request, page FormPage) error
}

// Context returns the template context of the page.
func (p FormPage) Context() map[string]any {
	ctx := map[string]any{
		"title":         p.Title,
		"action":        p.Action,
		"submit_field":  p.SubmitField,
		"hidden_fields": p.Hidden,
		"selected":      p.Selected,
	}
	if p.Form != nil {
		ctx["form"] = p.Form
		ctx["fields"] = p.Form.BoundFields()
		ctx["has_errors"] = p.Form.HasErrors()
		ctx["non_field_errors"] = p.Form.NonFieldErrors()
	}
	return ctx
}

// TemplateRenderer renders form pages with a template engine. The zero value
// uses the embedded templates.
type TemplateRenderer struct {
	Templates  templates.Renderer
	SiteHeader string
	SiteTitle  string
}

var _ FormRenderer = TemplateRenderer{}

func (t TemplateRenderer) RenderForm(w http.ResponseWriter, _ *http.Request, page FormPage) error {
	engine := t.Templates
	if engine == nil {
		engine = templates.Default()
	}
	ctx := page.Context()
	ctx["site_header"] = t.SiteHeader
	ctx["site_title"] = t.SiteTitle

	html, err := engine.RenderTemplate(templates.FormTemplate, ctx)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte(html))
	return err
}
