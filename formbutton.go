// Package formbutton adds form-backed action buttons to admin change lists.
//
// The subpackages hold the pieces: forms declares and cleans forms, button
// wraps callbacks into handlers, admin mounts them next to a change list,
// templates renders the pages and terminal fills a form from a shell. This
// package re-exports the common entry points:
//
//	importArticles := formbutton.MustFormButton("Import articles", importForm,
//		func(w http.ResponseWriter, r *http.Request, form *formbutton.Form) error {
//			return store.Import(form.Value("source"))
//		})
//	articles := admin.NewModelAdmin("articles", admin.WithButtons(importArticles))
//	patterns, err := formbutton.RegisterRoutes(mux, articles)
package formbutton

import (
	"github.com/goliatone/go-formbutton/pkg/admin"
	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/forms"
)

// Button aliases button.Button.
type Button = button.Button

// Form aliases forms.Form, the value handed to form button callbacks.
type Form = forms.Form

// Field aliases forms.Field.
type Field = forms.Field

// FormFunc aliases button.FormFunc.
type FormFunc = button.FormFunc

// ButtonFunc aliases button.Func.
type ButtonFunc = button.Func

// FormButton wraps fn so it only runs once the form built by factory
// validates. The button name defaults to the snake_case function name.
func FormButton(title string, factory forms.Factory, fn FormFunc, options ...button.OptionFn) (*Button, error) {
	return button.NewForm(title, factory, fn, options...)
}

// MustFormButton is FormButton that panics on error.
func MustFormButton(title string, factory forms.Factory, fn FormFunc, options ...button.OptionFn) *Button {
	return button.MustNewForm(title, factory, fn, options...)
}

// NewButton wraps fn as a button without a form.
func NewButton(title string, fn ButtonFunc, options ...button.OptionFn) (*Button, error) {
	return button.New(title, fn, options...)
}

// MustButton is NewButton that panics on error.
func MustButton(title string, fn ButtonFunc, options ...button.OptionFn) *Button {
	return button.MustNew(title, fn, options...)
}

// NewForm declares a form; see forms.NewDefinition.
func NewForm(fields ...Field) (forms.Definition, error) {
	return forms.NewDefinition(fields...)
}

// RegisterRoutes registers admins on the default site and mounts the site on
// mux.
func RegisterRoutes(mux admin.Mux, admins ...*admin.ModelAdmin) ([]string, error) {
	site := admin.DefaultSite()
	if err := site.Register(admins...); err != nil {
		return nil, err
	}
	return site.RegisterRoutes(mux)
}
