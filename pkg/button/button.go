package button

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbutton/pkg/forms"
)

// SelectedActionField carries the primary keys selected in a change list.
const SelectedActionField = "_selected_action"

// FormFunc handles a valid submission. Returning a *forms.ValidationError
// sends the form back with the messages attached.
type FormFunc func(w http.ResponseWriter, r *http.Request, form *forms.Form) error

// Func handles a click on a button without a form.
type Func func(w http.ResponseWriter, r *http.Request) error

// Button is a wrapped callback with a display title and a URL-safe name.
type Button struct {
	title   string
	name    string
	factory forms.Factory
	formFn  FormFunc
	fn      Func
	opts    Options
}

// NewForm wraps fn with the form produced by factory.
func NewForm(title string, factory forms.Factory, fn FormFunc, fns ...OptionFn) (*Button, error) {
	if fn == nil {
		return nil, ErrMissingCallback
	}
	if factory == nil {
		return nil, fmt.Errorf("button: %q needs a form factory", title)
	}
	b, err := newButton(title, fn, fns)
	if err != nil {
		return nil, err
	}
	b.factory = factory
	b.formFn = fn
	return b, nil
}

// MustNewForm is NewForm that panics on error.
func MustNewForm(title string, factory forms.Factory, fn FormFunc, fns ...OptionFn) *Button {
	b, err := NewForm(title, factory, fn, fns...)
	if err != nil {
		panic(err)
	}
	return b
}

// New wraps fn as a button without a form.
func New(title string, fn Func, fns ...OptionFn) (*Button, error) {
	if fn == nil {
		return nil, ErrMissingCallback
	}
	b, err := newButton(title, fn, fns)
	if err != nil {
		return nil, err
	}
	b.fn = fn
	return b, nil
}

// MustNew is New that panics on error.
func MustNew(title string, fn Func, fns ...OptionFn) *Button {
	b, err := New(title, fn, fns...)
	if err != nil {
		panic(err)
	}
	return b
}

func newButton(title string, fn any, fns []OptionFn) (*Button, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	opts := NewOptions(fns...)
	name, err := resolveName(opts.Name, fn)
	if err != nil {
		return nil, err
	}
	return &Button{title: title, name: name, opts: opts}, nil
}

// Title is the label shown in the toolbar and as the form page heading.
func (b *Button) Title() string { return b.title }

// Name identifies the button in URLs.
func (b *Button) Name() string { return b.name }

// HasForm reports whether the button shows a form before running.
func (b *Button) HasForm() bool { return b.factory != nil }

// Options returns a copy of the button configuration.
func (b *Button) Options() Options { return b.opts }

// ServeHTTP serves the button with its own renderer, or the embedded
// templates when none was configured.
func (b *Button) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.Handler(nil).ServeHTTP(w, r)
}

// Handler returns the button handler rendering form pages with renderer.
// A nil renderer falls back to WithRenderer, then to the embedded templates.
func (b *Button) Handler(renderer FormRenderer) http.Handler {
	if renderer == nil {
		renderer = b.opts.Renderer
	}
	if renderer == nil {
		renderer = TemplateRenderer{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		b.serve(w, r, renderer)
	})
}

func (b *Button) serve(w http.ResponseWriter, r *http.Request, renderer FormRenderer) {
	log := b.logger().WithFields(logrus.Fields{
		"button": b.name,
		"path":   r.URL.Path,
	})

	if err := parseRequest(r, b.opts.MaxMemory); err != nil {
		log.WithError(err).Warn("button: parse request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if b.factory == nil {
		b.invoke(w, r, log, nil, renderer, func(w http.ResponseWriter) error {
			return b.fn(w, r)
		})
		return
	}

	page := FormPage{
		Title:       b.title,
		Action:      b.name,
		SubmitField: b.opts.SubmitField,
		Selected:    SelectedIDs(r),
	}

	if !b.submitted(r) {
		page.Form = b.factory.New()
		b.render(w, r, log, renderer, page)
		return
	}

	var files map[string][]*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File
	}
	form := b.factory.Bind(r.PostForm, files)
	page.Form = form
	if !form.IsValid() {
		log.WithField("errors", len(form.Errors())).Debug("button: submission rejected")
		b.render(w, r, log, renderer, page)
		return
	}

	b.invoke(w, r, log, &page, renderer, func(w http.ResponseWriter) error {
		return b.formFn(w, r, form)
	})
}

func (b *Button) invoke(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, page *FormPage, renderer FormRenderer, call func(http.ResponseWriter) error) {
	tw := &trackingWriter{ResponseWriter: w}
	err := call(tw)
	if err == nil {
		if !tw.wrote {
			http.Redirect(w, r, ChangeListURL(r), http.StatusSeeOther)
		}
		return
	}

	var verr *forms.ValidationError
	if page != nil && page.Form != nil && errors.As(err, &verr) && !tw.wrote {
		page.Form.AddErrors(verr.Errors)
		b.render(w, r, log, renderer, *page)
		return
	}

	log.WithError(err).Error("button: callback failed")
	if !tw.wrote {
		WriteError(w, err, http.StatusInternalServerError)
	}
}

func (b *Button) render(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, renderer FormRenderer, page FormPage) {
	if err := renderer.RenderForm(w, r, page); err != nil {
		log.WithError(err).Error("button: render form")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (b *Button) submitted(r *http.Request) bool {
	if r.Method != http.MethodPost || r.PostForm == nil {
		return false
	}
	_, ok := r.PostForm[b.opts.SubmitField]
	return ok
}

func (b *Button) logger() logrus.FieldLogger {
	if b.opts.Logger != nil {
		return b.opts.Logger
	}
	return logrus.StandardLogger()
}

// SelectedIDs returns the change-list selection sent with the request.
func SelectedIDs(r *http.Request) []string {
	if r == nil {
		return nil
	}
	if r.Form == nil {
		_ = r.ParseForm()
	}
	ids := r.Form[SelectedActionField]
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

// ChangeListURL resolves the change list an action route belongs to:
// "/admin/articles/actions/import/" gives "/admin/articles/".
func ChangeListURL(r *http.Request) string {
	base := &url.URL{Path: r.URL.Path}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(&url.URL{Path: "../../"}).Path
}

func parseRequest(r *http.Request, maxMemory int64) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		err := r.ParseMultipartForm(maxMemory)
		if err == nil || errors.Is(err, http.ErrNotMultipart) {
			return nil
		}
		return err
	default:
		return r.ParseForm()
	}
}

type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(p []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(p)
}

func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
