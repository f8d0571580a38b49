package admin

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/templates"
)

// ContextFunc supplies extra change-list context, such as the rows to list.
type ContextFunc func(r *http.Request) (map[string]any, error)

// ButtonLink is one entry of the "form_buttons" change-list context.
type ButtonLink struct {
	Name  string
	Title string
	URL   string
}

func (l ButtonLink) context() map[string]any {
	return map[string]any{
		"name":  l.Name,
		"title": l.Title,
		"url":   l.URL,
	}
}

// ModelAdmin groups the buttons shown on one change list.
type ModelAdmin struct {
	name               string
	verboseName        string
	buttons            []*button.Button
	changeListTemplate string
	context            ContextFunc
	site               *Site
}

type ModelAdminOption func(*ModelAdmin)

// NewModelAdmin builds an admin mounted at "<base>/<name>/".
func NewModelAdmin(name string, opts ...ModelAdminOption) *ModelAdmin {
	m := &ModelAdmin{
		name:               strings.TrimSpace(name),
		changeListTemplate: templates.ChangeListTemplate,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.verboseName == "" {
		m.verboseName = strcase.ToDelimited(m.name, ' ')
	}
	if m.changeListTemplate == "" {
		m.changeListTemplate = templates.ChangeListTemplate
	}
	return m
}

// WithButtons appends buttons in toolbar order.
func WithButtons(buttons ...*button.Button) ModelAdminOption {
	return func(m *ModelAdmin) {
		for _, b := range buttons {
			if b != nil {
				m.buttons = append(m.buttons, b)
			}
		}
	}
}

func WithVerboseName(name string) ModelAdminOption {
	return func(m *ModelAdmin) {
		m.verboseName = strings.TrimSpace(name)
	}
}

// WithChangeListTemplate renders the change list with another template,
// typically one extending "admin/change_list.tpl".
func WithChangeListTemplate(name string) ModelAdminOption {
	return func(m *ModelAdmin) {
		m.changeListTemplate = strings.TrimSpace(name)
	}
}

func WithContext(fn ContextFunc) ModelAdminOption {
	return func(m *ModelAdmin) {
		m.context = fn
	}
}

func (m *ModelAdmin) Name() string { return m.name }

func (m *ModelAdmin) VerboseName() string { return m.verboseName }

func (m *ModelAdmin) Buttons() []*button.Button {
	return append([]*button.Button(nil), m.buttons...)
}

// Site returns the site the admin is registered on, or DefaultSite.
func (m *ModelAdmin) Site() *Site {
	if m.site != nil {
		return m.site
	}
	return DefaultSite()
}

func (m *ModelAdmin) validate() error {
	seen := make(map[string]bool, len(m.buttons))
	for _, b := range m.buttons {
		if seen[b.Name()] {
			return fmt.Errorf("%w: button %q on admin %q", ErrDuplicateName, b.Name(), m.name)
		}
		seen[b.Name()] = true
	}
	return nil
}

// ButtonLinks resolves "actions/<name>/" against the request path, so a
// change list served at "/admin/articles/" links to
// "/admin/articles/actions/<name>/".
func (m *ModelAdmin) ButtonLinks(r *http.Request) []ButtonLink {
	base := &url.URL{Path: "/"}
	if r != nil && r.URL != nil && r.URL.Path != "" {
		base.Path = r.URL.Path
	}
	links := make([]ButtonLink, 0, len(m.buttons))
	for _, b := range m.buttons {
		ref := &url.URL{Path: actionPath(b.Name())}
		links = append(links, ButtonLink{
			Name:  b.Name(),
			Title: b.Title(),
			URL:   base.ResolveReference(ref).Path,
		})
	}
	return links
}

// ExtraURLs returns one guarded route per button, relative to the admin.
func (m *ModelAdmin) ExtraURLs() []Route {
	site := m.Site()
	routes := make([]Route, 0, len(m.buttons))
	for _, b := range m.buttons {
		routes = append(routes, Route{
			Pattern: actionPath(b.Name()),
			Handler: site.AdminView(b.Handler(site)),
		})
	}
	return routes
}

// URLs returns the button routes followed by the change list. The button
// routes come first so they take precedence on routers matching in order.
func (m *ModelAdmin) URLs() []Route {
	routes := m.ExtraURLs()
	return append(routes, Route{
		Pattern: "",
		Handler: m.Site().AdminView(m.ChangeListView()),
	})
}

// ChangeListView renders the change list with the button links in
// "form_buttons".
func (m *ModelAdmin) ChangeListView() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site := m.Site()
		ctx := site.baseContext(r)
		ctx["title"] = m.verboseName
		ctx["verbose_name"] = m.verboseName

		if m.context != nil {
			extra, err := m.context(r)
			if err != nil {
				site.logger().WithError(err).WithField("admin", m.name).Error("admin: change list context")
				button.WriteError(w, err, http.StatusInternalServerError)
				return
			}
			for key, value := range extra {
				ctx[key] = value
			}
		}

		links := m.ButtonLinks(r)
		buttons := make([]map[string]any, 0, len(links))
		for _, link := range links {
			buttons = append(buttons, link.context())
		}
		ctx["form_buttons"] = buttons

		if err := site.render(w, m.changeListTemplate, ctx); err != nil {
			site.logger().WithError(err).WithField("admin", m.name).Error("admin: render change list")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

func actionPath(name string) string {
	return "actions/" + name + "/"
}
