package admin

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/forms"
	"github.com/goliatone/go-formbutton/pkg/templates"
)

var (
	// ErrDuplicateName reports an admin or button name registered twice.
	ErrDuplicateName = errors.New("admin: duplicate name")
	// ErrInvalidName reports an admin name that cannot be used in a URL path.
	ErrInvalidName = errors.New("admin: invalid name")
)

// Site is the admin host shared by every registered ModelAdmin.
type Site struct {
	opts Options

	mu     sync.RWMutex
	admins []*ModelAdmin
	byName map[string]*ModelAdmin
}

var _ button.FormRenderer = (*Site)(nil)

// NewSite builds a site with fns applied over DefaultOptions.
func NewSite(fns ...OptionFn) *Site {
	return &Site{
		opts:   NewOptions(fns...),
		byName: make(map[string]*ModelAdmin),
	}
}

var (
	defaultSiteOnce sync.Once
	defaultSite     *Site
)

// DefaultSite returns the process-wide site.
func DefaultSite() *Site {
	defaultSiteOnce.Do(func() {
		defaultSite = NewSite()
	})
	return defaultSite
}

// Options returns a copy of the site configuration.
func (s *Site) Options() Options { return s.opts }

// BasePath is the prefix every admin route is mounted under.
func (s *Site) BasePath() string { return s.opts.BasePath }

// Register binds admins to the site. Names must be URL-safe and unique, and
// so must the button names inside each admin.
func (s *Site) Register(admins ...*ModelAdmin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make(map[string]bool, len(admins))
	for _, m := range admins {
		if m == nil {
			return fmt.Errorf("admin: register: nil model admin")
		}
		if !button.ValidName(m.name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, m.name)
		}
		if _, exists := s.byName[m.name]; exists || pending[m.name] {
			return fmt.Errorf("%w: admin %q", ErrDuplicateName, m.name)
		}
		if err := m.validate(); err != nil {
			return err
		}
		pending[m.name] = true
	}
	for _, m := range admins {
		m.site = s
		s.admins = append(s.admins, m)
		s.byName[m.name] = m
	}
	return nil
}

// Admins returns the registered admins in registration order.
func (s *Site) Admins() []*ModelAdmin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*ModelAdmin(nil), s.admins...)
}

// Admin looks up a registered admin by name.
func (s *Site) Admin(name string) (*ModelAdmin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byName[name]
	return m, ok
}

// IndexURL is the path of the admin index.
func (s *Site) IndexURL() string {
	return mountPath(s.opts.BasePath, "/")
}

// AdminURL is the change-list path of the named admin.
func (s *Site) AdminURL(name string) string {
	return mountPath(s.opts.BasePath, "/"+name+"/")
}

// AdminView guards h and marks its responses as never cached.
func (s *Site) AdminView(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if guard := s.opts.Guard; guard != nil {
			if err := guard(r); err != nil {
				s.logger().WithError(err).WithField("path", r.URL.Path).Debug("admin: request rejected")
				button.WriteError(w, err, http.StatusForbidden)
				return
			}
		}
		addNeverCacheHeaders(w.Header())
		h.ServeHTTP(w, r)
	})
}

// RenderForm renders a button form page inside the site chrome. Site hidden
// fields, the page's own and the CSRF token are merged and emitted sorted by
// name.
func (s *Site) RenderForm(w http.ResponseWriter, r *http.Request, page button.FormPage) error {
	hidden := forms.MergeHiddenFields(s.opts.Hidden, page.Hidden...)
	if s.opts.CSRF != nil {
		hidden = forms.MergeHiddenFields(hidden, s.opts.CSRF(r))
	}
	page.Hidden = forms.SortedHiddenFields(hidden)
	ctx := s.baseContext(r)
	for key, value := range page.Context() {
		ctx[key] = value
	}
	return s.render(w, templates.FormTemplate, ctx)
}

// IndexView lists the registered admins with their change lists and buttons.
func (s *Site) IndexView() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admins := s.Admins()
		entries := make([]map[string]any, 0, len(admins))
		for _, m := range admins {
			base := s.AdminURL(m.name)
			links := make([]map[string]any, 0, len(m.buttons))
			for _, b := range m.buttons {
				links = append(links, ButtonLink{
					Name:  b.Name(),
					Title: b.Title(),
					URL:   base + actionPath(b.Name()),
				}.context())
			}
			entries = append(entries, map[string]any{
				"name":         m.name,
				"url":          base,
				"verbose_name": m.verboseName,
				"buttons":      links,
			})
		}

		ctx := s.baseContext(r)
		ctx["title"] = s.opts.Title
		ctx["admins"] = entries
		if err := s.render(w, templates.IndexTemplate, ctx); err != nil {
			s.logger().WithError(err).Error("admin: render index")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

func (s *Site) baseContext(_ *http.Request) map[string]any {
	ctx := map[string]any{
		"site_header": s.opts.Header,
		"site_title":  s.opts.Title,
		"site_url":    s.IndexURL(),
	}
	stylesheets := append([]string{}, s.opts.Stylesheets...)
	if cfg := s.opts.Theme; cfg != nil {
		ctx["theme_name"] = cfg.Theme
		ctx["theme_variant"] = cfg.Variant
		if vars := cssVars(cfg.CSSVars); vars != "" {
			ctx["theme_css_vars"] = vars
		}
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL(ThemeStylesheet); href != "" {
				stylesheets = append(stylesheets, href)
			}
		}
	}
	ctx["stylesheets"] = stylesheets
	return ctx
}

func (s *Site) render(w http.ResponseWriter, name string, ctx map[string]any) error {
	html, err := s.templates().RenderTemplate(name, ctx)
	if err != nil {
		return fmt.Errorf("admin: render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte(html))
	return err
}

func (s *Site) templates() templates.Renderer {
	if s.opts.Renderer != nil {
		return s.opts.Renderer
	}
	return templates.Default()
}

func (s *Site) logger() logrus.FieldLogger {
	if s.opts.Logger != nil {
		return s.opts.Logger
	}
	return logrus.StandardLogger()
}

func addNeverCacheHeaders(h http.Header) {
	h.Set("Expires", time.Now().UTC().Format(http.TimeFormat))
	h.Set("Cache-Control", "max-age=0, no-cache, no-store, must-revalidate, private")
}

func cssVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
