package admin

import (
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbutton/pkg/forms"
	"github.com/goliatone/go-formbutton/pkg/templates"
)

const (
	// DefaultBasePath is where the site mounts without WithBasePath.
	DefaultBasePath = "/admin"
	DefaultHeader   = "Administration"
	DefaultTitle    = "Site admin"
	// ThemeStylesheet is the asset key resolved through the theme AssetURL.
	ThemeStylesheet = "admin.css"
)

// GuardFunc authorizes a request before an admin view runs. Returning an
// HTTPError picks the response status; other errors answer 403.
type GuardFunc func(r *http.Request) error

// CSRFFunc returns the hidden input carrying the host's CSRF token.
type CSRFFunc func(r *http.Request) forms.HiddenField

// Options configures a Site.
type Options struct {
	Header      string
	Title       string
	BasePath    string
	Guard       GuardFunc
	Renderer    templates.Renderer
	Theme       *theme.RendererConfig
	CSRF        CSRFFunc
	Hidden      map[string]string
	Stylesheets []string
	Logger      logrus.FieldLogger
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the options used when no OptionFn is given.
func DefaultOptions() Options {
	return Options{
		Header:   DefaultHeader,
		Title:    DefaultTitle,
		BasePath: DefaultBasePath,
	}
}

// NewOptions applies fns over DefaultOptions and normalizes the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.Header = strings.TrimSpace(opts.Header)
	opts.Title = strings.TrimSpace(opts.Title)
	opts.BasePath = strings.TrimSpace(opts.BasePath)
	if opts.BasePath == "" {
		opts.BasePath = DefaultBasePath
	}
	if opts.Stylesheets != nil {
		opts.Stylesheets = append([]string{}, opts.Stylesheets...)
	}
	return opts
}

// WithHeader sets the branding shown in the page header.
func WithHeader(header string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Header = header
	}
}

// WithTitle sets the suffix of every page title.
func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

// WithBasePath sets the prefix every admin route is mounted under.
func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

// WithGuard runs guard before every admin view.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithRenderer replaces the embedded template engine.
func WithRenderer(renderer templates.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithTheme exposes theme name, variant and CSS variables to the templates
// and resolves ThemeStylesheet through the theme asset resolver.
func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

// WithHiddenFields emits fields in every button form. Later fields win on
// name collisions; a CSRF token wins over all of them.
func WithHiddenFields(fields ...forms.HiddenField) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hidden = forms.MergeHiddenFields(o.Hidden, fields...)
	}
}

// WithCSRF emits the returned hidden field in every button form.
func WithCSRF(fn CSRFFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CSRF = fn
	}
}

// WithStylesheets adds extra stylesheet links to every page.
func WithStylesheets(hrefs ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Stylesheets = append(o.Stylesheets, hrefs...)
	}
}

// WithLogger sets the logger used for routing and rendering diagnostics.
func WithLogger(logger logrus.FieldLogger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
