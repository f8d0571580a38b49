// Package demo wires an articles admin with a few form buttons, used by the
// formbutton-demo binary.
package demo

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbutton/internal/config"
	"github.com/goliatone/go-formbutton/pkg/admin"
	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/templates"
)

// AdminName is the URL segment of the articles admin.
const AdminName = "articles"

// SeedArticles fills an empty demo store.
var SeedArticles = []Article{
	{Title: "Hello, world", Source: "seed", Status: StatusPublished},
	{Title: "Release notes", Source: "seed"},
}

// NewSite builds the demo admin site over store.
func NewSite(cfg config.Config, logger logrus.FieldLogger, store *Store) (*admin.Site, *Articles, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	opts := []admin.OptionFn{
		admin.WithHeader(cfg.Site.Header),
		admin.WithTitle(cfg.Site.Title),
		admin.WithBasePath(cfg.Site.BasePath),
		admin.WithLogger(logger),
	}
	if dir := strings.TrimSpace(cfg.Templates.Dir); dir != "" {
		engine, err := templates.New(templates.WithBaseDir(dir))
		if err != nil {
			return nil, nil, fmt.Errorf("demo: templates: %w", err)
		}
		opts = append(opts, admin.WithRenderer(engine))
	}
	if th := themeConfig(cfg.Site.Theme); th != nil {
		opts = append(opts, admin.WithTheme(th))
	}
	site := admin.NewSite(opts...)

	articles, err := NewArticles(store, logger)
	if err != nil {
		return nil, nil, err
	}
	buttons, err := articles.Buttons(
		button.WithSubmitField(cfg.Buttons.SubmitField),
		button.WithMaxMemory(cfg.Buttons.MaxMemory),
		button.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	model := admin.NewModelAdmin(AdminName,
		admin.WithVerboseName("articles"),
		admin.WithButtons(buttons...),
		admin.WithContext(articles.changeListContext),
	)
	if err := site.Register(model); err != nil {
		return nil, nil, err
	}
	return site, articles, nil
}

func themeConfig(cfg config.Theme) *theme.RendererConfig {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil
	}
	out := &theme.RendererConfig{
		Theme:   cfg.Name,
		Variant: cfg.Variant,
		Tokens:  cfg.Tokens,
		CSSVars: cfg.CSSVars,
	}
	if base := strings.TrimSpace(cfg.AssetBase); base != "" {
		out.AssetURL = func(key string) string {
			if key == "" {
				return ""
			}
			return path.Join(base, key)
		}
	}
	return out
}
