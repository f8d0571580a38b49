package admin

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Route is a handler with a pattern relative to its admin.
type Route struct {
	Pattern string
	Handler http.Handler
}

// RegisterRoutes mounts the index and every registered admin under the site
// base path and returns the registered patterns in order.
func (s *Site) RegisterRoutes(mux Mux) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("admin: missing mux")
	}
	log := s.logger()

	var patterns []string
	for _, m := range s.Admins() {
		prefix := "/" + m.name + "/"
		for _, route := range m.URLs() {
			pattern := mountPath(s.opts.BasePath, prefix+strings.TrimLeft(route.Pattern, "/"))
			mux.Handle(pattern, exactPath(pattern, route.Handler))
			log.WithField("pattern", pattern).Debug("admin: route registered")
			patterns = append(patterns, pattern)
		}
	}

	index := s.IndexURL()
	mux.Handle(index, exactPath(index, s.AdminView(s.IndexView())))
	log.WithField("pattern", index).Debug("admin: route registered")
	patterns = append(patterns, index)
	return patterns, nil
}

// exactPath keeps subtree patterns of http.ServeMux from answering for
// deeper paths.
func exactPath(pattern string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pattern {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
