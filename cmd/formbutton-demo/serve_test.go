package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbutton/internal/config"
	"github.com/goliatone/go-formbutton/internal/demo"
)

func TestNewRouter(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router, err := newRouter(config.Default(), logger, demo.NewStore(demo.SeedArticles...))
	if err != nil {
		t.Fatalf("new router: %v", err)
	}

	tests := []struct {
		path     string
		status   int
		location string
		contains string
	}{
		{path: "/", status: http.StatusFound, location: "/admin/"},
		{path: "/admin", status: http.StatusFound, location: "/admin/"},
		{path: "/admin/", status: http.StatusOK, contains: `href="/admin/articles/"`},
		{path: "/admin/articles/", status: http.StatusOK, contains: "Release notes"},
		{path: "/admin/articles/actions/import_articles/", status: http.StatusOK, contains: `name="source"`},
		{path: "/admin/missing/", status: http.StatusNotFound},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.path, tc.status, rec.Code)
		}
		if tc.location != "" && rec.Header().Get("Location") != tc.location {
			t.Fatalf("%s: unexpected location %q", tc.path, rec.Header().Get("Location"))
		}
		if tc.contains != "" && !strings.Contains(rec.Body.String(), tc.contains) {
			t.Fatalf("%s: expected body to contain %q\n%s", tc.path, tc.contains, rec.Body.String())
		}
	}
}
