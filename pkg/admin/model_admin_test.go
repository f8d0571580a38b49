package admin_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbutton/pkg/admin"
)

type captureRenderer struct {
	name string
	data any
}

func (c *captureRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	c.name = name
	c.data = data
	return "ok", nil
}

func (c *captureRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (c *captureRenderer) GlobalContext(any) error { return nil }

func TestChangeListView_FormButtonsWinOverContext(t *testing.T) {
	renderer := &captureRenderer{}
	site := admin.NewSite(admin.WithRenderer(renderer), admin.WithLogger(quietLogger()))
	m := admin.NewModelAdmin("articles",
		admin.WithButtons(publishButton(t)),
		admin.WithChangeListTemplate("custom/articles"),
		admin.WithContext(func(*http.Request) (map[string]any, error) {
			return map[string]any{"form_buttons": "overridden", "extra": 1}, nil
		}),
	)
	if err := site.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := serve(m.ChangeListView(), httptest.NewRequest(http.MethodGet, "/admin/articles/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if renderer.name != "custom/articles" {
		t.Fatalf("unexpected template %q", renderer.name)
	}
	ctx, ok := renderer.data.(map[string]any)
	if !ok {
		t.Fatalf("expected map context, got %T", renderer.data)
	}
	want := []map[string]any{{
		"name":  "publish_all",
		"title": "Publish all",
		"url":   "/admin/articles/actions/publish_all/",
	}}
	if diff := cmp.Diff(want, ctx["form_buttons"]); diff != "" {
		t.Fatalf("form_buttons mismatch (-want +got):\n%s", diff)
	}
	if ctx["extra"] != 1 {
		t.Fatalf("expected extra context to be kept, got %v", ctx["extra"])
	}
}

func TestChangeListView_ContextError(t *testing.T) {
	site := admin.NewSite(admin.WithRenderer(&captureRenderer{}), admin.WithLogger(quietLogger()))
	m := admin.NewModelAdmin("articles", admin.WithContext(func(*http.Request) (map[string]any, error) {
		return nil, io.ErrUnexpectedEOF
	}))
	if err := site.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}
	rec := serve(m.ChangeListView(), httptest.NewRequest(http.MethodGet, "/admin/articles/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
