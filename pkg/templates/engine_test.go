package templates_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbutton/pkg/forms"
	"github.com/goliatone/go-formbutton/pkg/templates"
)

func TestEngine_RenderFormTemplate(t *testing.T) {
	def := forms.MustDefinition(
		forms.Field{Name: "source", Type: forms.TypeURL, Required: true, HelpText: `Use <b>https</b><script>alert(1)</script>`},
		forms.Field{Name: "format", Type: forms.TypeChoice, Choices: []forms.Choice{{Value: "rss", Label: "RSS"}}},
		forms.Field{Name: "dry_run", Type: forms.TypeBoolean},
	)
	form := def.Bind(nil, nil)
	form.IsValid()

	var out bytes.Buffer
	html, err := templates.Default().RenderTemplate(templates.FormTemplate, map[string]any{
		"site_header":   "Acme admin",
		"site_title":    "Acme",
		"title":         "Import articles",
		"fields":        form.BoundFields(),
		"has_errors":    form.HasErrors(),
		"action":        "import_articles",
		"submit_field":  "submit",
		"hidden_fields": []forms.HiddenField{forms.CSRFToken("csrf_token", "tok")},
		"selected":      []string{"4", "2"},
	}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != out.String() {
		t.Fatalf("expected writer to receive rendered output")
	}

	for _, want := range []string{
		"<title>Import articles | Acme</title>",
		`<a href="">Acme admin</a>`,
		`<p class="errornote">Please correct the errors below.</p>`,
		`<li>This field is required.</li>`,
		`<input type="url" name="source" id="id_source" value="" required>`,
		`<option value="rss">RSS</option>`,
		`<input type="checkbox" name="dry_run" id="id_dry_run">`,
		`Use <b>https</b>`,
		`<input type="hidden" name="csrf_token" value="tok">`,
		`<input type="hidden" name="_selected_action" value="4">`,
		`<input type="hidden" name="action" value="import_articles">`,
		`<input type="submit" name="submit" value="Submit" class="default">`,
		`<form method="post" enctype="multipart/form-data">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected help text to be sanitized\n%s", html)
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	html, err := templates.Default().RenderString(`{{ value }}`, map[string]any{"value": `<b>"x"</b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<b>") {
		t.Fatalf("expected escaped output, got %q", html)
	}
}

func TestEngine_BaseDirOverridesSingleTemplate(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "admin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := `{% extends "admin/base_site.tpl" %}{% block content %}custom:{% for b in form_buttons %}{{ b.name }};{% endfor %}{% endblock %}`
	if err := os.WriteFile(filepath.Join(dir, "admin", "change_list.tpl"), []byte(override), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	engine, err := templates.New(templates.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	html, err := engine.RenderTemplate(templates.ChangeListTemplate, map[string]any{
		"site_header":  "Acme admin",
		"form_buttons": []map[string]string{{"name": "a"}, {"name": "b"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "custom:a;b;") {
		t.Fatalf("expected override content, got\n%s", html)
	}
	if !strings.Contains(html, "Acme admin") {
		t.Fatalf("expected embedded base layout, got\n%s", html)
	}
}

func TestEngine_WithFSAndGlobals(t *testing.T) {
	files := fstest.MapFS{
		"hello.html": {Data: []byte(`Hello {{ name }} from {{ env|trim }}`)},
	}
	engine, err := templates.New(
		templates.WithFS(files),
		templates.WithExtension("html"),
		templates.WithGlobalData(map[string]any{"env": " staging "}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.Render("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada from staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_MissingBaseDir(t *testing.T) {
	if _, err := templates.New(templates.WithBaseDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for missing base dir")
	}
}

func TestInputType(t *testing.T) {
	cases := map[string]string{
		"integer":  "number",
		"email":    "email",
		"boolean":  "checkbox",
		"textarea": "text",
		"":         "text",
	}
	for in, want := range cases {
		if got := templates.InputType(in); got != want {
			t.Fatalf("InputType(%q) = %q, want %q", in, got, want)
		}
	}
}
