// Package templates renders the admin pages of form buttons with pongo2, a
// Django-syntax template engine.
//
// The engine loads templates from an embedded set (see TemplatesFS) that a
// host can override one file at a time with WithBaseDir: any template found
// in the directory wins over the embedded copy, and embedded layouts such as
// "admin/base_site.tpl" keep working for templates that extend them.
package templates
