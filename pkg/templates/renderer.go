package templates

import "io"

// Template names of the embedded admin pages.
const (
	BaseSiteTemplate   = "admin/base_site"
	FormTemplate       = "admin/form_button"
	ChangeListTemplate = "admin/change_list"
	IndexTemplate      = "admin/index"
)

// Renderer is the seam pages are rendered through. Engine implements it;
// tests and hosts with their own engine can supply another implementation.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
