package formbutton

import (
	"io/fs"

	"github.com/goliatone/go-formbutton/pkg/templates"
)

// EmbeddedTemplates exposes the built-in admin templates so hosts can copy
// and override them without importing the templates package directly.
func EmbeddedTemplates() fs.FS {
	return templates.TemplatesFS()
}
