package templates

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// TemplatesFS exposes the embedded admin templates rooted at their names, for
// example "admin/form_button.tpl".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}
