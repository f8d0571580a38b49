// Package admin hosts form buttons on an admin site.
//
// A Site owns the chrome shared by every page (header, title, theme, CSRF
// hook and access guard) and the registered ModelAdmin values. A ModelAdmin
// contributes one route per button, "actions/<name>/", ahead of its change
// list, and injects the button links into the change-list context under
// "form_buttons" so the object-tools bar can render them:
//
//	site := admin.NewSite(admin.WithHeader("Newsroom"))
//	articles := admin.NewModelAdmin("articles",
//		admin.WithButtons(importButton, publishButton),
//	)
//	if err := site.Register(articles); err != nil {
//		return err
//	}
//	patterns, err := site.RegisterRoutes(mux)
package admin
