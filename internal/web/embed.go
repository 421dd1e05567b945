package web

import (
	"embed"
	"html/template"
	"io/fs"
	"path"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	baseLayout = "templates/layouts/base.html"
	pagesDir   = "templates/pages"
)

// LoadTemplates builds one template set per page. Every page is parsed on top
// of the shared base layout, so its "title" and "content" blocks override the
// layout's defaults while the topbar and footer stay identical across the
// site.
func LoadTemplates() (*template.Template, error) {
	baseContent, err := fs.ReadFile(templatesFS, baseLayout)
	if err != nil {
		return nil, err
	}

	root := template.New("")

	entries, err := fs.ReadDir(templatesFS, pagesDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		pageContent, err := fs.ReadFile(templatesFS, path.Join(pagesDir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// Base first, then the page so its block definitions win.
		page := root.New(entry.Name())
		if _, err := page.Parse(string(baseContent)); err != nil {
			return nil, err
		}
		if _, err := page.Parse(string(pageContent)); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// GetStaticFS exposes the embedded assets rooted at the static directory, the
// shape the router's /static/* file server expects.
func GetStaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
