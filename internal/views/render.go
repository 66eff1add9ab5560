package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
)

var pageTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	pageTmpl = tmpl
	return nil
}

// LoadTemplates loads the embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// RenderPage executes the full forecast page into w.
func RenderPage(w io.Writer, page *Page) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "page.html", page)
}

// RenderDetailPartial executes only the detail panel. Nothing is written
// when detail is nil.
func RenderDetailPartial(w io.Writer, detail *Detail) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	if detail == nil {
		return nil
	}
	return pageTmpl.ExecuteTemplate(w, "partials/detail.html", detail)
}
