// Package render implements echo.Renderer over html/template. The view
// layer receives a page name and a data bundle; handlers never build markup.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer resolves template names by their path relative to the
// template root, e.g. "site/home.html" or "admin/users.html".
type TemplateRenderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*TemplateRenderer)(nil)

func New(dir string) (*TemplateRenderer, error) {
	root := template.New("")
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = root.New(filepath.ToSlash(rel)).Parse(string(raw))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &TemplateRenderer{templates: root}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if r.templates.Lookup(name) == nil {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return r.templates.ExecuteTemplate(w, name, data)
}
