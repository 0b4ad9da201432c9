package response

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Views renders the view of a controller action.
type Views interface {
	// Render writes the view for (controller, action) with data to w.
	// It returns ErrViewNotFound when the view does not exist.
	Render(w io.Writer, controller, action string, data any) error
}

// TemplateViews renders html/template files laid out as
// <root>/<controller path>/views/<action id>.html.
type TemplateViews struct {
	root    string
	funcs   template.FuncMap
	noCache bool
	cache   sync.Map // file path -> *template.Template
}

// ViewOption configures TemplateViews.
type ViewOption func(*TemplateViews)

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) ViewOption {
	return func(v *TemplateViews) {
		v.funcs = funcs
	}
}

// WithoutCache re-parses templates on every render.
func WithoutCache() ViewOption {
	return func(v *TemplateViews) {
		v.noCache = true
	}
}

// NewTemplateViews creates a renderer for templates under root.
func NewTemplateViews(root string, opts ...ViewOption) *TemplateViews {
	v := &TemplateViews{root: root}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Path returns the template file for a controller action.
func (v *TemplateViews) Path(controller, action string) string {
	return filepath.Join(v.root, filepath.FromSlash(controller), "views", action+".html")
}

// Render implements Views. Output is buffered, so a failing template writes nothing.
func (v *TemplateViews) Render(w io.Writer, controller, action string, data any) error {
	tmpl, err := v.lookup(v.Path(controller, action))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("response: render %s/%s: %w", controller, action, err)
	}

	_, err = buf.WriteTo(w)
	return err
}

func (v *TemplateViews) lookup(file string) (*template.Template, error) {
	if !v.noCache {
		if cached, ok := v.cache.Load(file); ok {
			return cached.(*template.Template), nil
		}
	}

	src, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrViewNotFound, file)
		}
		return nil, err
	}

	tmpl, err := template.New(filepath.Base(file)).Funcs(v.funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("response: parse %s: %w", file, err)
	}

	if !v.noCache {
		v.cache.Store(file, tmpl)
	}
	return tmpl, nil
}
