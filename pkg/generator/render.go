package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
	"text/template"
)

// Renderer parses and renders the templates of one source tree. Parsed
// templates are cached by path, so a Renderer must not be shared between
// sources.
type Renderer struct {
	source  fs.FS
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer over source with built-in helper functions.
// The source is usually the embedded catalog, but any fs.FS works (os.DirFS
// for local overrides).
func NewRenderer(source fs.FS) *Renderer {
	return &Renderer{
		source:  source,
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// Source returns the tree templates are read from.
func (r *Renderer) Source() fs.FS {
	return r.source
}

// Render renders the template at path with data.
func (r *Renderer) Render(path string, data any) ([]byte, error) {
	tmpl, err := r.load(path)
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// load returns the cached template for path, parsing it on a miss.
func (r *Renderer) load(path string) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[path]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	if r.source == nil {
		return nil, fmt.Errorf("no template source to read '%s' from", path)
	}
	src, err := fs.ReadFile(r.source, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template '%s': %w", path, err)
	}

	tmpl, err := template.New(path).
		Funcs(r.funcMap).
		Option("missingkey=error").
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	r.mu.Lock()
	r.cache[path] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
