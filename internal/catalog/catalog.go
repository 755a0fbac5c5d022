// Package catalog resolves generator kinds to template files and derives
// where each rendered file lands.
//
// The bundled catalog is embedded in the binary. It has one directory per
// kind; inside, template names encode the output file name: a trailing
// ".tmpl" marks the file as a template and a literal NAME is replaced by the
// artifact name.
//
//	view/view/NAME.view.xml.tmpl  +  "Main"  →  src/view/Main.view.xml
//	project/LICENSE.tmpl          +  ""      →  myapp/LICENSE
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fernandofps20/tsui5/internal/apperr"
)

//go:embed all:templates
var embedded embed.FS

const (
	// TemplateSuffix marks a catalog file as a template.
	TemplateSuffix = ".tmpl"
	// NameToken is replaced by the artifact name in template file names.
	NameToken = "NAME"
)

// Catalog is a template tree plus the kind registry that describes it.
type Catalog struct {
	fsys     fs.FS
	registry map[string]Kind
}

// New returns the embedded catalog.
func New() *Catalog {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded templates missing: %v", err))
	}
	return NewFromFS(sub, Registry)
}

// FromDir returns a catalog read from a directory on disk with the same
// layout as the embedded one.
func FromDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	return NewFromFS(os.DirFS(dir), Registry), nil
}

// NewFromFS builds a catalog over an arbitrary tree and registry.
func NewFromFS(fsys fs.FS, registry map[string]Kind) *Catalog {
	return &Catalog{fsys: fsys, registry: registry}
}

// FS returns the template tree.
func (c *Catalog) FS() fs.FS {
	return c.fsys
}

// Kinds returns every selectable kind, sorted by name.
func (c *Catalog) Kinds() []Kind {
	return selectableKinds(c.registry)
}

// KindNames returns the names of every selectable kind, sorted.
func (c *Catalog) KindNames() []string {
	kinds := c.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	return names
}

// Lookup returns the selectable kind called name.
func (c *Catalog) Lookup(name string) (Kind, error) {
	k, ok := c.registry[name]
	if !ok || k.Internal {
		return Kind{}, apperr.New(apperr.UnknownGenerator,
			"Generator %q doesn't exist. Available generators: %s",
			name, strings.Join(c.KindNames(), ", "))
	}
	return k, nil
}

// Project returns the implicit project kind.
func (c *Catalog) Project() (Kind, error) {
	k, ok := c.registry[ProjectKind]
	if !ok {
		return Kind{}, apperr.New(apperr.UnknownGenerator, "catalog has no %s templates", ProjectKind)
	}
	return k, nil
}

// Templates lists every file below the kind's directory in lexical order,
// as slash paths relative to that directory.
func (c *Catalog) Templates(kind Kind) ([]string, error) {
	var files []string
	err := fs.WalkDir(c.fsys, kind.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, strings.TrimPrefix(p, kind.Dir+"/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s templates: %w", kind.Name, err)
	}
	return files, nil
}

// ProjectTemplates returns the fixed project template list.
func (c *Catalog) ProjectTemplates() []string {
	return append([]string(nil), projectFiles...)
}

// OutputName derives the output path of a template relative to the output
// root: the ".tmpl" marker is dropped and every NAME token in the file name
// (never in the directory part) becomes name.
func OutputName(rel, name string) string {
	dir, file := path.Split(rel)
	file = strings.TrimSuffix(file, TemplateSuffix)
	file = strings.ReplaceAll(file, NameToken, name)
	return dir + file
}

// TargetPath joins root with the derived output name of rel.
func TargetPath(root, rel, name string) string {
	return filepath.Join(root, filepath.FromSlash(OutputName(rel, name)))
}

// Entry pairs a template with the file rendered from it.
type Entry struct {
	Template string // Path inside the catalog FS
	Output   string // Slash path relative to the output root
	Target   string // Output joined with the output root
}

// Plan resolves the templates of kind and their targets under root.
// Two templates landing on the same target is an error.
func (c *Catalog) Plan(kind Kind, root, name string) ([]Entry, error) {
	var rels []string
	if kind.Name == ProjectKind {
		rels = c.ProjectTemplates()
	} else {
		var err error
		if rels, err = c.Templates(kind); err != nil {
			return nil, err
		}
	}

	entries := make([]Entry, 0, len(rels))
	seen := make(map[string]string, len(rels))
	for _, rel := range rels {
		out := OutputName(rel, name)
		if prev, dup := seen[out]; dup {
			return nil, apperr.New(apperr.RenderFailure,
				"templates %s and %s both render to %s", prev, rel, out)
		}
		seen[out] = rel

		entries = append(entries, Entry{
			Template: path.Join(kind.Dir, rel),
			Output:   out,
			Target:   TargetPath(root, rel, name),
		})
	}
	return entries, nil
}
