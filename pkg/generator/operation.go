package generator

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// Some operations may have side effects during validation (e.g., creating parent directories).
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
// Implementations must be safe to run concurrently with other operations that
// target different paths.
//
// Description returns the path the operation writes, for output.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

func fsOrOS(fsys afero.Fs) afero.Fs {
	if fsys == nil {
		return afero.NewOsFs()
	}
	return fsys
}

func checkTarget(fsys afero.Fs, path string, force bool) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force {
		if exists, _ := afero.Exists(fsys, path); exists {
			return fmt.Errorf("file already exists: %s", path)
		}
	}
	return nil
}

// WriteFileOp creates a file with pre-built content.
//
// Validation behavior:
//   - Creates parent directories if they don't exist
//   - Checks for file conflicts unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
type WriteFileOp struct {
	Fs      afero.Fs    // Target filesystem (nil means the OS filesystem)
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if err := checkTarget(fsOrOS(op.Fs), op.Path, force); err != nil {
		return err
	}
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fsys := fsOrOS(op.Fs)
	if err := fsys.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return op.Path
}

// RenderOp renders one catalog template with a property bag and writes the
// result to Path. Rendering happens in Execute, so a set of RenderOps run
// through ExecuteParallel renders and writes concurrently.
//
// Rendered .json files must be valid JSON and rendered .yaml/.yml files must
// parse as YAML; anything else is written as-is.
type RenderOp struct {
	Fs       afero.Fs    // Target filesystem (nil means the OS filesystem)
	Renderer *Renderer   // Shared renderer (safe for concurrent use)
	Template string      // Template path inside the renderer's source
	Path     string      // Output path
	Data     any         // Property bag
	Mode     fs.FileMode // File permissions (e.g., 0644)
	Label    string      // Optional output label; defaults to Path
}

func (op *RenderOp) Validate(ctx context.Context, force bool) error {
	if op.Renderer == nil {
		return fmt.Errorf("render operation for %s has no renderer", op.Path)
	}
	if _, err := fs.Stat(op.Renderer.Source(), op.Template); err != nil {
		return fmt.Errorf("template %s: %w", op.Template, err)
	}
	return checkTarget(fsOrOS(op.Fs), op.Path, force)
}

func (op *RenderOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := op.Renderer.Render(op.Template, op.Data)
	if err != nil {
		return err
	}
	if err := CheckStructured(op.Path, content); err != nil {
		return fmt.Errorf("template %s: %w", op.Template, err)
	}

	fsys := fsOrOS(op.Fs)
	if err := fsys.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, op.Path, content, op.Mode)
}

func (op *RenderOp) Description() string {
	if op.Label != "" {
		return op.Label
	}
	return op.Path
}

// CheckStructured verifies that content is well-formed for the structured
// formats tsui5 emits, judged by the file extension of path.
func CheckStructured(path string, content []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if !gjson.ValidBytes(content) {
			return fmt.Errorf("rendered %s is not valid JSON", filepath.Base(path))
		}
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return fmt.Errorf("rendered %s is not valid YAML: %w", filepath.Base(path), err)
		}
	}
	return nil
}
