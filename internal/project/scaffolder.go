package project

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/fernandofps20/tsui5/internal/catalog"
	"github.com/fernandofps20/tsui5/internal/config"
	"github.com/fernandofps20/tsui5/pkg/generator"
	"github.com/fernandofps20/tsui5/pkg/input"
	"github.com/fernandofps20/tsui5/pkg/logger"
	"github.com/fernandofps20/tsui5/pkg/output"
	"github.com/spf13/afero"
)

// Prompt texts for the identity questions.
const (
	NamespaceQuestion = "Which namespace do you want to use?"
	AuthorQuestion    = "Who is the author of the application?"
)

// Options wires a Scaffolder. Zero values get sensible defaults.
type Options struct {
	Fs       afero.Fs
	Catalog  *catalog.Catalog
	Prompter input.Asker
	Printer  *output.Printer
	Logger   logger.Logger
	Config   *config.Config
}

// Scaffolder creates new tsui5 projects.
type Scaffolder struct {
	fs       afero.Fs
	catalog  *catalog.Catalog
	renderer *generator.Renderer
	prompter input.Asker
	printer  *output.Printer
	log      logger.Logger
	cfg      *config.Config
}

// NewScaffolder creates a project scaffolder
func NewScaffolder(opts Options) *Scaffolder {
	s := &Scaffolder{
		fs:       opts.Fs,
		catalog:  opts.Catalog,
		prompter: opts.Prompter,
		printer:  opts.Printer,
		log:      opts.Logger,
		cfg:      opts.Config,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.catalog == nil {
		s.catalog = catalog.New()
	}
	s.renderer = generator.NewRenderer(s.catalog.FS())
	if s.prompter == nil {
		s.prompter = input.New(nil, nil)
	}
	if s.printer == nil {
		s.printer = output.New(nil)
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	return s
}

// Scaffold creates the project called name inside parentDir.
//
// The name and the target directory are checked before anything is asked.
// Once the namespace and author are known, every project file is rendered
// concurrently; if one fails, the files already written stay on disk. The
// state file is written last, so a directory without tsui5.json is never
// mistaken for a finished project.
func (s *Scaffolder) Scaffold(ctx context.Context, parentDir, name string) (*Properties, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	root := filepath.Join(parentDir, name)
	exists, err := afero.Exists(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}
	if exists {
		return nil, apperr.New(apperr.DuplicateTarget, "There's already a folder named %s here.", name)
	}

	props, err := s.collectIdentity(name)
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(logger.F("project", name))
	log.Debug("identity collected", logger.F("appId", props.AppID), logger.F("appURI", props.AppURI))

	kind, err := s.catalog.Project()
	if err != nil {
		return nil, err
	}
	entries, err := s.catalog.Plan(kind, root, "")
	if err != nil {
		return nil, err
	}

	if err := s.fs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	ops := make([]generator.Operation, len(entries))
	for i, e := range entries {
		ops[i] = &generator.RenderOp{
			Fs:       s.fs,
			Renderer: s.renderer,
			Template: e.Template,
			Path:     e.Target,
			Data:     props,
			Mode:     0644,
			Label:    path.Join(name, e.Output),
		}
	}

	log.Debug("rendering project files", logger.F("files", len(ops)), logger.F("workers", s.cfg.Workers))
	err = generator.ExecuteParallel(ctx, ops, generator.ExecuteOptions{
		Workers: s.cfg.Workers,
		Report:  func(op generator.Operation) { s.printer.Created(op.Description()) },
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.RenderFailure, err, "failed to generate project %s", name)
	}

	err = SaveState(ctx, s.fs, root, props, func() { s.printer.Forced(path.Join(name, StateFile)) })
	if err != nil {
		return nil, err
	}

	return props, nil
}

func (s *Scaffolder) collectIdentity(name string) (*Properties, error) {
	namespace, err := s.prompter.Ask(input.Question{
		Name:     "namespace",
		Message:  NamespaceQuestion,
		Validate: ValidateNamespace,
	})
	if err != nil {
		return nil, aborted(err)
	}

	author, err := s.prompter.Ask(input.Question{
		Name:     "author",
		Message:  AuthorQuestion,
		Validate: ValidateAuthor,
	})
	if err != nil {
		return nil, aborted(err)
	}

	return NewProperties(name, namespace, author, s.cfg), nil
}

func aborted(err error) error {
	if errors.Is(err, input.ErrCancelled) {
		return fmt.Errorf("project creation aborted: %w", err)
	}
	return err
}
