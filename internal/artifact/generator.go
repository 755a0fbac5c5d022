// Package artifact adds views, controllers, services and fragments to an
// existing tsui5 project.
package artifact

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/fernandofps20/tsui5/internal/catalog"
	"github.com/fernandofps20/tsui5/internal/config"
	"github.com/fernandofps20/tsui5/internal/manifest"
	"github.com/fernandofps20/tsui5/internal/project"
	"github.com/fernandofps20/tsui5/pkg/generator"
	"github.com/fernandofps20/tsui5/pkg/logger"
	"github.com/fernandofps20/tsui5/pkg/output"
	"github.com/spf13/afero"
)

// SourceDir is where artifacts land, relative to the project root.
const SourceDir = "src"

// Artifact names allow upper-case letters, unlike project names, because
// view and class names are usually capitalized. The case is kept as typed.
var nameRe = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Request is the data every artifact template renders with.
type Request struct {
	Generator   string
	Name        string
	AppID       string
	AppURI      string
	Namespace   string
	Application string
}

// Result describes what a Generate call wrote, or would write on a dry run.
type Result struct {
	Files           []string // Written files, relative to the project root
	ManifestUpdated bool
}

// Options wires a Generator. Zero values get sensible defaults.
type Options struct {
	Fs      afero.Fs
	Catalog *catalog.Catalog
	Printer *output.Printer
	Logger  logger.Logger
	Config  *config.Config
	DryRun  bool
}

// Generator renders artifact kinds into a project.
type Generator struct {
	fs       afero.Fs
	catalog  *catalog.Catalog
	renderer *generator.Renderer
	printer  *output.Printer
	log      logger.Logger
	cfg      *config.Config
	dryRun   bool
}

// NewGenerator creates an artifact generator
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		fs:      opts.Fs,
		catalog: opts.Catalog,
		printer: opts.Printer,
		log:     opts.Logger,
		cfg:     opts.Config,
		dryRun:  opts.DryRun,
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.catalog == nil {
		g.catalog = catalog.New()
	}
	g.renderer = generator.NewRenderer(g.catalog.FS())
	if g.printer == nil {
		g.printer = output.New(nil)
	}
	if g.log == nil {
		g.log = logger.Default()
	}
	if g.cfg == nil {
		g.cfg = config.Default()
	}
	return g
}

// ValidateName checks an artifact name for kind. Letters keep their case.
func ValidateName(kind, name string) error {
	hint := fmt.Sprintf("Please specify a name for your %s: tsui5 g %s my%s", kind, kind, kind)
	if name == "" {
		return apperr.New(apperr.InvalidName, "%s", hint)
	}
	if !nameRe.MatchString(name) {
		return apperr.New(apperr.InvalidName,
			"%s is not a valid %s name. Use letters of either case, digits and dashes only; the case is kept as typed. %s", name, kind, hint)
	}
	return nil
}

// Generate renders kind as name into the project rooted at projectRoot.
//
// Nothing is written unless the project state loads, the kind exists and the
// name is valid. Existing files are overwritten. Kinds with the route policy
// then register the artifact in src/manifest.json; the manifest is parsed
// before any file is rendered, so a corrupt manifest aborts the whole call.
func (g *Generator) Generate(ctx context.Context, projectRoot, kindName, name string) (*Result, error) {
	props, err := project.LoadState(g.fs, projectRoot)
	if err != nil {
		return nil, err
	}

	kind, err := g.catalog.Lookup(kindName)
	if err != nil {
		return nil, err
	}

	if err := ValidateName(kind.Name, name); err != nil {
		return nil, err
	}

	log := g.log.WithFields(logger.F("kind", kind.Name), logger.F("name", name))

	var m *manifest.Manifest
	manifestPath := filepath.Join(projectRoot, filepath.FromSlash(manifest.Path))
	if kind.Policy == catalog.MergeRoute {
		if m, err = manifest.Load(g.fs, manifestPath); err != nil {
			return nil, err
		}
		if _, err := m.Routing(); err != nil {
			return nil, err
		}
	}

	entries, err := g.catalog.Plan(kind, filepath.Join(projectRoot, SourceDir), name)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Generator:   kind.Name,
		Name:        name,
		AppID:       props.AppID,
		AppURI:      props.AppURI,
		Namespace:   props.Namespace,
		Application: props.Application,
	}

	result := &Result{}
	ops := make([]generator.Operation, len(entries))
	for i, e := range entries {
		label := path.Join(SourceDir, e.Output)
		ops[i] = &generator.RenderOp{
			Fs:       g.fs,
			Renderer: g.renderer,
			Template: e.Template,
			Path:     e.Target,
			Data:     req,
			Mode:     0644,
			Label:    label,
		}
		result.Files = append(result.Files, label)
	}

	log.Debug("rendering artifact", logger.F("files", len(ops)), logger.F("policy", kind.Policy))
	err = generator.ExecuteParallel(ctx, ops, generator.ExecuteOptions{
		DryRun:  g.dryRun,
		Force:   true,
		Workers: g.cfg.Workers,
		Report:  g.report,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.RenderFailure, err, "failed to generate %s %s", kind.Name, name)
	}

	if m == nil {
		return result, nil
	}

	if err := m.RegisterView(name); err != nil {
		return nil, err
	}
	if g.dryRun {
		g.printer.Planned(manifest.Path)
		return result, nil
	}
	if err := m.Save(g.fs, manifestPath); err != nil {
		return nil, err
	}
	log.Debug("manifest updated", logger.F("route", name))
	g.printer.Forced(manifest.Path)
	result.ManifestUpdated = true

	return result, nil
}

func (g *Generator) report(op generator.Operation) {
	if g.dryRun {
		g.printer.Planned(op.Description())
		return
	}
	g.printer.Created(op.Description())
}
