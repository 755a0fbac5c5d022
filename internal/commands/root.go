package commands

import (
	"io"
	"os"

	"github.com/fernandofps20/tsui5"
	"github.com/fernandofps20/tsui5/internal/catalog"
	"github.com/fernandofps20/tsui5/internal/config"
	"github.com/fernandofps20/tsui5/pkg/logger"
	"github.com/fernandofps20/tsui5/pkg/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// App holds what every tsui5 command shares: where it reads and writes, and
// the configuration resolved before the command runs.
type App struct {
	Fs  afero.Fs
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// SearchPaths overrides where .tsui5.yml is looked for.
	SearchPaths []string

	Config *config.Config
	Logger logger.Logger

	verbose    bool
	configFile string
}

// NewApp returns an App bound to the OS filesystem and standard streams.
func NewApp() *App {
	return &App{
		Fs:  afero.NewOsFs(),
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// RootCmd creates and returns the root command for the tsui5 CLI
func (a *App) RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tsui5",
		Short: "Scaffolding for OpenUI5 TypeScript applications",
		Long: `tsui5 creates OpenUI5 applications written in TypeScript and adds
views, controllers, services and fragments to them.

  tsui5 create myapp
  cd myapp
  tsui5 generate view Detail`,
		Version:       tsui5.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.SetIn(a.In)
	cmd.SetOut(a.Out)
	cmd.SetErr(a.Err)

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: .tsui5.yml in $HOME or the current directory)")

	return cmd
}

// Execute runs root and prints a failure on the error stream.
func (a *App) Execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		output.New(a.Err).Error(err.Error())
	}
	return err
}

func (a *App) setup() error {
	level := logger.LevelWarn
	if a.verbose {
		level = logger.LevelDebug
	}
	a.Logger = logger.NewLogger(level, a.Err)
	logger.SetDefault(a.Logger)

	paths := a.SearchPaths
	if paths == nil {
		paths = config.DefaultSearchPaths()
	}
	cfg, err := config.Load(config.Options{File: a.configFile, SearchPaths: paths})
	if err != nil {
		return err
	}
	a.Config = cfg

	if cfg.File != "" {
		a.Logger.Debug("config loaded", logger.F("file", cfg.File))
	}
	return nil
}

func (a *App) catalog() (*catalog.Catalog, error) {
	if a.Config == nil || a.Config.Templates == "" {
		return catalog.New(), nil
	}
	a.Logger.Debug("using template directory", logger.F("dir", a.Config.Templates))
	return catalog.FromDir(a.Config.Templates)
}

func (a *App) printer() *output.Printer {
	return output.New(a.Out)
}
