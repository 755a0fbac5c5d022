package commands

import (
	"fmt"
	"strings"

	"github.com/fernandofps20/tsui5/internal/artifact"
	"github.com/spf13/cobra"
)

// GenerateCmd creates and returns the 'generate' command for artifacts
func (a *App) GenerateCmd() *cobra.Command {
	var dir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "generate [kind] [name]",
		Aliases: []string{"g"},
		Short:   "Add a view, controller, service or fragment to the project",
		Long: `Renders an artifact into src/ of the current project. Existing files
with the same name are overwritten.

Views also get a controller and are registered in manifest.json with a
route named after the view and a target "Target<Name>".

Examples:
  tsui5 generate view Detail
  tsui5 g service Orders
  tsui5 g fragment ConfirmDialog --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			var name string
			if len(args) > 1 {
				name = args[1]
			}

			cat, err := a.catalog()
			if err != nil {
				return err
			}

			gen := artifact.NewGenerator(artifact.Options{
				Fs:      a.Fs,
				Catalog: cat,
				Printer: a.printer(),
				Logger:  a.Logger,
				Config:  a.Config,
				DryRun:  dryRun,
			})

			res, err := gen.Generate(cmd.Context(), dir, kind, name)
			if err != nil {
				return err
			}

			if dryRun {
				a.printer().Info(fmt.Sprintf("Dry run: %d file(s) would be written", len(res.Files)))
				return nil
			}
			a.printer().Success(fmt.Sprintf("Generated %s %s", strings.ToLower(kind), name))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project root")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing it")

	return cmd
}

// GeneratorsCmd lists the generator kinds `generate` accepts.
func (a *App) GeneratorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generators",
		Short: "List available generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			for _, k := range cat.Kinds() {
				fmt.Fprintf(a.Out, "%-12s %s\n", k.Name, k.Description)
			}
			return nil
		},
	}
}
