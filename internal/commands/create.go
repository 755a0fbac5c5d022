package commands

import (
	"fmt"

	"github.com/fernandofps20/tsui5/internal/project"
	"github.com/fernandofps20/tsui5/pkg/input"
	"github.com/spf13/cobra"
)

// CreateCmd creates and returns the 'create' command for scaffolding projects
func (a *App) CreateCmd() *cobra.Command {
	var dir, namespace, author string

	cmd := &cobra.Command{
		Use:     "create [project-name]",
		Aliases: []string{"new"},
		Short:   "Create a new OpenUI5 TypeScript application",
		Long: `Creates a new application in a folder named after it with:
• manifest.json with routing, i18n and a Main view
• Component, controllers, services and models in TypeScript
• Babel, ESLint and tsconfig setup
• ui5.yaml for the UI5 tooling

The namespace and author are asked for unless given as flags.

Example:
  tsui5 create myapp --namespace com.acme --author jdoe`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}

			cat, err := a.catalog()
			if err != nil {
				return err
			}

			preset := map[string]string{}
			if cmd.Flags().Changed("namespace") {
				preset["namespace"] = namespace
			}
			if cmd.Flags().Changed("author") {
				preset["author"] = author
			}

			printer := a.printer()
			scaffolder := project.NewScaffolder(project.Options{
				Fs:       a.Fs,
				Catalog:  cat,
				Prompter: input.WithAnswers(input.New(a.In, a.Out), preset),
				Printer:  printer,
				Logger:   a.Logger,
				Config:   a.Config,
			})

			if _, err := scaffolder.Scaffold(cmd.Context(), dir, name); err != nil {
				return err
			}

			printer.Success(fmt.Sprintf("Created tsui5 project: %s", name))
			printer.Info("Next steps:")
			printer.Step(fmt.Sprintf("cd %s", name))
			printer.Step("npm install")
			printer.Step("npm start")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Folder to create the project in")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Application namespace (e.g. com.acme)")
	cmd.Flags().StringVar(&author, "author", "", "Author of the application")

	return cmd
}
