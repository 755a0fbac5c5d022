package main

import (
	"os"

	"github.com/fernandofps20/tsui5/internal/commands"
)

func main() {
	app := commands.NewApp()

	rootCmd := app.RootCmd()
	rootCmd.AddCommand(app.CreateCmd())
	rootCmd.AddCommand(app.GenerateCmd())
	rootCmd.AddCommand(app.GeneratorsCmd())

	if err := app.Execute(rootCmd); err != nil {
		os.Exit(1)
	}
}
