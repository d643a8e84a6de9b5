package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionString is what both "crony version" and "crony --version" print.
func versionString(app *App) string {
	return "crony@" + app.Version
}

// NewVersionCommand creates the "version" subcommand.
func NewVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the version of crony",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(app))
		},
	}
}
