package cli

import (
	"fmt"

	"github.com/alexanderramin/pathguard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPathsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the restricted paths and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPaths(app.Classifier.Paths()))
			return nil
		},
	}
}
