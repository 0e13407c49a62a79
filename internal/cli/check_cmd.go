package cli

import (
	"fmt"

	"github.com/alexanderramin/pathguard/internal/cli/formatter"
	"github.com/alexanderramin/pathguard/internal/mpv"
	"github.com/spf13/cobra"
)

// newCheckCmd builds the one-shot check: fetch one associate's sessions
// and evaluate the proposed work code against them.
func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <employee-id> <work-code>",
		Short: "Evaluate MPV risk for one associate and work code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, workCode := args[0], args[1]

			report, err := app.Portal.FetchSessions(cmd.Context(), employeeID)
			if err != nil {
				return fmt.Errorf("fetching sessions for %s: %w", employeeID, err)
			}

			verdict := mpv.Evaluate(mpv.Input{
				Sessions:       report.Sessions,
				TargetWorkCode: workCode,
				Classifier:     app.Classifier,
				MaxMinutes:     app.Config.MaxMinutes,
			})
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVerdict(&verdict))
			if report.ClockedIn && verdict.CurrentActivity == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("associate is on the clock"))
			}
			return nil
		},
	}
	return cmd
}
