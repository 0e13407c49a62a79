package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/pathguard/internal/cli/formatter"
	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/spf13/cobra"
)

// newScanCmd builds the interactive loop a kiosk operator drives: each
// line is either a scanned badge or a command.
func newScanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Interactive badge scan loop",
		Long: `Reads lines from stdin. A bare line is treated as a badge scan.
Commands:
  code <work-code>   set the work code the verdict evaluates against
  suggest <prefix>   show recently submitted codes matching the prefix
  submit             attempt submission (refused unless the verdict is clear)
  clear              reset badge, code and verdict
  quit               exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			interactive := app.IsInteractive != nil && app.IsInteractive()

			app.Coordinator.Start(cmd.Context())
			defer app.Coordinator.Stop()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				if interactive {
					fmt.Fprint(out, formatter.Dim("scan> "))
				}
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				fields := strings.Fields(line)
				switch fields[0] {
				case "quit", "exit":
					return nil
				case "clear":
					app.Coordinator.Clear()
				case "code":
					if len(fields) < 2 {
						fmt.Fprintln(out, formatter.Dim("usage: code <work-code>"))
						continue
					}
					app.Coordinator.SetWorkCode(fields[1])
				case "suggest":
					prefix := ""
					if len(fields) > 1 {
						prefix = fields[1]
					}
					codes, err := app.Coordinator.SuggestCodes(cmd.Context(), prefix, 5)
					if err != nil {
						fmt.Fprintln(out, formatter.Dim("suggestions unavailable"))
						continue
					}
					if len(codes) == 0 {
						fmt.Fprintln(out, formatter.Dim("no matching codes"))
						continue
					}
					fmt.Fprintln(out, strings.Join(codes, "  "))
				case "submit":
					verdict, err := app.Coordinator.Submit(cmd.Context())
					if err != nil {
						fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("refused: %v", err)))
						if verdict != nil {
							fmt.Fprint(out, formatter.FormatVerdict(verdict))
						}
						continue
					}
					fmt.Fprintln(out, formatter.StyleGreen.Render("submitted"))
				default:
					app.Coordinator.Scan(line)
					snap := awaitSettled(app, 10*time.Second)
					printSnapshot(out, snap)
				}
			}
		},
	}
	return cmd
}

// awaitSettled polls until the in-flight lookup resolves or the timeout
// elapses.
func awaitSettled(app *App, timeout time.Duration) snapshotView {
	deadline := time.Now().Add(timeout)
	// Give the debounce a chance to fire before the first poll.
	time.Sleep(app.Config.Debounce + 10*time.Millisecond)
	for {
		snap := app.Coordinator.Snapshot()
		if snap.State != domain.LookupInFlight || time.Now().After(deadline) {
			return snapshotView{
				state:   snap.State,
				badge:   snap.BadgeID,
				verdict: snap.Verdict,
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
}

type snapshotView struct {
	state   domain.LookupState
	badge   string
	verdict *domain.Verdict
}

func printSnapshot(out io.Writer, snap snapshotView) {
	switch snap.state {
	case domain.LookupResolved:
		fmt.Fprint(out, formatter.FormatVerdict(snap.verdict))
	case domain.LookupFailed:
		fmt.Fprintln(out, formatter.StyleRed.Render("lookup failed"))
	case domain.LookupInFlight:
		fmt.Fprintln(out, formatter.Dim("still connecting to portal..."))
	default:
		fmt.Fprintln(out, formatter.Dim("waiting for a qualifying badge"))
	}
}
