// Package cli wires the pathguard commands: one-shot checks, the
// interactive scan loop, roster reports and path table inspection.
package cli

import (
	"github.com/alexanderramin/pathguard/internal/classify"
	"github.com/alexanderramin/pathguard/internal/config"
	"github.com/alexanderramin/pathguard/internal/coordinator"
	"github.com/alexanderramin/pathguard/internal/db"
	"github.com/alexanderramin/pathguard/internal/gateway"
	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/spf13/cobra"
)

// App holds everything the commands need.
type App struct {
	Config      config.Config
	Portal      gateway.Portal
	Classifier  *classify.Classifier
	Coordinator *coordinator.Coordinator
	Rosters     repository.RosterRepo
	Recent      repository.RecentCodeRepo
	UoW         db.UnitOfWork

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "pathguard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pathguard",
		Short:         "MPV guard for warehouse kiosk badge assignment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCheckCmd(app),
		newScanCmd(app),
		newRosterCmd(app),
		newPathsCmd(app),
	)

	return root
}
