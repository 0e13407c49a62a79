package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pathguard/internal/cli/formatter"
	"github.com/alexanderramin/pathguard/internal/db"
	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/spf13/cobra"
)

// newRosterCmd builds the bulk roster report across all restricted paths.
// Cached rosters are reused within the freshness window.
func newRosterCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show who is on each restricted path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			for _, p := range app.Classifier.Paths() {
				snap, err := loadRoster(cmd.Context(), app, p.Name, now, refresh)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(p.Name))
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("unavailable: %v", err)))
					continue
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoster(snap, app.Config.RosterWarnMinutes))
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch every roster, ignoring the cache")
	return cmd
}

// loadRoster serves from the cache when fresh, otherwise fetches from the
// portal and replaces the cached copy.
func loadRoster(ctx context.Context, app *App, path string, now time.Time, force bool) (*repository.RosterSnapshot, error) {
	if !force {
		snap, err := app.Rosters.Get(ctx, path)
		if err == nil && now.Sub(snap.CachedAt) <= app.Config.RosterFreshness {
			return snap, nil
		}
	}

	fetched, err := app.Portal.FetchRoster(ctx, []string{path})
	if err != nil {
		// A stale cache beats nothing, but it is display-only: stale
		// rosters are never a block basis.
		if snap, cacheErr := app.Rosters.Get(ctx, path); cacheErr == nil {
			return snap, nil
		}
		return nil, err
	}
	// Replace runs inside one transaction: a failure mid-write must not
	// leave a half-replaced roster stamped as freshly cached.
	err = app.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRosterRepo(tx).Replace(ctx, path, fetched[path], now)
	})
	if err != nil {
		return nil, fmt.Errorf("caching roster: %w", err)
	}
	return app.Rosters.Get(ctx, path)
}
