package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pathguard/internal/classify"
	"github.com/alexanderramin/pathguard/internal/cli"
	"github.com/alexanderramin/pathguard/internal/config"
	"github.com/alexanderramin/pathguard/internal/coordinator"
	"github.com/alexanderramin/pathguard/internal/db"
	"github.com/alexanderramin/pathguard/internal/gateway"
	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Restricted path table: built-in defaults, or the site's tuned YAML.
	var classifier *classify.Classifier
	if cfg.PathsFile != "" {
		paths, err := classify.LoadPaths(cfg.PathsFile)
		if err != nil {
			return fmt.Errorf("loading path table: %w", err)
		}
		classifier = classify.New(paths)
	} else {
		classifier = classify.Default()
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	rosterRepo := repository.NewSQLiteRosterRepo(database)
	pendingRepo := repository.NewSQLitePendingLookupRepo(database)
	recentRepo := repository.NewSQLiteRecentCodeRepo(database)

	var portalObserver gateway.Observer = gateway.NoopObserver{}
	var coordObserver coordinator.Observer = coordinator.NoopObserver{}
	if cfg.LogCalls {
		portalObserver = gateway.NewLogObserver(os.Stderr)
		coordObserver = coordinator.NewLogObserver(os.Stderr)
	}

	portal := gateway.NewHTTPPortal(gateway.Config{
		Endpoint:    cfg.PortalEndpoint,
		WarehouseID: cfg.WarehouseID,
		TimeoutMs:   cfg.PortalTimeoutMs,
		MaxRetries:  cfg.PortalRetries,
	}, portalObserver)

	coord := coordinator.New(coordinator.Config{
		Debounce:        cfg.Debounce,
		PendingMaxAge:   cfg.PendingMaxAge,
		MaxMinutes:      cfg.MaxMinutes,
		MinBadgeLen:     cfg.MinBadgeLen,
		ProbeAttempts:   cfg.ProbeAttempts,
		ProbeInterval:   cfg.ProbeInterval,
		CacheQuickCheck: cfg.CacheQuickCheck,
	}, portal, classifier, newKioskSink(), pendingRepo, recentRepo, coordObserver)
	coord.UseRosterCache(rosterRepo)

	app := &cli.App{
		Config:      cfg,
		Portal:      portal,
		Classifier:  classifier,
		Coordinator: coord,
		Rosters:     rosterRepo,
		Recent:      recentRepo,
		UoW:         db.NewSQLiteUnitOfWork(database),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
