// Command pdpanel-uninstall removes the PagerDuty account and every
// "pagerduty" notification. Set PDPANEL_LEAVE_OBJECTS=true to keep them.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sqliteadapter "github.com/ericfisherdev/pdpanel/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	uninstaller := application.NewUninstaller(
		sqliteadapter.NewAccountRepo(db, cfg.SecretKey),
		sqliteadapter.NewNotificationRepo(db),
		slog.Default(),
	)
	if err := uninstaller.Remove(ctx, cfg.LeaveObjects); err != nil {
		return err
	}

	slog.Info("uninstall complete", "db_path", cfg.DBPath, "leave_objects", cfg.LeaveObjects)
	return nil
}
