package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	pdadapter "github.com/ericfisherdev/pdpanel/internal/adapter/driven/pagerduty"
	sqliteadapter "github.com/ericfisherdev/pdpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/pdpanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/pdpanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/config"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"api_base_url", cfg.APIBaseURL,
		"encrypt_api_key", cfg.HasSecretKey(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database and apply migrations.
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
	slog.Info("database ready", "path", cfg.DBPath)

	// 4. Wire adapters.
	accountStore := sqliteadapter.NewAccountRepo(db, cfg.SecretKey)
	notificationStore := sqliteadapter.NewNotificationRepo(db)

	pdClient, err := pdadapter.NewClient(cfg.APIBaseURL, slog.Default())
	if err != nil {
		return err
	}

	// 5. Application services.
	servicesSvc := application.NewServicesService(accountStore, pdClient, slog.Default())
	accountSvc := application.NewAccountService(accountStore, servicesSvc, slog.Default())
	notificationSvc := application.NewNotificationService(notificationStore, slog.Default(), application.PagerDutyDefaults)
	navSvc := application.NewNavigationService(nil)

	// 6. HTTP routes.
	mux := http.NewServeMux()

	apiHandler := httphandler.NewHandler(accountSvc, servicesSvc, notificationSvc, navSvc, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// The panel runs for a single administrator, who holds every permission.
	webHandler := webhandler.NewHandler(accountSvc, servicesSvc, navSvc, []string{model.PermManageDMD, "View"}, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Saving settings waits on PagerDuty, which may take the full API timeout.
		WriteTimeout: model.MaxAPITimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
