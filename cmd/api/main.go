// Package main is the entry point for the flight duty API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/acameron/flightduty/backend/internal/config"
	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/handler"
	"github.com/acameron/flightduty/backend/internal/middleware"
	"github.com/acameron/flightduty/backend/internal/notify"
	"github.com/acameron/flightduty/backend/internal/service"
	"github.com/acameron/flightduty/backend/internal/timeline"
)

const appVersion = "0.2.0"

// maxBodyBytes caps request bodies; the largest legitimate payload is a
// duty form, so 64 KiB is generous.
const maxBodyBytes = 64 << 10

func main() {
	var (
		port      string
		prefsPath string
	)

	cmd := &cobra.Command{
		Use:   "flightduty",
		Short: "Flight duty period and rest tracking API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			if prefsPath != "" {
				cfg.PrefsPath = prefsPath
			}
			return run(cfg)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("flightduty v{{.Version}}\n")
	cmd.Flags().StringVar(&port, "port", "", "TCP port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "path to the preferences YAML file (overrides PREFS_PATH)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// prefsFile adapts the config package's save function to the handler's
// PreferencesStore interface.
type prefsFile struct{ path string }

func (p prefsFile) Save(prefs domain.UserPreferences) error {
	return config.SavePreferences(p.path, prefs)
}

func run(cfg config.Config) error {
	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler writes machine-readable output suitable
	// for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Preferences ------------------------------------------------------
	prefs, err := config.LoadPreferences(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	slog.Info("preferences loaded", "path", cfg.PrefsPath, "regulator", prefs.Regulator)

	// --- Engine -----------------------------------------------------------
	store := timeline.New()
	duties := service.NewDutyService(store, time.Now)
	annotator := service.NewAnnotator(store)
	exporter := service.NewExportService(store, time.Now)
	scheduler := notify.NewScheduler(logger)

	srv := handler.NewServer(duties, annotator, exporter, scheduler, prefsFile{path: cfg.PrefsPath}, prefs)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS
	// → body-size cap. Recoverer turns panics into HTTP 500s.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for an OS signal, then give in-flight
	// requests up to 15 seconds to complete.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
