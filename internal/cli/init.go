// Package cli provides common CLI initialization utilities: logging,
// environment loading, configuration and wiring the session together.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dompet/internal/amqp"
	"dompet/internal/backend"
	"dompet/internal/config"
	"dompet/internal/ledger"
	"dompet/internal/log"
	"dompet/internal/services"
	"dompet/internal/sheets"
	gsheet "dompet/internal/sheets/google"

	"github.com/joho/godotenv"
)

// SetupLogger initializes structured logging on stderr at the given level
// and sets it as the default logger.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Component = log.ComponentCLI
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration and validates it. It runs before
// any logger exists, so callers report the error themselves.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// App bundles the session with everything that has to be closed at exit.
type App struct {
	Session *services.Session
	Config  *config.Config
	Logger  *log.Logger

	Repository *ledger.Repository
	// AMQP and Exporter are nil when not configured or not started.
	AMQP       *amqp.Client
	Exporter   sheets.Exporter

	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// OpenApp builds the session described by cfg: storage backend, ledger
// store, optional AMQP notifier and optional Sheets exporter. Optional
// integrations that fail to start are logged and skipped.
func OpenApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, res.Close)

	storeOpts := []ledger.Option{ledger.WithLogger(logger)}
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without notifications", log.FieldError, err)
		} else {
			logger.InfoContext(ctx, "Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			storeOpts = append(storeOpts, ledger.WithNotifier(client))
			app.AMQP = client
			app.closers = append(app.closers, client.Close)
		}
	}

	repo := ledger.NewRepository(res.Store, cfg.StorageKey, logger)
	app.Repository = repo
	store, err := ledger.Open(ctx, repo, storeOpts...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	sessOpts := []services.Option{
		services.WithCurrency(cfg.Currency),
		services.WithReportMonths(cfg.ReportMonths),
		services.WithLogger(logger),
	}
	if cfg.SheetsEnabled() {
		exporter, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		}, logger)
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize Google Sheets exporter", log.FieldError, err)
		} else {
			sessOpts = append(sessOpts, services.WithSheetsExporter(exporter))
			app.Exporter = exporter
		}
	}

	app.Session = services.NewSession(store, sessOpts...)
	logger.DebugContext(ctx, "Session ready", log.FieldBackend, cfg.DataBackend, log.FieldKey, cfg.StorageKey)
	return app, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
