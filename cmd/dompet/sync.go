package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"dompet/internal/cli"
	"dompet/internal/worker"

	"github.com/google/subcommands"
)

type syncWorkerCmd struct{}

func (*syncWorkerCmd) Name() string     { return "sync-worker" }
func (*syncWorkerCmd) Synopsis() string { return "mirror the ledger to Google Sheets on every change" }
func (*syncWorkerCmd) Usage() string {
	return `sync-worker

  Exports the ledger to the configured spreadsheet once, then listens on the
  AMQP queue and re-exports after every ledger change until interrupted.
  Needs AMQP_URL, GOOGLE_SPREADSHEET_ID and service account credentials.
`
}

func (*syncWorkerCmd) SetFlags(*flag.FlagSet) {}

func (*syncWorkerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, app *cli.App) subcommands.ExitStatus {
		if app.AMQP == nil || app.Exporter == nil {
			fmt.Fprintln(os.Stderr, "Error: sync-worker needs a working AMQP connection and Sheets exporter.")
			return subcommands.ExitUsageError
		}

		w := worker.NewSyncWorker(app.Repository, app.Exporter, app.Logger)
		if err := w.Sync(ctx); err != nil {
			app.Logger.ErrorContext(ctx, "Initial sync failed", "error", err)
		}

		err := app.AMQP.ConsumeChanges(ctx, w.HandleChange)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fail("consuming changes", err)
		}
		app.Logger.Info("Sync worker stopped", "syncs", w.Syncs())
		return subcommands.ExitSuccess
	})
}
