package main

import (
	"context"
	"fmt"
	"os"

	"dompet/internal/cli"
	"dompet/internal/core"
	"dompet/internal/render"

	"github.com/google/subcommands"
)

// Commands lists every subcommand of the binary.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&listCmd{},
	&showCmd{},
	&addCmd{},
	&editCmd{},
	&deleteCmd{},
	&goalCmd{},
	&reportCmd{},
	&exportCmd{},
	&syncWorkerCmd{},
}

// withApp loads configuration, opens the session and runs fn with it.
func withApp(ctx context.Context, fn func(context.Context, *cli.App) subcommands.ExitStatus) subcommands.ExitStatus {
	cli.LoadEnvFile(*envFile)
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, cancel := cli.SignalContext(ctx, logger)
	defer cancel()

	app, err := cli.OpenApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Failed to close resources", "error", err)
		}
	}()

	return fn(ctx, app)
}

// fail reports err and maps it to an exit status. Rejected input is a usage error.
func fail(what string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	if core.IsValidation(err) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

func printMarkdown(doc string, plain bool) subcommands.ExitStatus {
	if err := render.Print(os.Stdout, doc, plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
