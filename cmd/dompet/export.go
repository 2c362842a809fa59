package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"dompet/internal/cli"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type exportCmd struct {
	output string
	sheets bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export every transaction as CSV" }
func (*exportCmd) Usage() string {
	return `export [-o <file>|-] [-sheets]

  Writes every transaction, in stored order, as CSV. Without -o the file is
  named transactions_<unix millis>.csv in the current directory; "-" writes to
  stdout. With -sheets the same rows are also pushed to the configured Google
  spreadsheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", `output file, "-" for stdout`)
	f.BoolVar(&c.sheets, "sheets", false, "also replace the contents of the configured Google sheet")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, app *cli.App) subcommands.ExitStatus {
		s := app.Session
		if c.sheets && !s.SheetsEnabled() {
			fmt.Fprintln(os.Stderr, "Error: -sheets needs GOOGLE_SPREADSHEET_ID and service account credentials.")
			return subcommands.ExitUsageError
		}

		name := c.output
		if name == "" {
			name = s.ExportFileName()
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return writeOutput(name, s.ExportCSV)
		})
		if c.sheets {
			g.Go(func() error {
				return s.ExportSheets(gctx)
			})
		}
		if err := g.Wait(); err != nil {
			return fail("exporting", err)
		}

		if name != "-" {
			fmt.Fprintf(os.Stderr, "Exported to %s\n", name)
		}
		return subcommands.ExitSuccess
	})
}

// writeOutput runs write against the named file, or stdout for "-".
func writeOutput(name string, write func(io.Writer) error) error {
	if name == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := write(w); err != nil {
			return err
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
