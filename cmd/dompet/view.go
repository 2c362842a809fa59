package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"dompet/internal/cli"
	"dompet/internal/render"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	plain bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show totals, goal progress and recent transactions" }
func (*summaryCmd) Usage() string {
	return `summary [-plain]

  Shows income, expense and balance over every transaction, the savings goal
  progress and the five most recent transactions.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of styled output")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(_ context.Context, app *cli.App) subcommands.ExitStatus {
		return printMarkdown(render.Home(app.Session.Home()), c.plain)
	})
}

type listCmd struct {
	query  string
	txType string
	sort   string
	plain  bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions with search, filter and sort" }
func (*listCmd) Usage() string {
	return `list [-q <text>] [-type all|income|expense] [-sort newest|amount_desc|amount_asc] [-plain]

  Lists transactions. The search text matches description, category id or
  category name, ignoring case. Unknown filter or sort values fall back to
  "all" and "newest".
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "search text")
	f.StringVar(&c.txType, "type", "all", "type filter: all, income or expense")
	f.StringVar(&c.sort, "sort", "newest", "sort: newest, amount_desc or amount_asc")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of styled output")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(_ context.Context, app *cli.App) subcommands.ExitStatus {
		s := app.Session
		s.SetQuery(c.query)
		s.SetTypeFilter(c.txType)
		page := s.SetSort(c.sort)
		return printMarkdown(render.Transactions(page), c.plain)
	})
}

type showCmd struct {
	plain bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one transaction" }
func (*showCmd) Usage() string {
	return `show [-plain] <id>
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of styled output")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one transaction id is required.")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	return withApp(ctx, func(_ context.Context, app *cli.App) subcommands.ExitStatus {
		row, ok := app.Session.Detail(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: transaction %q not found.\n", id)
			return subcommands.ExitFailure
		}
		return printMarkdown(render.Detail(row), c.plain)
	})
}

type reportCmd struct {
	months int
	plain  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show monthly, per-category and yearly reports" }
func (*reportCmd) Usage() string {
	return `report [-months <n>] [-plain]

  Shows income and expense per month for the last n months (REPORT_MONTHS by
  default), totals per category and the current year's totals.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", 0, "number of months in the monthly table (default from REPORT_MONTHS)")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of styled output")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.months < 0 {
		fmt.Fprintln(os.Stderr, "Error: -months must be positive.")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(_ context.Context, app *cli.App) subcommands.ExitStatus {
		rep := app.Session.ReportFor(time.Now(), c.months)
		return printMarkdown(render.Report(rep), c.plain)
	})
}
