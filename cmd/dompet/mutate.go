package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dompet/internal/cli"
	"dompet/internal/render"
	"dompet/internal/services"

	"github.com/google/subcommands"
)

// formFlags registers the transaction form fields on f.
func formFlags(f *flag.FlagSet, form *services.Form) {
	f.StringVar(&form.Description, "desc", "", "description (required)")
	f.StringVar(&form.Amount, "amount", "", "amount in whole units, e.g. 250000 or 250,000 (required)")
	f.StringVar(&form.Type, "type", "expense", "income or expense")
	f.StringVar(&form.Category, "category", "", "category id (default: first category)")
	f.StringVar(&form.Date, "date", "", "date as YYYY-MM-DD (default: today)")
}

type addCmd struct {
	form services.Form
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `add -desc <text> -amount <n> [-type income|expense] [-category <id>] [-date YYYY-MM-DD]
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { formFlags(f, &c.form) }

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, app *cli.App) subcommands.ExitStatus {
		tx, _, err := app.Session.AddTransaction(ctx, c.form)
		if err != nil {
			return fail("adding transaction", err)
		}
		fmt.Printf("Added %s\n", tx.ID)
		return subcommands.ExitSuccess
	})
}

type editCmd struct {
	form services.Form
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change an existing transaction" }
func (*editCmd) Usage() string {
	return `edit [-desc <text>] [-amount <n>] [-type income|expense] [-category <id>] [-date YYYY-MM-DD] <id>

  Replaces the fields given as flags; the others keep their current value.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { formFlags(f, &c.form) }

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one transaction id is required.")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	return withApp(ctx, func(ctx context.Context, app *cli.App) subcommands.ExitStatus {
		current, ok := app.Session.Store().Get(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: transaction %q not found.\n", id)
			return subcommands.ExitFailure
		}
		form := services.FormOf(current)
		f.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "desc":
				form.Description = c.form.Description
			case "amount":
				form.Amount = c.form.Amount
			case "type":
				form.Type = c.form.Type
			case "category":
				form.Category = c.form.Category
			case "date":
				form.Date = c.form.Date
			}
		})

		tx, _, err := app.Session.EditTransaction(ctx, id, form)
		if err != nil {
			return fail("editing transaction", err)
		}
		row, _ := app.Session.Detail(tx.ID)
		return printMarkdown(render.Detail(row), true)
	})
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a transaction" }
func (*deleteCmd) Usage() string {
	return `delete <id>
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (*deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one transaction id is required.")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	return withApp(ctx, func(ctx context.Context, app *cli.App) subcommands.ExitStatus {
		if _, err := app.Session.DeleteTransaction(ctx, id); err != nil {
			return fail("deleting transaction", err)
		}
		fmt.Printf("Deleted %s\n", id)
		return subcommands.ExitSuccess
	})
}

type goalCmd struct{}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "set or clear the savings goal" }
func (*goalCmd) Usage() string {
	return `goal <amount>

  Sets the savings goal. An amount of 0 clears it.
`
}

func (*goalCmd) SetFlags(*flag.FlagSet) {}

func (*goalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one amount is required.")
		return subcommands.ExitUsageError
	}
	input := f.Arg(0)
	return withApp(ctx, func(ctx context.Context, app *cli.App) subcommands.ExitStatus {
		home, err := app.Session.SetGoal(ctx, input)
		if err != nil {
			return fail("setting goal", err)
		}
		fmt.Println(render.GoalLine(home))
		return subcommands.ExitSuccess
	})
}
