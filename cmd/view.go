package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type viewCmd struct {
	typ  string
	year string
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "list transactions, optionally filtered by type and year" }
func (*viewCmd) Usage() string {
	return `fin view [-type <type>] [-year <year>]

  Lists the transactions of the transactions file, one page at a time.
  Navigate between pages with start, next, prev, end and exit.

Usage Examples:
# Debit transactions of 2020.
$ fin view -type debit -year 2020
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Keep only transactions of this type (credit, debit, transfer).")
	f.StringVar(&c.year, "year", "", "Keep only transactions of this year.")
}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, closeLog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	defer closeLog()

	store, err := loadStore(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := newShell(store, logger).View(c.typ, c.year); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
