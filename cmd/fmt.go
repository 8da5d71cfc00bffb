package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the transactions file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fin fmt

  Validates and formats the transactions file in-place. This command reads all
  transactions, drops the invalid rows (they are logged), and writes the
  remaining ones back with the columns in canonical order, dates as
  YYYY-MM-DD, unsigned amounts with two decimals and lower case types.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, closeLog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	defer closeLog()

	store, err := loadStore(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Save(ctx, OpenBackend(config.DataFile)); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted file %q: %v\n", config.DataFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %q.\n", config.DataFile)
	return subcommands.ExitSuccess
}
