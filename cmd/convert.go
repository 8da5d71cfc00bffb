package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type convertCmd struct {
	output string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "copy the transactions to another file format" }
func (*convertCmd) Usage() string {
	return `fin convert -o <file>

  Copies the valid transactions of the transactions file into another file,
  whose format is chosen from its extension: .csv, .jsonl, .db or .sqlite.
  Invalid rows are skipped and logged.

Usage Examples:
# Archive the CSV file into a SQLite database.
$ fin -file "financial transactions.csv" convert -o archive.db
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (required).")
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required")
		return subcommands.ExitUsageError
	}
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
	target := OpenBackend(c.output)
	if err := store.Save(ctx, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Converted %d transactions to %q.\n", store.Len(), target)
	return subcommands.ExitSuccess
}
