package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type analyzeCmd struct{}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "display totals per type and the net balance" }
func (*analyzeCmd) Usage() string {
	return `fin analyze

  Displays the number of transactions, the total, average and largest amount
  per type, and the net balance (credits minus debits, transfers excluded).
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	a, err := store.Analyze()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderAnalysis(a, config.Currency))
	return subcommands.ExitSuccess
}
