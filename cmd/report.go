package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	output string
	period string
	top    int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate a report of all transactions" }
func (*reportCmd) Usage() string {
	return `fin report [-o <file>] [-p <period>] [-top <n>]

  Generates a report with the analysis, a breakdown per period, the top
  customers by volume and the list of transactions. The report is written as
  HTML when the output file ends with .html, as markdown otherwise. Use -o -
  to print the markdown report.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the -report-file flag, - prints to stdout.")
	f.StringVar(&c.period, "p", "year", "Breakdown period (month, year).")
	f.IntVar(&c.top, "top", 5, "Number of customers to list, 0 for all.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, closeLog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	defer closeLog()

	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := loadStore(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	r, err := finance.NewReport(store.Transactions(), date.Today(), config.Currency, period, c.top)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = config.ReportFile
	}
	if output == "-" {
		printMarkdown(renderer.RenderReport(r))
		return subcommands.ExitSuccess
	}
	if err := renderer.WriteReport(output, r); err != nil {
		logger.Error("cannot write report", "target", output, "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Report written to %q.\n", output)
	return subcommands.ExitSuccess
}
