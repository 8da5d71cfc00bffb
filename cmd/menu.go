package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/etnz/finance"
	"github.com/etnz/finance/shell"
	"github.com/google/subcommands"
)

type menuCmd struct {
	load bool
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "start the interactive menu (default command)" }
func (*menuCmd) Usage() string {
	return `fin menu [-load]

  Starts the interactive menu to load, add, view, update, delete, analyze and
  save transactions, and to generate a report. Changes are kept in memory
  until saved. This is the command run when fin is called without arguments.
`
}

func (c *menuCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.load, "load", false, "Load the transactions file before showing the menu.")
}

func (c *menuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger, closeLog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	defer closeLog()

	sh := newShell(finance.NewStore(logger), logger)
	if c.load {
		sh.Load(ctx)
	}
	if err := sh.Run(ctx); err != nil {
		logger.Error("menu stopped", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newShell creates an interactive shell on the standard streams, configured by the global flags.
func newShell(store *finance.Store, logger *log.Logger) *shell.Shell {
	return shell.New(os.Stdout, os.Stdin, store, logger, shell.Options{
		DataFile:    config.DataFile,
		ReportFile:  config.ReportFile,
		SnapshotDir: config.SnapshotDir,
		Currency:    config.Currency,
		PageSize:    config.PageSize,
		Markdown:    renderMarkdown,
		Open:        OpenBackend,
	})
}
