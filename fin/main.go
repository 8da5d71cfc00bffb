package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/finance/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	cmd.LoadEnv()
	cmd.RegisterFlags(flag.CommandLine)

	completion().Complete("fin")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	ctx := context.Background()

	if flag.NArg() == 0 {
		// No subcommand: start the interactive menu.
		if err := flag.CommandLine.Parse([]string{"menu"}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		os.Exit(int(commander.Execute(ctx)))
	}

	if !isRegistered(flag.Arg(0)) {
		if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(ctx)))
}

func isRegistered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	files := predict.Files("*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"file":         files,
			"log-file":     files,
			"snapshot-dir": predict.Dirs("*"),
			"report-file":  files,
			"currency":     predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
			"page-size":    predict.Something,
			"v":            predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"menu": {Flags: map[string]complete.Predictor{"load": predict.Nothing}},
			"view": {Flags: map[string]complete.Predictor{
				"type": predict.Set{"credit", "debit", "transfer"},
				"year": predict.Something,
			}},
			"analyze": {},
			"report": {Flags: map[string]complete.Predictor{
				"o":   files,
				"p":   predict.Set{"month", "year"},
				"top": predict.Something,
			}},
			"convert": {Flags: map[string]complete.Predictor{"o": files}},
			"fmt":     {},
			"topic":   {Args: predict.Set{"readme", "menu", "file-format", "configuration"}},
			"help":    {},
		},
	}
}
