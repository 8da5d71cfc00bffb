// Package cmd implements the CLI application to manage a transaction ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/etnz/finance"
	"github.com/etnz/finance/sqlite"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// Environment variables holding the default value of the global flags. They
// are also passed to extensions.
const (
	EnvFile        = "FIN_FILE"
	EnvLogFile     = "FIN_LOG_FILE"
	EnvSnapshotDir = "FIN_SNAPSHOT_DIR"
	EnvReportFile  = "FIN_REPORT_FILE"
	EnvCurrency    = "FIN_CURRENCY"
	EnvPageSize    = "FIN_PAGE_SIZE"
	EnvVerbose     = "FIN_VERBOSE"
)

// Config holds the global configuration, set by flags.
type Config struct {
	DataFile    string
	LogFile     string
	SnapshotDir string
	ReportFile  string
	Currency    string
	PageSize    int
	Verbose     bool
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var config Config

// Commands lists the subcommands, registered by the main package.
var Commands = []subcommands.Command{
	&menuCmd{},
	&viewCmd{},
	&analyzeCmd{},
	&reportCmd{},
	&convertCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// LoadEnv loads the .env file of the working directory, if any. Variables
// already set take precedence.
func LoadEnv() {
	_ = godotenv.Load()
}

// RegisterFlags declares the global flags on f, defaulted from the environment.
// It must be called after [LoadEnv].
func RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&config.DataFile, "file", getEnv(EnvFile, "financial transactions.csv"), "Path to the transactions file (.csv, .jsonl, .db or .sqlite)")
	f.StringVar(&config.LogFile, "log-file", getEnv(EnvLogFile, "errors.txt"), "Path to the log file, appended to")
	f.StringVar(&config.SnapshotDir, "snapshot-dir", getEnv(EnvSnapshotDir, "snapshots"), "Folder for snapshots of loaded files, empty to disable")
	f.StringVar(&config.ReportFile, "report-file", getEnv(EnvReportFile, "report.md"), "Path to the report file (.md or .html)")
	f.StringVar(&config.Currency, "currency", getEnv(EnvCurrency, "USD"), "Display currency")
	f.IntVar(&config.PageSize, "page-size", getEnvInt(EnvPageSize, 10), "Number of transactions per page")
	f.BoolVar(&config.Verbose, "v", getEnvBool(EnvVerbose, false), "Log debug messages")
}

// Validate checks the configuration and returns all the problems at once.
func (c Config) Validate() error {
	var errors []string
	if strings.TrimSpace(c.DataFile) == "" {
		errors = append(errors, "transactions file cannot be empty")
	}
	if strings.TrimSpace(c.LogFile) == "" {
		errors = append(errors, "log file cannot be empty")
	}
	if money.GetCurrency(c.Currency) == nil {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': unknown currency code", c.Currency))
	}
	if c.PageSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	}
	switch strings.ToLower(filepath.Ext(c.ReportFile)) {
	case ".md", ".html":
	default:
		errors = append(errors, fmt.Sprintf("invalid report file '%s': must end with .md or .html", c.ReportFile))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// OpenBackend returns the storage for path, chosen from its extension:
// ".db" and ".sqlite" are SQLite archives, ".jsonl" and anything else are
// files handled by [finance.NewFile].
func OpenBackend(path string) finance.Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return sqlite.New(path)
	default:
		return finance.NewFile(path)
	}
}

// setup validates the configuration and creates the logger. It reports
// problems on stderr, the caller returns ExitFailure when ok is false.
func setup() (logger *log.Logger, closeLog func(), ok bool) {
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, false
	}
	logger, closeLog, err := NewLogger(config.LogFile, config.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, false
	}
	return logger, closeLog, true
}

// loadStore loads the transactions file into a new store.
func loadStore(ctx context.Context, logger *log.Logger) (*finance.Store, error) {
	store := finance.NewStore(logger)
	batch, err := store.Load(ctx, OpenBackend(config.DataFile))
	if err != nil {
		return nil, err
	}
	if n := len(batch.Skipped); n > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d invalid row(s) of %q, see %q.\n", n, config.DataFile, config.LogFile)
	}
	return store, nil
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// renderMarkdown renders md for the terminal, md is returned unchanged when
// stdout is not a terminal or rendering fails.
func renderMarkdown(md string) string {
	if !isTerminal() {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// printMarkdown prints md to stdout.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}
