// Package shell implements the interactive, menu driven session over a
// transaction store.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Options configures a Shell. Zero fields get defaults.
type Options struct {
	DataFile    string // file loaded and saved by the menu
	ReportFile  string // ".md" or ".html"
	SnapshotDir string // where loaded files are copied, empty disables snapshots
	Currency    string // display currency, default "USD"
	PageSize    int    // transactions per page, default 10

	// Markdown renders markdown for the terminal, nil prints it raw.
	Markdown func(string) string
	// Open returns the backend for a path, default [finance.NewFile].
	Open  func(path string) finance.Backend
	Today func() date.Date
	Now   func() time.Time
}

// Shell is an interactive session over a store.
type Shell struct {
	w     io.Writer
	r     *bufio.Reader
	store *finance.Store
	log   *log.Logger
	opts  Options
}

// New creates a Shell that writes to w and reads user input from r.
func New(w io.Writer, r io.Reader, store *finance.Store, logger *log.Logger, opts Options) *Shell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.DataFile == "" {
		opts.DataFile = "financial transactions.csv"
	}
	if opts.ReportFile == "" {
		opts.ReportFile = "report.md"
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Open == nil {
		opts.Open = func(path string) finance.Backend { return finance.NewFile(path) }
	}
	if opts.Today == nil {
		opts.Today = date.Today
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Shell{
		w:     w,
		r:     bufio.NewReader(r),
		store: store,
		log:   logger,
		opts:  opts,
	}
}

const menu = `
Finance ledger
1. Load transactions
2. Add transaction
3. View transactions
4. Update transaction
5. Delete transaction
6. Analyze finances
7. Save transactions
8. Generate report
9. Exit
`

// Run starts the menu loop. It returns when the user exits or the input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.w, menu)
		fmt.Fprint(s.w, "Select an option: ")
		choice, err := s.readLine()
		if err != nil {
			fmt.Fprintln(s.w)
			fmt.Fprintln(s.w, "Exiting the program.")
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.report(s.Load(ctx), "Transactions loaded successfully.", "Failed to load transactions.")
		case "2":
			s.report(s.Add(), "Transaction added to memory. Save to persist changes.", "Transaction not added.")
		case "3":
			typ, err := s.readAnswer("Enter type to filter (credit/debit/transfer, or press Enter for all): ")
			if err != nil {
				continue
			}
			year, err := s.readAnswer("Enter year to filter (e.g., 2020, or press Enter for all): ")
			if err != nil {
				continue
			}
			s.report(s.View(typ, year), "", "No transactions displayed.")
		case "4":
			s.report(s.Update(), "Transaction updated in memory. Save to persist changes.", "Transaction not updated.")
		case "5":
			s.report(s.Delete(), "Transaction deleted from memory. Save to persist changes.", "Transaction not deleted.")
		case "6":
			s.report(s.Analyze(), "", "Analysis failed.")
		case "7":
			s.report(s.Save(ctx), "Transactions saved successfully.", "Failed to save transactions.")
		case "8":
			s.report(s.Report(), "Report generated successfully.", "Failed to generate report.")
		case "9":
			if s.store.Dirty() {
				ok, err := s.confirm("You have unsaved changes. Exit anyway? (y/n): ")
				if err == nil && !ok {
					continue
				}
			}
			fmt.Fprintln(s.w, "Exiting the program.")
			return nil
		default:
			fmt.Fprintln(s.w, "Invalid option.")
		}
	}
}

// report prints the outcome of a menu operation. Empty messages are skipped.
func (s *Shell) report(err error, success, failure string) {
	msg := success
	if err != nil {
		msg = failure
	}
	if msg != "" {
		fmt.Fprintln(s.w, msg)
	}
}

// printMarkdown prints md, rendered for the terminal when configured.
func (s *Shell) printMarkdown(md string) {
	if s.opts.Markdown != nil {
		md = s.opts.Markdown(md)
	}
	fmt.Fprint(s.w, md)
	if !strings.HasSuffix(md, "\n") {
		fmt.Fprintln(s.w)
	}
}
