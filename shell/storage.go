package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
)

// Load replaces the store content with the data file. Unsaved changes are
// only discarded after confirmation.
func (s *Shell) Load(ctx context.Context) error {
	if s.store.Dirty() {
		ok, err := s.confirm("Unsaved changes will be lost. Continue? (y/n): ")
		if err != nil || !ok {
			fmt.Fprintln(s.w, "Load cancelled.")
			return ErrCancelled
		}
	}
	path := s.opts.DataFile
	batch, err := s.store.Load(ctx, s.opts.Open(path))
	var missing *finance.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(s.w, "Missing columns in file: %s\n", strings.Join(missing.Columns, ", "))
		return err
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(s.w, "File '%s' not found.\n", path)
		return err
	case errors.Is(err, finance.ErrNoValidRows):
		fmt.Fprintf(s.w, "No valid transactions found in '%s'.\n", path)
		return err
	case err != nil:
		fmt.Fprintf(s.w, "Error: %v\n", err)
		return err
	}

	fmt.Fprintf(s.w, "Loaded %d transactions from '%s'.\n", len(batch.Transactions), path)
	if n := len(batch.Skipped); n > 0 {
		fmt.Fprintf(s.w, "Skipped %d invalid row(s), see the log for details.\n", n)
	}
	if s.opts.SnapshotDir != "" {
		dst, err := finance.Snapshot(path, s.opts.SnapshotDir, s.opts.Now())
		if err != nil {
			s.log.Error("cannot snapshot data file", "source", path, "err", err)
			fmt.Fprintf(s.w, "Warning: %v\n", err)
		} else {
			s.log.Info("snapshot created", "source", path, "snapshot", dst)
		}
	}
	return nil
}

// Save writes the store content to the data file.
func (s *Shell) Save(ctx context.Context) error {
	path := s.opts.DataFile
	if err := s.store.Save(ctx, s.opts.Open(path)); err != nil {
		fmt.Fprintf(s.w, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(s.w, "Saved %d transactions to '%s'.\n", s.store.Len(), path)
	return nil
}

// Analyze prints the statistics of the store content.
func (s *Shell) Analyze() error {
	a, err := s.store.Analyze()
	if err != nil {
		fmt.Fprintln(s.w, "No transactions to analyze.")
		return err
	}
	s.printMarkdown(renderer.RenderAnalysis(a, s.opts.Currency))
	return nil
}

// Report writes the full report of the store content to the report file.
func (s *Shell) Report() error {
	r, err := finance.NewReport(s.store.Transactions(), s.opts.Today(), s.opts.Currency, date.Yearly, 5)
	if err != nil {
		fmt.Fprintln(s.w, "No transactions to report.")
		s.log.Error("cannot build report", "err", err)
		return err
	}
	if err := renderer.WriteReport(s.opts.ReportFile, r); err != nil {
		fmt.Fprintf(s.w, "Error: %v\n", err)
		s.log.Error("cannot write report", "target", s.opts.ReportFile, "err", err)
		return err
	}
	fmt.Fprintf(s.w, "Report written to '%s'.\n", s.opts.ReportFile)
	return nil
}
