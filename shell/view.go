package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
)

// View lists the transactions matching a type and a year, both optional, one
// page at a time. With more than one page the user navigates with start,
// next, prev, end and exit.
func (s *Shell) View(typ, year string) error {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.w, "No transactions to display.")
		return finance.ErrEmpty
	}
	f, err := finance.ParseFilter(typ, year, s.opts.Today())
	if err != nil {
		switch {
		case errors.Is(err, finance.ErrInvalidFilterType):
			fmt.Fprintln(s.w, "Error: Filter type must be one of credit, debit, transfer or empty.")
		case errors.Is(err, finance.ErrYearNotInteger):
			fmt.Fprintln(s.w, "Error: Year must be an integer.")
		default:
			fmt.Fprintf(s.w, "Error: Year must be between %d and %d.\n", finance.MinYear, s.opts.Today().Year())
		}
		s.log.Error("invalid filter", "type", typ, "year", year, "err", err)
		return err
	}

	txs := s.store.Filter(f)
	if len(txs) == 0 {
		fmt.Fprintln(s.w, f.NotFound())
		return finance.ErrNotFound
	}

	size := s.opts.PageSize
	pages := (len(txs) + size - 1) / size
	page, show := 0, true
loop:
	for {
		if show {
			start := page * size
			end := min(start+size, len(txs))
			s.printMarkdown(renderer.RenderPage(renderer.Page{
				Title:        f.Title(),
				Number:       page + 1,
				Pages:        pages,
				Currency:     s.opts.Currency,
				Transactions: txs[start:end],
			}))
		}
		if pages == 1 {
			break
		}
		command, err := s.readAnswer("Enter command (start, next, prev, end, exit): ")
		if err != nil {
			break
		}
		show = true
		switch strings.ToLower(command) {
		case "start":
			page = 0
		case "end":
			page = pages - 1
		case "next":
			if page == pages-1 {
				fmt.Fprintln(s.w, "Already on the last page.")
				show = false
			} else {
				page++
			}
		case "prev":
			if page == 0 {
				fmt.Fprintln(s.w, "Already on the first page.")
				show = false
			} else {
				page--
			}
		case "exit":
			break loop
		default:
			fmt.Fprintln(s.w, "Invalid command. Use start, next, prev, end or exit.")
			show = false
		}
	}
	fmt.Fprintf(s.w, "Displayed %d transactions across %d page(s)\n", len(txs), pages)
	return nil
}
