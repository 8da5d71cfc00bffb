package renderer

import (
	"strings"
	"text/template"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// DescriptionWidth is the number of characters of a description shown in tables.
const DescriptionWidth = 30

// Truncate shortens s to n characters followed by "..." when it is longer.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// cell makes s safe to print inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// largest returns the largest transaction of type t, or nil.
func largest(a *finance.Analysis, t finance.Type) *finance.Transaction {
	tx, ok := a.Largest(t)
	if !ok {
		return nil
	}
	return &tx
}

var funcs = template.FuncMap{
	"money":       func(a finance.Amount, currency string) string { return a.Format(currency) },
	"date":        func(d date.Date) string { return d.Format(date.DisplayFormat) },
	"description": func(s string) string { return cell(Truncate(s, DescriptionWidth)) },
	"types":       func() []finance.Type { return finance.Types },
	"largest":     largest,
}
