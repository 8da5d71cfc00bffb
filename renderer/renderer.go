package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/etnz/finance"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Page is one page of a paginated transaction listing.
type Page struct {
	Title        string // e.g. "Credit transactions in 2020"
	Number       int    // 1-based
	Pages        int
	Currency     string
	Transactions []finance.Transaction
}

// RenderPage renders a page of transactions to a markdown string.
//
// The header reads "### <Title> (Page i of n, k transactions)" where k is the
// number of transactions on this page.
func RenderPage(p Page) string {
	partials := map[string]string{
		"page_transactions": "page_transactions.md",
	}
	return renderTemplate("page", "page.md", partials, p)
}

// analysisView pairs an analysis with its display currency.
type analysisView struct {
	Analysis *finance.Analysis
	Currency string
}

// RenderAnalysis renders the statistics of an analysis to a markdown string.
func RenderAnalysis(a *finance.Analysis, currency string) string {
	partials := map[string]string{
		"analysis_summary": "analysis_summary.md",
	}
	return renderTemplate("analysis", "analysis.md", partials, analysisView{Analysis: a, Currency: currency})
}

// RenderReport renders a full report to a markdown string.
func RenderReport(r *finance.Report) string {
	partials := map[string]string{
		"analysis_summary":  "analysis_summary.md",
		"report_periods":    "report_periods.md",
		"report_customers":  "report_customers.md",
		"page_transactions": "page_transactions.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

var htmlPage = template.Must(template.New("html").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}</body>
</html>
`))

// HTML converts markdown to a standalone HTML document, GitHub flavored
// tables included.
func HTML(title, md string) (string, error) {
	var body bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("cannot convert markdown: %w", err)
	}
	var b strings.Builder
	err := htmlPage.Execute(&b, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		return "", fmt.Errorf("cannot render html page: %w", err)
	}
	return b.String(), nil
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := texttemplate.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// WriteReport renders r to path, as HTML when path ends with ".html" and as
// markdown otherwise.
func WriteReport(path string, r *finance.Report) error {
	content := RenderReport(r)
	if strings.EqualFold(filepath.Ext(path), ".html") {
		var err error
		if content, err = HTML("Transactions report", content); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("cannot write report %q: %w", path, err)
	}
	return nil
}
