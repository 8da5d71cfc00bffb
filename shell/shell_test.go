package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/google/go-cmp/cmp"
)

const sampleCSV = `transaction_id,date,customer_id,amount,type,description
1,2020-10-26,926,6478.39,credit,Online purchase - Electronics
2,2020-10-27,466,100.50,debit,Grocery shopping
3,2021-03-15,123,2500.00,transfer,Savings account transfer
4,2021-06-20,926,89.99,debit,Streaming subscription
5,2022-01-10,789,4500.00,credit,Freelance payment
6,2022-01-11,789,200.00,debit,Utility bill
7,2022-09-05,466,1200.00,transfer,Investment account deposit
8,2023-02-14,123,75.25,debit,Restaurant dinner
9,2023-07-30,926,3000.00,credit,Salary deposit
10,2023-08-01,466,150.00,debit,Phone bill
11,2024-04-12,789,600.00,transfer,Charity donation
12,2024-05-20,123,45.00,debit,Coffee shop
13,2024-11-25,926,800.00,credit,Bonus payment
14,2025-01-15,466,500.00,transfer,Loan repayment
15,2025-02-10,789,299.99,debit,New headphones
`

// fixture is a shell over the sample data with captured output and logs.
type fixture struct {
	*Shell
	store *finance.Store
	out   *bytes.Buffer
	logs  *bytes.Buffer
	dir   string
}

func newFixture(t *testing.T, input string, loaded bool) *fixture {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "transactions.csv")
	if err := os.WriteFile(data, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	f := &fixture{out: &bytes.Buffer{}, logs: &bytes.Buffer{}, dir: dir}
	logger := log.NewWithOptions(f.logs, log.Options{Level: log.ErrorLevel})
	f.store = finance.NewStore(logger)
	if loaded {
		if _, err := f.store.Load(t.Context(), finance.NewFile(data)); err != nil {
			t.Fatal(err)
		}
	}
	f.Shell = New(f.out, strings.NewReader(input), f.store, logger, Options{
		DataFile:    data,
		ReportFile:  filepath.Join(dir, "report.md"),
		SnapshotDir: filepath.Join(dir, "snapshots"),
		Today:       func() date.Date { return date.New(2025, 5, 21) },
		Now:         func() time.Time { return time.Date(2025, 5, 21, 14, 30, 0, 0, time.Local) },
	})
	return f
}

// assertOutput checks that the output contains every string of want.
func (f *fixture) assertOutput(t *testing.T, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(f.out.String(), w) {
			t.Errorf("output does not contain %q:\n%s", w, f.out.String())
		}
	}
}

func (f *fixture) assertNoLogs(t *testing.T) {
	t.Helper()
	if f.logs.Len() > 0 {
		t.Errorf("unexpected logs:\n%s", f.logs.String())
	}
}

func TestAdd(t *testing.T) {
	f := newFixture(t, "2025-05-21\n926\n100.50\ncredit\nTest purchase\n", true)
	if err := f.Add(); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	got, ok := f.store.Find(16)
	if !ok {
		t.Fatalf("transaction 16 not found")
	}
	want := finance.NewTransaction(16, date.New(2025, 5, 21), 926, finance.A(100.5), finance.Credit, "Test purchase")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Add() mismatch (-want +got):\n%s", diff)
	}
	f.assertOutput(t, "Valid customer IDs: 123, 466, 789, 926", "Transaction 16 added")
	f.assertNoLogs(t)
}

func TestAdd_Debit(t *testing.T) {
	f := newFixture(t, "2025-05-21\n926\n42\nDEBIT\nTest\n", true)
	if err := f.Add(); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got, _ := f.store.Find(16); !got.Amount.Equal(finance.A(-42)) {
		t.Errorf("Add() amount = %v, want -42", got.Amount)
	}
}

func TestAdd_Multiple(t *testing.T) {
	f := newFixture(t, "2025-05-21\n926\n1\ncredit\nfirst\n2025-05-22\n466\n2\ndebit\nsecond\n", true)
	for range 2 {
		if err := f.Add(); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	txs := f.store.Transactions()
	if len(txs) != 17 || txs[15].ID != 16 || txs[16].ID != 17 {
		t.Errorf("Add() twice gave %d transactions, last ids %d and %d", len(txs), txs[15].ID, txs[16].ID)
	}
}

func TestAdd_InvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		message string
		logged  string
	}{
		{"date", "2025-13-01\ncancel\n", "Error: Date must be in YYYY-MM-DD format (e.g., 2020-10-26). Please try again.", "2025-13-01"},
		{"negative customer", "2025-05-21\n-1\ncancel\n", "Error: Customer ID must be a positive integer. Please try again.", "input=-1"},
		{"customer", "2025-05-21\nabc\ncancel\n", "Error: Customer ID must be an integer. Please try again.", "input=abc"},
		{"negative amount", "2025-05-21\n926\n-100\ncancel\n", "Error: Amount must be positive. Please try again.", "input=-100"},
		{"zero amount", "2025-05-21\n926\n0\ncancel\n", "Error: Amount must be positive. Please try again.", "input=0"},
		{"amount", "2025-05-21\n926\nlots\ncancel\n", "Error: Amount must be a number. Please try again.", "input=lots"},
		{"type", "2025-05-21\n926\n100.50\ninvalid\ncancel\n", "Error: Type must be one of credit, debit, transfer. Please try again.", "input=invalid"},
		{"description", "2025-05-21\n926\n100.50\ncredit\n\ncancel\n", "Error: Description cannot be empty. Please try again.", "field=description"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.input, true)
			if err := f.Add(); !errors.Is(err, ErrCancelled) {
				t.Fatalf("Add() error = %v, want %v", err, ErrCancelled)
			}
			if f.store.Len() != 15 {
				t.Errorf("Len() = %d, want 15", f.store.Len())
			}
			f.assertOutput(t, tc.message, "Transaction cancelled.")
			if !strings.Contains(f.logs.String(), tc.logged) {
				t.Errorf("logs do not contain %q:\n%s", tc.logged, f.logs.String())
			}
		})
	}
}

func TestAdd_RetryThenCommit(t *testing.T) {
	f := newFixture(t, "yesterday\n2025-05-21\n926\n100.50\ncredit\nTest\n", true)
	if err := f.Add(); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if f.store.Len() != 16 {
		t.Errorf("Len() = %d, want 16", f.store.Len())
	}
}

func TestAdd_EndOfInput(t *testing.T) {
	f := newFixture(t, "2025-05-21\n926\n", true)
	if err := f.Add(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("Add() error = %v, want %v", err, ErrCancelled)
	}
	if f.store.Len() != 15 {
		t.Errorf("Len() = %d, want 15", f.store.Len())
	}
}

func TestView(t *testing.T) {
	testCases := []struct {
		name      string
		typ, year string
		want      []string
		notWant   []string
	}{
		{
			name: "all",
			want: []string{"All transactions (Page 1 of 2, 10 transactions)", "Oct 26, 2020", "$6,478.39", "Credit", "Online purchase - Electronics", "Displayed 15 transactions across 2 page(s)"},
		},
		{
			name:    "credit",
			typ:     "credit",
			want:    []string{"Credit transactions (Page 1 of 1, 4 transactions)", "926", "789", "Displayed 4 transactions across 1 page(s)"},
			notWant: []string{"466", "Enter command"},
		},
		{
			name:    "year",
			year:    "2020",
			want:    []string{"Transactions in 2020 (Page 1 of 1, 2 transactions)", "926", "466"},
			notWant: []string{"789"},
		},
		{
			name:    "type and year",
			typ:     "debit",
			year:    "2020",
			want:    []string{"Debit transactions in 2020 (Page 1 of 1, 1 transactions)", "466"},
			notWant: []string{"926"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "exit\n", true)
			if err := f.View(tc.typ, tc.year); err != nil {
				t.Fatalf("View() error = %v", err)
			}
			f.assertOutput(t, tc.want...)
			for _, nw := range tc.notWant {
				if strings.Contains(f.out.String(), nw) {
					t.Errorf("output contains %q:\n%s", nw, f.out.String())
				}
			}
			f.assertNoLogs(t)
		})
	}
}

func TestView_Pagination(t *testing.T) {
	f := newFixture(t, "next\nprev\nprev\nend\nnext\nstart\njump\nexit\n", true)
	for i := range 10 {
		if _, err := f.store.Add(finance.NewTransaction(0, date.New(2025, 3, i+1), 123, finance.A(10), finance.Credit, "extra")); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.View("", ""); err != nil {
		t.Fatalf("View() error = %v", err)
	}
	f.assertOutput(t,
		"Page 1 of 3",
		"Page 2 of 3",
		"Page 3 of 3, 5 transactions",
		"Enter command (start, next, prev, end, exit):",
		"Already on the first page.",
		"Already on the last page.",
		"Invalid command.",
		"Displayed 25 transactions across 3 page(s)",
	)
	if got := strings.Count(f.out.String(), "(Page 1 of 3"); got != 3 {
		t.Errorf("page 1 shown %d times, want 3", got)
	}
	f.assertNoLogs(t)
}

func TestView_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		loaded    bool
		typ, year string
		wantErr   error
		message   string
		logged    bool
	}{
		{"invalid type", true, "invalid", "", finance.ErrInvalidFilterType, "Error: Filter type must be one of credit, debit, transfer or empty.", true},
		{"year out of range", true, "", "1800", finance.ErrYearOutOfRange, "Error: Year must be between 1900 and 2025.", true},
		{"future year", true, "", "2026", finance.ErrYearOutOfRange, "Error: Year must be between 1900 and 2025.", true},
		{"year not integer", true, "", "abc", finance.ErrYearNotInteger, "Error: Year must be an integer.", true},
		{"no match", true, "credit", "2019", finance.ErrNotFound, "No Credit transactions in 2019 found.", false},
		{"empty store", false, "", "", finance.ErrEmpty, "No transactions to display.", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "", tc.loaded)
			if err := f.View(tc.typ, tc.year); !errors.Is(err, tc.wantErr) {
				t.Fatalf("View() error = %v, want %v", err, tc.wantErr)
			}
			f.assertOutput(t, tc.message)
			if got := f.logs.Len() > 0; got != tc.logged {
				t.Errorf("logged = %v, want %v:\n%s", got, tc.logged, f.logs.String())
			}
		})
	}
}

func TestView_SinglePage(t *testing.T) {
	f := newFixture(t, "", false)
	if _, err := f.store.Add(finance.NewTransaction(0, date.New(2025, 5, 21), 926, finance.A(100.5), finance.Credit, strings.Repeat("A", 100))); err != nil {
		t.Fatal(err)
	}
	if err := f.View("", ""); err != nil {
		t.Fatalf("View() error = %v", err)
	}
	f.assertOutput(t, "All transactions (Page 1 of 1, 1 transactions)", strings.Repeat("A", 30)+"...", "Displayed 1 transactions across 1 page(s)")
	if strings.Contains(f.out.String(), strings.Repeat("A", 31)) {
		t.Errorf("description was not truncated:\n%s", f.out.String())
	}
	if strings.Contains(f.out.String(), "Enter command") {
		t.Errorf("navigation prompt shown for a single page")
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t, "1\n2025-05-22\n466\n200.75\ndebit\nUpdated\n", true)
	if err := f.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := f.store.Find(1)
	want := finance.NewTransaction(1, date.New(2025, 5, 22), 466, finance.A(200.75), finance.Debit, "Updated")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Update() mismatch (-want +got):\n%s", diff)
	}
	if !got.Amount.Equal(finance.A(-200.75)) {
		t.Errorf("amount = %v, want -200.75", got.Amount)
	}
	f.assertOutput(t, "Transaction 1 updated successfully!")
	f.assertNoLogs(t)
}

func TestUpdate_KeepValues(t *testing.T) {
	f := newFixture(t, "1\n\n\n\n\n\n", true)
	before, _ := f.store.Find(1)
	if err := f.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	after, _ := f.store.Find(1)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("Update() changed the transaction (-want +got):\n%s", diff)
	}
	f.assertOutput(t, "Transaction 1 updated successfully!")
	f.assertNoLogs(t)
}

func TestUpdate_TypeChangeResigns(t *testing.T) {
	f := newFixture(t, "1\n\n\n\ndebit\n\n", true)
	if err := f.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got, _ := f.store.Find(1); !got.Amount.Equal(finance.A(-6478.39)) || got.Type != finance.Debit {
		t.Errorf("Update() = %v, want a debit of -6478.39", got)
	}
}

func TestUpdate_Cancel(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		message string
		logged  string
	}{
		{"cancel", "cancel\n", "Update cancelled.", ""},
		{"unknown id", "999\ncancel\n", "Error: Transaction ID 999 not found. Try again.", "input=999"},
		{"invalid date", "1\n2025-13-01\ncancel\n", "Error: Date must be in YYYY-MM-DD format (e.g., 2020-10-26). Try again.", "input=2025-13-01"},
		{"late cancel", "1\n2025-05-22\n466\ncancel\n", "Update cancelled.", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.input, true)
			before := f.store.Transactions()
			if err := f.Update(); !errors.Is(err, ErrCancelled) {
				t.Fatalf("Update() error = %v, want %v", err, ErrCancelled)
			}
			if diff := cmp.Diff(before, f.store.Transactions()); diff != "" {
				t.Errorf("cancelled Update() changed the store (-want +got):\n%s", diff)
			}
			f.assertOutput(t, tc.message, "Update cancelled.")
			if tc.logged == "" {
				f.assertNoLogs(t)
			} else if !strings.Contains(f.logs.String(), tc.logged) {
				t.Errorf("logs do not contain %q:\n%s", tc.logged, f.logs.String())
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for _, input := range []string{"1\ny\n", "1\nmaybe\nYES\n"} {
		f := newFixture(t, input, true)
		if err := f.Delete(); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok := f.store.Find(1); ok || f.store.Len() != 14 {
			t.Errorf("Delete() did not remove transaction 1")
		}
		f.assertOutput(t, "Transaction 1 deleted successfully!")
		f.assertNoLogs(t)
	}
}

func TestDelete_Cancel(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		message string
	}{
		{"refused", "1\nn\n", "Deletion cancelled."},
		{"unknown id", "999\ncancel\n", "Error: Transaction ID 999 not found. Try again."},
		{"invalid id", "one\ncancel\n", "Error: Transaction ID must be a positive integer. Try again."},
		{"end of input", "1\n", "Deletion cancelled."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.input, true)
			if err := f.Delete(); !errors.Is(err, ErrCancelled) {
				t.Fatalf("Delete() error = %v, want %v", err, ErrCancelled)
			}
			if f.store.Len() != 15 {
				t.Errorf("Len() = %d, want 15", f.store.Len())
			}
			f.assertOutput(t, tc.message)
		})
	}
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t, "", true)
	if err := f.Analyze(); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	f.assertOutput(t, "15 transactions from Oct 26, 2020 to Feb 10, 2025.", "| Credit | 4 | $14,778.39 |", "**Net balance**: $13,817.66")

	empty := newFixture(t, "", false)
	if err := empty.Analyze(); !errors.Is(err, finance.ErrEmpty) {
		t.Errorf("Analyze() error = %v, want %v", err, finance.ErrEmpty)
	}
	empty.assertOutput(t, "No transactions to analyze.")
}

func TestRun_LoadSnapshotsDataFile(t *testing.T) {
	f := newFixture(t, "1\n9\n", false)
	if err := f.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.store.Len() != 15 {
		t.Errorf("Len() = %d, want 15", f.store.Len())
	}
	f.assertOutput(t, "Loaded 15 transactions from", "Transactions loaded successfully.", "Exiting the program.")
	if _, err := os.Stat(filepath.Join(f.dir, "snapshots", "transactions_20250521_143000.csv")); err != nil {
		t.Errorf("snapshot not found: %v", err)
	}
	f.assertNoLogs(t)
}

func TestLoad_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		content string // empty: no file
		message string
	}{
		{"missing file", "", "not found."},
		{"missing column", "transaction_id,date,amount,type,description\n1,2020-10-26,10,credit,x\n", "Missing columns in file: customer_id"},
		{"no valid row", "transaction_id,date,customer_id,amount,type,description\n1,bad,1,1,credit,x\n", "No valid transactions found in"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "", true)
			f.opts.DataFile = filepath.Join(f.dir, "other.csv")
			if tc.content != "" {
				if err := os.WriteFile(f.opts.DataFile, []byte(tc.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			if err := f.Load(t.Context()); err == nil {
				t.Fatalf("Load() want error")
			}
			if f.store.Len() != 15 {
				t.Errorf("failed Load() changed the store: Len() = %d", f.store.Len())
			}
			f.assertOutput(t, tc.message)
			if _, err := os.Stat(filepath.Join(f.dir, "snapshots")); err == nil {
				t.Errorf("failed Load() created a snapshot")
			}
		})
	}
}

func TestLoad_UnsavedChanges(t *testing.T) {
	f := newFixture(t, "n\n", true)
	if _, err := f.store.Add(finance.NewTransaction(0, date.New(2025, 5, 21), 926, finance.A(1), finance.Credit, "new")); err != nil {
		t.Fatal(err)
	}
	if err := f.Load(t.Context()); !errors.Is(err, ErrCancelled) {
		t.Fatalf("Load() error = %v, want %v", err, ErrCancelled)
	}
	if f.store.Len() != 16 {
		t.Errorf("Len() = %d, want 16", f.store.Len())
	}
}

func TestRun_SaveAndReport(t *testing.T) {
	f := newFixture(t, "2\n2025-05-21\n926\n100.50\ncredit\nTest purchase\n7\n8\n9\n", true)
	f.opts.ReportFile = filepath.Join(f.dir, "report.html")
	if err := f.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	f.assertOutput(t,
		"Transaction added to memory. Save to persist changes.",
		"Transactions saved successfully.",
		"Report generated successfully.",
		"Exiting the program.",
	)
	if strings.Contains(f.out.String(), "unsaved changes") {
		t.Errorf("exit asked for confirmation after a save")
	}

	batch, err := finance.NewFile(f.opts.DataFile).Load(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f.store.Transactions(), batch.Transactions); diff != "" {
		t.Errorf("saved file mismatch (-want +got):\n%s", diff)
	}

	report, err := os.ReadFile(f.opts.ReportFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<title>Transactions report</title>", "<table>", "Test purchase"} {
		if !strings.Contains(string(report), want) {
			t.Errorf("report does not contain %q", want)
		}
	}
}

func TestRun_Menu(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"invalid option", "x\n9\n", []string{"Invalid option.", "Exiting the program."}},
		{"end of input", "", []string{"Select an option: ", "Exiting the program."}},
		{"view", "3\ncredit\n2019\n9\n", []string{"No Credit transactions in 2019 found.", "No transactions displayed."}},
		{"analyze", "6\n9\n", []string{"**Net balance**: $13,817.66"}},
		{
			name:  "unsaved changes",
			input: "5\n1\ny\n9\nn\n9\ny\n",
			want:  []string{"Transaction deleted from memory.", "You have unsaved changes. Exit anyway? (y/n): ", "Exiting the program."},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.input, true)
			if err := f.Run(t.Context()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			f.assertOutput(t, tc.want...)
		})
	}
}

func TestRun_UnsavedChangesAskedTwice(t *testing.T) {
	f := newFixture(t, "5\n1\ny\n9\nn\n9\ny\n", true)
	if err := f.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.Count(f.out.String(), "Exit anyway?"); got != 2 {
		t.Errorf("confirmation asked %d times, want 2", got)
	}
	if got := strings.Count(f.out.String(), "Exiting the program."); got != 1 {
		t.Errorf("exit message printed %d times, want 1", got)
	}
}
