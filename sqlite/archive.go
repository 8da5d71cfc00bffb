// Package sqlite stores transactions in a single-table SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/finance"

	_ "modernc.org/sqlite"
)

// Archive is a [finance.Backend] backed by a SQLite database file.
//
// Rows keep the store order through their position. Amounts are stored as
// unsigned decimal text, like in CSV files.
type Archive struct {
	Path string
}

// New returns the archive stored at path. Nothing is opened until Load or Save.
func New(path string) *Archive { return &Archive{Path: path} }

func (a *Archive) String() string { return a.Path }

// open opens the database and migrates its schema.
func (a *Archive) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", a.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrateUp(a.Path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Load implements [finance.Backend]. The archive must exist.
func (a *Archive) Load(ctx context.Context) (*finance.Batch, error) {
	if _, err := os.Stat(a.Path); err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", a.Path, err)
	}
	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT position, transaction_id, date, customer_id, amount, type, description
		FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	c := finance.NewCollector()
	for rows.Next() {
		var (
			position                                   int
			id, on, customer, amount, typ, description sql.NullString
		)
		if err := rows.Scan(&position, &id, &on, &customer, &amount, &typ, &description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		c.Collect(position, finance.Record{
			ID:          id.String,
			Date:        on.String,
			CustomerID:  customer.String,
			Amount:      amount.String,
			Type:        typ.String,
			Description: description.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	return c.Batch(), nil
}

// Save implements [finance.Backend]. The table is replaced in a single
// database transaction.
func (a *Archive) Save(ctx context.Context, txs []finance.Transaction) (err error) {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	db, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	dbtx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			dbtx.Rollback()
		}
	}()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	stmt, err := dbtx.PrepareContext(ctx, `INSERT INTO transactions
		(position, transaction_id, date, customer_id, amount, type, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, tx := range txs {
		r := finance.RecordOf(tx)
		if _, err := stmt.ExecContext(ctx, i+1, tx.ID, r.Date, tx.CustomerID, r.Amount, r.Type, r.Description); err != nil {
			return fmt.Errorf("insert transaction %d: %w", tx.ID, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
