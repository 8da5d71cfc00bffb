package finance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotFound is returned when no transaction matches an id or a filter.
	ErrNotFound = errors.New("transaction not found")
	// ErrEmpty is returned by operations that need at least one transaction.
	ErrEmpty = errors.New("no transactions")
)

// Store is the in-memory list of transactions.
//
// Transactions keep their insertion order. Ids are unique.
type Store struct {
	transactions []Transaction
	log          *log.Logger
	dirty        bool // changed since last load or save
}

// NewStore creates an empty store. A nil logger discards all messages.
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{log: logger}
}

// Len returns the number of transactions.
func (s *Store) Len() int { return len(s.transactions) }

// Transactions returns a copy of all transactions in store order.
func (s *Store) Transactions() []Transaction { return slices.Clone(s.transactions) }

// Dirty reports whether the store changed since the last successful load or save.
func (s *Store) Dirty() bool { return s.dirty }

// Load replaces all transactions with the ones decoded from b.
//
// Skipped rows are logged. If b cannot be read, or contains no valid row, the
// store is left unchanged and an error is returned.
func (s *Store) Load(ctx context.Context, b Backend) (*Batch, error) {
	batch, err := b.Load(ctx)
	if err != nil {
		s.log.Error("cannot load transactions", "source", b.String(), "err", err)
		return nil, err
	}
	for _, skipped := range batch.Skipped {
		s.log.Error("skipped invalid row", "source", b.String(), "row", skipped.Row, "reason", skipped.Err)
	}
	if len(batch.Transactions) == 0 {
		err := fmt.Errorf("%w in %q", ErrNoValidRows, b.String())
		s.log.Error("cannot load transactions", "source", b.String(), "err", err)
		return batch, err
	}
	s.transactions = slices.Clone(batch.Transactions)
	s.dirty = false
	s.log.Info("loaded transactions", "source", b.String(), "count", len(batch.Transactions), "skipped", len(batch.Skipped))
	return batch, nil
}

// Save writes all transactions to b.
func (s *Store) Save(ctx context.Context, b Backend) error {
	if err := b.Save(ctx, s.transactions); err != nil {
		s.log.Error("cannot save transactions", "target", b.String(), "err", err)
		return err
	}
	s.dirty = false
	s.log.Info("saved transactions", "target", b.String(), "count", len(s.transactions))
	return nil
}

// NextID returns the id a new transaction would get: one more than the highest id.
func (s *Store) NextID() int {
	highest := 0
	for _, tx := range s.transactions {
		highest = max(highest, tx.ID)
	}
	return highest + 1
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.transactions, func(tx Transaction) bool { return tx.ID == id })
}

// Find returns the transaction with this id.
func (s *Store) Find(id int) (Transaction, bool) {
	i := s.index(id)
	if i < 0 {
		return Transaction{}, false
	}
	return s.transactions[i], true
}

// Add assigns the next id to tx, validates it and appends it.
func (s *Store) Add(tx Transaction) (Transaction, error) {
	tx.ID = s.NextID()
	if err := tx.Validate(); err != nil {
		s.log.Error("cannot add transaction", "err", err)
		return Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	s.transactions = append(s.transactions, tx)
	s.dirty = true
	return tx, nil
}

// Update replaces the transaction with the same id as tx.
func (s *Store) Update(tx Transaction) error {
	i := s.index(tx.ID)
	if i < 0 {
		s.log.Error("cannot update transaction", "id", tx.ID, "err", ErrNotFound)
		return fmt.Errorf("%w: %d", ErrNotFound, tx.ID)
	}
	if err := tx.Validate(); err != nil {
		s.log.Error("cannot update transaction", "id", tx.ID, "err", err)
		return fmt.Errorf("invalid transaction: %w", err)
	}
	s.transactions[i] = tx
	s.dirty = true
	return nil
}

// Delete removes the transaction with this id.
func (s *Store) Delete(id int) error {
	i := s.index(id)
	if i < 0 {
		s.log.Error("cannot delete transaction", "id", id, "err", ErrNotFound)
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)
	s.dirty = true
	return nil
}

// Filter returns the transactions matching f, in store order.
func (s *Store) Filter(f Filter) []Transaction {
	var res []Transaction
	for _, tx := range s.transactions {
		if f.Match(tx) {
			res = append(res, tx)
		}
	}
	return res
}

// CustomerIDs returns the sorted list of distinct customer ids.
func (s *Store) CustomerIDs() []int {
	ids := make([]int, 0, len(s.transactions))
	for _, tx := range s.transactions {
		ids = append(ids, tx.CustomerID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Analyze computes the aggregate statistics of all transactions.
func (s *Store) Analyze() (*Analysis, error) {
	a, err := Analyze(s.transactions)
	if err != nil {
		s.log.Error("cannot analyze transactions", "err", err)
	}
	return a, err
}
