package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
)

const (
	retryAdd  = "Please try again."
	retryEdit = "Try again."
)

// Add collects a new transaction field by field and appends it to the store.
func (s *Shell) Add() error {
	tx, err := s.askTransaction()
	if errors.Is(err, ErrCancelled) {
		fmt.Fprintln(s.w, "Transaction cancelled.")
		return err
	}
	if err != nil {
		return err
	}
	tx, err = s.store.Add(tx)
	if err != nil {
		fmt.Fprintf(s.w, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(s.w, "Transaction %d added: %s\n", tx.ID, renderer.Transaction(tx, s.opts.Currency))
	return nil
}

func (s *Shell) askTransaction() (finance.Transaction, error) {
	on, err := ask(s, "date", "Enter date (YYYY-MM-DD): ", retryAdd, finance.ParseDate)
	if err != nil {
		return finance.Transaction{}, err
	}
	if ids := s.store.CustomerIDs(); len(ids) > 0 {
		fmt.Fprintf(s.w, "Valid customer IDs: %s\n", joinInts(ids))
	}
	customer, err := ask(s, "customer_id", "Enter customer ID: ", retryAdd, finance.ParseCustomerID)
	if err != nil {
		return finance.Transaction{}, err
	}
	amount, err := ask(s, "amount", "Enter amount: ", retryAdd, finance.ParsePositiveAmount)
	if err != nil {
		return finance.Transaction{}, err
	}
	typ, err := ask(s, "type", "Enter type (credit/debit/transfer): ", retryAdd, finance.ParseType)
	if err != nil {
		return finance.Transaction{}, err
	}
	description, err := ask(s, "description", "Enter description: ", retryAdd, finance.ParseDescription)
	if err != nil {
		return finance.Transaction{}, err
	}
	return finance.NewTransaction(0, on, customer, amount, typ, description), nil
}

// find parses a transaction id and looks it up.
func (s *Shell) find(input string) (finance.Transaction, error) {
	id, err := finance.ParseID(input)
	if err != nil {
		return finance.Transaction{}, err
	}
	tx, ok := s.store.Find(id)
	if !ok {
		return finance.Transaction{}, fmt.Errorf("%w: %d", finance.ErrNotFound, id)
	}
	return tx, nil
}

// Update asks for a transaction id, then for each field a new value. An empty
// answer keeps the current value.
func (s *Shell) Update() error {
	tx, err := s.update()
	if errors.Is(err, ErrCancelled) {
		fmt.Fprintln(s.w, "Update cancelled.")
		return err
	}
	if err != nil {
		return err
	}
	if err := s.store.Update(tx); err != nil {
		fmt.Fprintf(s.w, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(s.w, "Transaction %d updated successfully!\n", tx.ID)
	return nil
}

func (s *Shell) update() (finance.Transaction, error) {
	tx, err := ask(s, "transaction_id", "Enter transaction ID to update (or 'cancel'): ", retryEdit, s.find)
	if err != nil {
		return finance.Transaction{}, err
	}
	fmt.Fprintf(s.w, "Current: %s\n", renderer.Transaction(tx, s.opts.Currency))
	fmt.Fprintln(s.w, "Press Enter to keep the current value.")

	on, err := ask(s, "date", fmt.Sprintf("Enter new date (YYYY-MM-DD) [%s]: ", tx.Date), retryEdit, keep(tx.Date, finance.ParseDate))
	if err != nil {
		return finance.Transaction{}, err
	}
	customer, err := ask(s, "customer_id", fmt.Sprintf("Enter new customer ID [%d]: ", tx.CustomerID), retryEdit, keep(tx.CustomerID, finance.ParseCustomerID))
	if err != nil {
		return finance.Transaction{}, err
	}
	amount, err := ask(s, "amount", fmt.Sprintf("Enter new amount [%s]: ", tx.Amount.Unsigned()), retryEdit, keep(tx.Amount.Abs(), finance.ParsePositiveAmount))
	if err != nil {
		return finance.Transaction{}, err
	}
	typ, err := ask(s, "type", fmt.Sprintf("Enter new type (credit/debit/transfer) [%s]: ", tx.Type), retryEdit, keep(tx.Type, finance.ParseType))
	if err != nil {
		return finance.Transaction{}, err
	}
	description, err := ask(s, "description", fmt.Sprintf("Enter new description [%s]: ", tx.Description), retryEdit, keep(tx.Description, finance.ParseDescription))
	if err != nil {
		return finance.Transaction{}, err
	}
	return finance.NewTransaction(tx.ID, on, customer, amount, typ, description), nil
}

// Delete asks for a transaction id and removes it after confirmation.
func (s *Shell) Delete() error {
	tx, err := ask(s, "transaction_id", "Enter transaction ID to delete (or 'cancel'): ", retryEdit, s.find)
	if err != nil {
		fmt.Fprintln(s.w, "Deletion cancelled.")
		return err
	}
	fmt.Fprintf(s.w, "Transaction: %s\n", renderer.Transaction(tx, s.opts.Currency))
	ok, err := s.confirm("Are you sure you want to delete this transaction? (y/n): ")
	if err != nil || !ok {
		fmt.Fprintln(s.w, "Deletion cancelled.")
		return ErrCancelled
	}
	if err := s.store.Delete(tx.ID); err != nil {
		fmt.Fprintf(s.w, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(s.w, "Transaction %d deleted successfully!\n", tx.ID)
	return nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
