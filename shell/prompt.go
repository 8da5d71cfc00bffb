package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finance"
)

// ErrCancelled is returned when the user cancels an interactive operation,
// by typing "cancel" or closing the input.
var ErrCancelled = errors.New("cancelled")

// readLine reads one line of input without its line ending. A last line
// without newline is returned, io.EOF comes after.
func (s *Shell) readLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readAnswer prints prompt and reads a trimmed answer.
func (s *Shell) readAnswer(prompt string) (string, error) {
	fmt.Fprint(s.w, prompt)
	line, err := s.readLine()
	if err != nil {
		return "", ErrCancelled
	}
	return strings.TrimSpace(line), nil
}

// ask runs the prompt, validate, retry loop of a single field until parse
// accepts the answer. Invalid answers are reported with retry appended and
// logged. "cancel" or the end of input returns ErrCancelled.
func ask[T any](s *Shell, field, prompt, retry string, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		line, err := s.readAnswer(prompt)
		if err != nil {
			return zero, err
		}
		if strings.EqualFold(line, "cancel") {
			return zero, ErrCancelled
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(s.w, "Error: %s. %s\n", hint(line, err), retry)
		s.log.Error("invalid input", "field", field, "input", line, "err", err)
	}
}

// keep wraps parse so that an empty answer returns current.
func keep[T any](current T, parse func(string) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		if strings.TrimSpace(s) == "" {
			return current, nil
		}
		return parse(s)
	}
}

// confirm asks a yes/no question until it gets an answer.
func (s *Shell) confirm(prompt string) (bool, error) {
	for {
		answer, err := s.readAnswer(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(s.w, "Please answer y or n.")
	}
}

// hint returns the message shown to the user for an invalid answer.
func hint(input string, err error) string {
	switch {
	case errors.Is(err, finance.ErrInvalidDate):
		return "Date must be in YYYY-MM-DD format (e.g., 2020-10-26)"
	case errors.Is(err, finance.ErrNonPositiveCustomerID):
		return "Customer ID must be a positive integer"
	case errors.Is(err, finance.ErrInvalidCustomerID):
		return "Customer ID must be an integer"
	case errors.Is(err, finance.ErrNonPositiveAmount):
		return "Amount must be positive"
	case errors.Is(err, finance.ErrInvalidAmount):
		return "Amount must be a number"
	case errors.Is(err, finance.ErrInvalidType):
		return "Type must be one of credit, debit, transfer"
	case errors.Is(err, finance.ErrEmptyDescription):
		return "Description cannot be empty"
	case errors.Is(err, finance.ErrInvalidID), errors.Is(err, finance.ErrNonPositiveID):
		return "Transaction ID must be a positive integer"
	case errors.Is(err, finance.ErrNotFound):
		return fmt.Sprintf("Transaction ID %s not found", input)
	default:
		return err.Error()
	}
}
