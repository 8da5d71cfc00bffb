package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates the logger of a session, appending to the file at path.
//
// Only errors are logged unless verbose is set. Every line is tagged with a
// short session id so that runs can be told apart in the file. The returned
// func closes the file.
func NewLogger(path string, verbose bool) (*log.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %q: %w", path, err)
	}
	return newLogger(f, verbose), func() { f.Close() }, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.ErrorLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
	})
	return logger.With("session", uuid.NewString()[:8])
}
