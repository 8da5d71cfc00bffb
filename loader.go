package finance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Backend is a storage a [Store] loads its transactions from and saves them to.
type Backend interface {
	// Load decodes every row of the storage. Invalid rows are reported in the
	// batch, not as an error.
	Load(ctx context.Context) (*Batch, error)
	// Save replaces the content of the storage with txs.
	Save(ctx context.Context, txs []Transaction) error
	// String names the storage for messages, usually its path.
	String() string
}

// Format is a file encoding.
type Format int

const (
	CSV Format = iota
	JSONL
)

func (f Format) String() string {
	switch f {
	case JSONL:
		return "jsonl"
	default:
		return "csv"
	}
}

// File is a [Backend] persisted in a single local file.
type File struct {
	Path   string
	Format Format
}

// NewFile returns a file backend, the format is chosen from the extension:
// ".jsonl" is JSONL, anything else is CSV.
func NewFile(path string) *File {
	format := CSV
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		format = JSONL
	}
	return &File{Path: path, Format: format}
}

func (f *File) String() string { return f.Path }

// Load implements [Backend].
func (f *File) Load(_ context.Context) (*Batch, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", f.Path, err)
	}
	defer file.Close()

	var batch *Batch
	switch f.Format {
	case JSONL:
		batch, err = DecodeJSONL(file)
	default:
		batch, err = DecodeCSV(file)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", f.Path, err)
	}
	return batch, nil
}

// Save implements [Backend]. The file is replaced atomically, a failed save
// leaves the previous content in place.
func (f *File) Save(_ context.Context, txs []Transaction) error {
	return writeFileAtomic(f.Path, func(w io.Writer) error {
		switch f.Format {
		case JSONL:
			return EncodeJSONL(w, txs)
		default:
			return EncodeCSV(w, txs)
		}
	})
}

// writeFileAtomic writes to a temporary file in the same folder and renames it to path.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create folder %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot replace %q: %w", path, err)
	}
	return nil
}
