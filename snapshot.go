package finance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SnapshotLayout is the timestamp format used in snapshot file names.
const SnapshotLayout = "20060102_150405"

// Snapshot copies the raw file src into dir, naming the copy after src and
// the time now, e.g. "snapshots/transactions_20250521_143000.csv".
// dir is created if needed. It returns the path of the copy.
func Snapshot(src, dir string, now time.Time) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("cannot snapshot %q: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create snapshot folder %q: %w", dir, err)
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	name := fmt.Sprintf("%s_%s%s", strings.TrimSuffix(base, ext), now.Format(SnapshotLayout), ext)
	dst := filepath.Join(dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("cannot create snapshot %q: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("cannot write snapshot %q: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("cannot write snapshot %q: %w", dst, err)
	}
	return dst, nil
}
