package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/benvon/quest-planner/internal/models"
)

// maxImportSize bounds how much of an import file is read
const maxImportSize = 32 << 20

// ExportFileName returns the download name for an export made on now's date
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("german-planner-%s.json", now.Format("2006-01-02"))
}

// Export writes an encoded snapshot to w
func Export(w io.Writer, snap models.Snapshot, now time.Time) error {
	data, err := Encode(snap, now)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Import reads a snapshot from r with the same leniency as Decode
func Import(r io.Reader) (models.Snapshot, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read import: %w", err)
	}
	snap, _, err := Decode(data)
	return snap, err
}

// ExportFile writes an export into dir and returns its path
func ExportFile(dir string, snap models.Snapshot, now time.Time) (string, error) {
	path := filepath.Join(dir, ExportFileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Export(f, snap, now); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

// ImportFile reads a snapshot from a file on disk
func ImportFile(path string) (models.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Import(f)
}
