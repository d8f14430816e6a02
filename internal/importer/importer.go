// Package importer reads dictionary entries from spreadsheets and writes them back out.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/store"
)

// Format is a supported spreadsheet format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// Config selects the columns entries are read from
type Config struct {
	GermanColumn  string
	EnglishColumn string
	ExampleColumn string
	// StartRow is the 1-based first data row
	StartRow int
}

// DefaultConfig reads German from A, English from B and the example from C,
// skipping one header row
func DefaultConfig() Config {
	return Config{
		GermanColumn:  "A",
		EnglishColumn: "B",
		ExampleColumn: "C",
		StartRow:      2,
	}
}

// Result holds the parsed entries and a per-row error report
type Result struct {
	Entries   []store.NewEntry `json:"entries"`
	Processed int              `json:"processed"`
	Skipped   int              `json:"skipped"`
	Errors    []string         `json:"errors"`
}

// FormatFor picks the format from a file name extension
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ImportWords reads the file at path using the default columns
func ImportWords(path string) (*Result, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format, DefaultConfig())
}

// Read parses entries from r
func Read(r io.Reader, format Format, cfg Config) (*Result, error) {
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	german := columnToIndex(cfg.GermanColumn)
	english := columnToIndex(cfg.EnglishColumn)
	example := columnToIndex(cfg.ExampleColumn)

	result := &Result{Entries: []store.NewEntry{}, Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow || blank(row) {
			continue
		}
		result.Processed++

		entry := store.NewEntry{
			German:  cell(row, german),
			English: cell(row, english),
			Example: cell(row, example),
		}
		switch {
		case entry.German == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: german word cannot be empty", rowNum))
		case entry.English == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: translation cannot be empty", rowNum))
		default:
			result.Entries = append(result.Entries, entry)
		}
	}
	return result, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return rows, nil
}

// ExportWords writes entries to w as an xlsx workbook with a header row
func ExportWords(w io.Writer, entries []models.DictionaryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"German", "English", "Example"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, e := range entries {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &[]interface{}{e.German, e.English, e.Example}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columnToIndex converts a column letter such as "A" or "AB" to a 0-based index
func columnToIndex(column string) int {
	if column == "" {
		return -1
	}
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
