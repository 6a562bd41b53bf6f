package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errNoRows = errors.New("no data rows")

// Load reads a song table from path. Files ending in .xlsx are read from their first
// sheet; anything else is parsed as comma-separated text with a header row.
//
// The returned error is a *SchemaError when required fields are missing and a *LoadError
// otherwise. A Dataset is only returned when the whole file loaded.
func Load(path string) (*Dataset, error) {
	var (
		header  []string
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		header, records, err = readExcel(path)
	default:
		header, records, err = readCSV(path)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Path: path, Err: errNoRows}
	}

	d, err := New(header, records)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return d, nil
}

// ReadCSV parses comma-separated records from r. The first record is the header.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading records: %w", err)
	}
	return header, records, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

func readExcel(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty sheet %s", sheets[0])
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if len(row) > len(header) {
			return nil, nil, fmt.Errorf("row %d: expected %d fields, got %d", i+1, len(header), len(row))
		}
		// GetRows drops trailing empty cells.
		record := make([]string, len(header))
		copy(record, row)
		records = append(records, record)
	}
	return header, records, nil
}
