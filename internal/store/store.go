package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ademuri/song-dashboard/internal/dataset"
)

// MemoryDSN keeps the database in process memory; nothing is written to disk.
const MemoryDSN = ":memory:"

// Store mirrors a dataset into an SQLite table named Song for ad-hoc queries. The table
// has one column per dataset field plus row_index, the row's position in the dataset.
type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each :memory: connection is its own database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Store{db: db}, nil
}

// Open creates an in-memory store holding d.
func Open(d *dataset.Dataset) (*Store, error) {
	s, err := New(MemoryDSN)
	if err != nil {
		return nil, err
	}
	if err := s.Import(d); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Import replaces the Song table with the contents of d.
func (s *Store) Import(d *dataset.Dataset) error {
	columns := d.Columns()
	kinds := make([]dataset.Kind, len(columns))
	raw := make([][]string, len(columns))
	numbers := make([][]float64, len(columns))
	for i, name := range columns {
		if name == "row_index" {
			return fmt.Errorf("column name %q is reserved", name)
		}
		col, err := d.Column(name)
		if err != nil {
			return err
		}
		kinds[i] = col.Kind
		raw[i] = col.Raw
		numbers[i] = col.Numbers
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS Song"); err != nil {
		return fmt.Errorf("dropping Song: %w", err)
	}
	if _, err := tx.Exec(createTable(columns, kinds)); err != nil {
		return fmt.Errorf("creating Song: %w", err)
	}

	insert, err := tx.Prepare(insertRow(columns))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	args := make([]interface{}, len(columns)+1)
	for r := 0; r < d.Len(); r++ {
		args[0] = r
		for c := range columns {
			args[c+1] = cellValue(kinds[c], raw[c][r], numbers[c], r)
		}
		if _, err := insert.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

func cellValue(kind dataset.Kind, raw string, numbers []float64, row int) interface{} {
	if kind != dataset.Number {
		return raw
	}
	v := numbers[row]
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func createTable(columns []string, kinds []dataset.Kind) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE Song (\n  row_index INTEGER PRIMARY KEY")
	for i, name := range columns {
		typ := "TEXT"
		if kinds[i] == dataset.Number {
			typ = "REAL"
		}
		fmt.Fprintf(&b, ",\n  %s %s", quoteIdent(name), typ)
	}
	b.WriteString("\n)")
	return b.String()
}

func insertRow(columns []string) string {
	names := make([]string, 0, len(columns)+1)
	names = append(names, "row_index")
	for _, name := range columns {
		names = append(names, quoteIdent(name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO Song (%s) VALUES (%s)", strings.Join(names, ", "), placeholders)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnExists reports whether the Song table has the named column.
func (s *Store) columnExists(column string) (bool, error) {
	rows, err := s.db.Query("PRAGMA table_info(Song)")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dfltValue interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
