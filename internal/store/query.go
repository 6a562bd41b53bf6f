package store

import (
	"fmt"
	"strconv"

	"github.com/ademuri/song-dashboard/internal/aggregate"
	"github.com/ademuri/song-dashboard/internal/dataset"
)

// Result is a query result with every cell rendered as text. NULL is rendered as "".
type Result struct {
	Header []string
	Rows   [][]string
}

// Query runs a statement against the Song table and collects all of its rows.
func (s *Store) Query(query string, args ...interface{}) (Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("reading columns: %w", err)
	}

	result := Result{Header: header}
	values := make([]interface{}, len(header))
	ptrs := make([]interface{}, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, fmt.Errorf("scanning row: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// CategoryCounts counts rows per value of field with the same ordering as
// aggregate.Categories: descending count, then first appearance. Numeric fields group on
// their value, so their keys are the shortest decimal form rather than the cell text.
func (s *Store) CategoryCounts(field string) (aggregate.CategoryCounts, error) {
	exists, err := s.columnExists(field)
	if err != nil {
		return nil, fmt.Errorf("checking column %s: %w", field, err)
	}
	if !exists || field == "row_index" {
		return nil, &dataset.UnknownFieldError{Field: field}
	}

	query := fmt.Sprintf(`
	SELECT %[1]s, COUNT(*), MIN(row_index)
	FROM Song
	GROUP BY %[1]s
	ORDER BY COUNT(*) DESC, MIN(row_index) ASC
	`, quoteIdent(field))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying counts of %s: %w", field, err)
	}
	defer rows.Close()

	counts := aggregate.CategoryCounts{}
	for rows.Next() {
		var key interface{}
		var count int
		var first int
		if err := rows.Scan(&key, &count, &first); err != nil {
			return nil, err
		}
		counts = append(counts, aggregate.CategoryCount{Key: formatValue(key), Count: count})
	}
	return counts, rows.Err()
}
