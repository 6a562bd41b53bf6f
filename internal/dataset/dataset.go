package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Required fields. Every dataset has these columns.
const (
	TrackName        = "track_name"
	TrackPopularity  = "track_popularity"
	DurationMs       = "duration_ms"
	PlaylistName     = "playlist_name"
	PlaylistGenre    = "playlist_genre"
	PlaylistSubgenre = "playlist_subgenre"
	Danceability     = "danceability"
	Energy           = "energy"
)

// RequiredFields lists the header columns a song table must carry, in schema order.
var RequiredFields = []string{
	TrackName,
	TrackPopularity,
	DurationMs,
	PlaylistName,
	PlaylistGenre,
	PlaylistSubgenre,
	Danceability,
	Energy,
}

var requiredNumeric = map[string]bool{
	TrackPopularity: true,
	DurationMs:      true,
	Danceability:    true,
	Energy:          true,
}

type Kind int

const (
	String Kind = iota
	Number
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	default:
		return "string"
	}
}

// Column holds one field for every row. Raw always has the cell text; Numbers is only
// populated for Number columns, with NaN for empty cells.
type Column struct {
	Name    string
	Kind    Kind
	Raw     []string
	Numbers []float64
}

// Song is the typed view of the required fields of one row.
type Song struct {
	TrackName        string
	TrackPopularity  float64
	DurationMs       float64
	PlaylistName     string
	PlaylistGenre    string
	PlaylistSubgenre string
	Danceability     float64
	Energy           float64
}

// Dataset is an immutable, column-oriented table of songs. It is safe for concurrent
// readers; nothing mutates it after New returns.
type Dataset struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New builds a Dataset from a header and its data records. An empty set of records is
// allowed. Required numeric fields must parse in every row.
func New(header []string, records [][]string) (*Dataset, error) {
	header = normalizeHeader(header)

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	var missing []string
	for _, field := range RequiredFields {
		if _, ok := index[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	columns := make([]*Column, len(header))
	for i, name := range header {
		columns[i] = &Column{Name: name, Raw: make([]string, len(records))}
	}
	for r, record := range records {
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", r+1, len(header), len(record))
		}
		for c, cell := range record {
			columns[c].Raw[r] = cell
		}
	}

	for _, col := range columns {
		numbers, ok, err := parseNumbers(col.Raw)
		if requiredNumeric[col.Name] {
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			ok = true
		}
		if ok {
			col.Kind = Number
			col.Numbers = numbers
		}
	}

	return &Dataset{columns: columns, index: index, rows: len(records)}, nil
}

// parseNumbers reports whether every non-empty cell is a finite number and at least one
// cell is non-empty. The error describes the first cell that failed, or an empty cell.
func parseNumbers(raw []string) ([]float64, bool, error) {
	numbers := make([]float64, len(raw))
	var firstErr error
	seen := false
	numeric := true
	for i, cell := range raw {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			numbers[i] = math.NaN()
			if firstErr == nil {
				firstErr = fmt.Errorf("row %d: empty value", i+1)
			}
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = fmt.Errorf("%q is not a finite number", cell)
		}
		if err != nil {
			numeric = false
			if firstErr == nil {
				firstErr = fmt.Errorf("row %d: %w", i+1, err)
			}
			continue
		}
		numbers[i] = v
		seen = true
	}
	return numbers, numeric && seen, firstErr
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = name
	}
	return out
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.rows
}

// Columns returns the column names in header order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name. The returned column must not be modified.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &UnknownFieldError{Field: name}
	}
	return d.columns[i], nil
}

// NumericColumn is Column restricted to Number columns.
func (d *Dataset) NumericColumn(name string) (*Column, error) {
	col, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind != Number {
		return nil, &TypeMismatchError{Field: name, Kind: col.Kind}
	}
	return col, nil
}

// NumericColumns returns the names of all Number columns in header order.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, col := range d.columns {
		if col.Kind == Number {
			names = append(names, col.Name)
		}
	}
	return names
}

// Song returns the required fields of row i.
func (d *Dataset) Song(i int) Song {
	num := func(name string) float64 {
		return d.columns[d.index[name]].Numbers[i]
	}
	str := func(name string) string {
		return d.columns[d.index[name]].Raw[i]
	}
	return Song{
		TrackName:        str(TrackName),
		TrackPopularity:  num(TrackPopularity),
		DurationMs:       num(DurationMs),
		PlaylistName:     str(PlaylistName),
		PlaylistGenre:    str(PlaylistGenre),
		PlaylistSubgenre: str(PlaylistSubgenre),
		Danceability:     num(Danceability),
		Energy:           num(Energy),
	}
}
