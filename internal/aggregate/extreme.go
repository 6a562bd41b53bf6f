package aggregate

import (
	"errors"
	"math"

	"github.com/ademuri/song-dashboard/internal/dataset"
)

// ErrEmptyDataset is returned when a summary needs at least one row with a value.
var ErrEmptyDataset = errors.New("dataset has no rows")

// Extremes names the rows holding the largest and smallest value of a field.
type Extremes struct {
	Field    string  `json:"field" yaml:"field"`
	MaxLabel string  `json:"max_label" yaml:"max_label"`
	MaxValue float64 `json:"max_value" yaml:"max_value"`
	MaxRow   int     `json:"max_row" yaml:"max_row"`
	MinLabel string  `json:"min_label" yaml:"min_label"`
	MinValue float64 `json:"min_value" yaml:"min_value"`
	MinRow   int     `json:"min_row" yaml:"min_row"`
}

// Extreme finds the rows with the maximum and minimum value of the numeric field and
// returns their track names. The first row wins ties; empty cells are skipped.
func Extreme(d *dataset.Dataset, field string) (Extremes, error) {
	return ExtremeLabeled(d, field, dataset.TrackName)
}

// ExtremeLabeled is Extreme with the label taken from labelField instead of track_name.
func ExtremeLabeled(d *dataset.Dataset, field, labelField string) (Extremes, error) {
	col, err := d.NumericColumn(field)
	if err != nil {
		return Extremes{}, err
	}
	labels, err := d.Column(labelField)
	if err != nil {
		return Extremes{}, err
	}

	maxRow, minRow := -1, -1
	for i, v := range col.Numbers {
		if math.IsNaN(v) {
			continue
		}
		if maxRow < 0 || v > col.Numbers[maxRow] {
			maxRow = i
		}
		if minRow < 0 || v < col.Numbers[minRow] {
			minRow = i
		}
	}
	if maxRow < 0 {
		return Extremes{}, ErrEmptyDataset
	}

	return Extremes{
		Field:    field,
		MaxLabel: labels.Raw[maxRow],
		MaxValue: col.Numbers[maxRow],
		MaxRow:   maxRow,
		MinLabel: labels.Raw[minRow],
		MinValue: col.Numbers[minRow],
		MinRow:   minRow,
	}, nil
}
