package aggregate

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/ademuri/song-dashboard/internal/dataset"
)

// Description summarises the distribution of a numeric field.
type Description struct {
	Field  string  `json:"field" yaml:"field"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	P25    float64 `json:"p25" yaml:"p25"`
	Median float64 `json:"median" yaml:"median"`
	P75    float64 `json:"p75" yaml:"p75"`
	Max    float64 `json:"max" yaml:"max"`
}

// Describe computes count, mean, sample standard deviation and quartiles of a numeric
// field, skipping empty cells.
func Describe(d *dataset.Dataset, field string) (Description, error) {
	col, err := d.NumericColumn(field)
	if err != nil {
		return Description{}, err
	}

	data := stats.Float64Data(present(col.Numbers))
	if data.Len() == 0 {
		return Description{}, ErrEmptyDataset
	}

	desc := Description{Field: field, Count: data.Len()}
	if desc.Mean, err = data.Mean(); err != nil {
		return Description{}, fmt.Errorf("mean of %s: %w", field, err)
	}
	if data.Len() > 1 {
		if desc.StdDev, err = data.StandardDeviationSample(); err != nil {
			return Description{}, fmt.Errorf("standard deviation of %s: %w", field, err)
		}
	}
	if desc.Min, err = data.Min(); err != nil {
		return Description{}, fmt.Errorf("min of %s: %w", field, err)
	}
	if desc.Max, err = data.Max(); err != nil {
		return Description{}, fmt.Errorf("max of %s: %w", field, err)
	}
	if desc.Median, err = data.Median(); err != nil {
		return Description{}, fmt.Errorf("median of %s: %w", field, err)
	}
	desc.P25, desc.P75 = desc.Median, desc.Median
	if data.Len() > 1 {
		quartiles, err := stats.Quartile(data)
		if err != nil {
			return Description{}, fmt.Errorf("quartiles of %s: %w", field, err)
		}
		desc.P25, desc.P75 = quartiles.Q1, quartiles.Q3
	}
	return desc, nil
}

// Correlation returns the Pearson correlation of two numeric fields over the rows where
// both have a value.
func Correlation(d *dataset.Dataset, x, y string) (float64, error) {
	xs, err := d.NumericColumn(x)
	if err != nil {
		return 0, err
	}
	ys, err := d.NumericColumn(y)
	if err != nil {
		return 0, err
	}

	var xv, yv []float64
	for i := range xs.Numbers {
		if math.IsNaN(xs.Numbers[i]) || math.IsNaN(ys.Numbers[i]) {
			continue
		}
		xv = append(xv, xs.Numbers[i])
		yv = append(yv, ys.Numbers[i])
	}
	if len(xv) < 2 {
		return 0, ErrEmptyDataset
	}
	return stat.Correlation(xv, yv, nil), nil
}

func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
