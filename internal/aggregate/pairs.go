package aggregate

import (
	"github.com/ademuri/song-dashboard/internal/dataset"
)

// SeriesPair holds two numeric fields projected row by row, plus an optional parallel
// column of group labels used for colouring. All slices have one entry per row.
type SeriesPair struct {
	XField  string    `json:"x_field" yaml:"x_field"`
	YField  string    `json:"y_field" yaml:"y_field"`
	GroupBy string    `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	X       []float64 `json:"x" yaml:"x"`
	Y       []float64 `json:"y" yaml:"y"`
	Group   []string  `json:"group,omitempty" yaml:"group,omitempty"`
}

// Len returns the number of points.
func (p SeriesPair) Len() int {
	return len(p.X)
}

// Pairs projects the numeric fields x and y in dataset order. When group is non-empty the
// raw values of that field are projected alongside as opaque labels.
func Pairs(d *dataset.Dataset, x, y, group string) (SeriesPair, error) {
	xs, err := d.NumericColumn(x)
	if err != nil {
		return SeriesPair{}, err
	}
	ys, err := d.NumericColumn(y)
	if err != nil {
		return SeriesPair{}, err
	}

	pair := SeriesPair{
		XField: x,
		YField: y,
		X:      append(make([]float64, 0, d.Len()), xs.Numbers...),
		Y:      append(make([]float64, 0, d.Len()), ys.Numbers...),
	}

	if group != "" {
		gs, err := d.Column(group)
		if err != nil {
			return SeriesPair{}, err
		}
		pair.GroupBy = group
		pair.Group = append(make([]string, 0, d.Len()), gs.Raw...)
	}
	return pair, nil
}
