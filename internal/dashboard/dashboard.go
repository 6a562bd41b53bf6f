// Package dashboard wires selector changes to the aggregators and chart binder.
//
// A Dashboard owns one immutable dataset. Each chart is produced by a pure handler, and a
// dispatch table maps every control to the handlers it drives. A failing handler only
// puts its own panel into an error state.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/ademuri/song-dashboard/internal/aggregate"
	"github.com/ademuri/song-dashboard/internal/chart"
	"github.com/ademuri/song-dashboard/internal/dataset"
)

// Handler computes one chart from the dataset and the current controls.
type Handler func(d *dataset.Dataset, c Controls) (chart.Spec, error)

// Panel is what the UI shell shows for one chart: either a Spec or an error message.
type Panel struct {
	ID    ChartID     `json:"id" yaml:"id"`
	Spec  *chart.Spec `json:"spec,omitempty" yaml:"spec,omitempty"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the panel rendered.
func (p Panel) OK() bool {
	return p.Spec != nil
}

// Summary holds the extreme-value lookups shown under the charts.
type Summary struct {
	Popularity aggregate.Extremes `json:"popularity" yaml:"popularity"`
	Duration   aggregate.Extremes `json:"duration" yaml:"duration"`
}

// Lines renders the summary as the four sentences shown on the page.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Most Popular Song: %s", s.Popularity.MaxLabel),
		fmt.Sprintf("Least Popular Song: %s", s.Popularity.MinLabel),
		fmt.Sprintf("Songs with Highest Duration: %s", s.Duration.MaxLabel),
		fmt.Sprintf("Songs with Least Duration: %s", s.Duration.MinLabel),
	}
}

type Dashboard struct {
	data     *dataset.Dataset
	handlers map[ChartID]Handler
	bindings map[ControlID][]ChartID
	summary  Summary
}

// New builds a dashboard over d. The summaries are computed here, once; they do not
// change with the controls.
func New(d *dataset.Dataset) (*Dashboard, error) {
	if d == nil {
		return nil, errors.New("nil dataset")
	}

	popularity, err := aggregate.Extreme(d, dataset.TrackPopularity)
	if err != nil {
		return nil, fmt.Errorf("popularity summary: %w", err)
	}
	duration, err := aggregate.Extreme(d, dataset.DurationMs)
	if err != nil {
		return nil, fmt.Errorf("duration summary: %w", err)
	}

	return &Dashboard{
		data:     d,
		handlers: DefaultHandlers(),
		bindings: DefaultBindings(),
		summary:  Summary{Popularity: popularity, Duration: duration},
	}, nil
}

// DefaultHandlers maps each chart to the function that draws it.
func DefaultHandlers() map[ChartID]Handler {
	return map[ChartID]Handler{
		BarGraph:  barGraph,
		LineGraph: lineGraph,
		Scatter:   scatterPlot,
		PieChart:  pieChart,
	}
}

// DefaultBindings is the dispatch table: which charts redraw when a control changes.
func DefaultBindings() map[ControlID][]ChartID {
	return map[ControlID][]ChartID{
		FilterDropdown: {BarGraph, LineGraph, Scatter},
		GenreDropdown:  {PieChart},
	}
}

// Dataset returns the dashboard's dataset.
func (db *Dashboard) Dataset() *dataset.Dataset {
	return db.data
}

// Summary returns the summaries computed when the dashboard was built.
func (db *Dashboard) Summary() Summary {
	return db.summary
}

// Dispatch redraws the charts bound to control. Only an unknown control is an error;
// chart failures are reported in the panels.
func (db *Dashboard) Dispatch(control ControlID, c Controls) ([]Panel, error) {
	ids, ok := db.bindings[control]
	if !ok {
		return nil, &UnknownControlError{Control: control}
	}
	c = c.WithDefaults()

	panels := make([]Panel, 0, len(ids))
	for _, id := range ids {
		panels = append(panels, db.panel(id, c))
	}
	return panels, nil
}

// Render draws every chart.
func (db *Dashboard) Render(c Controls) []Panel {
	c = c.WithDefaults()
	panels := make([]Panel, 0, len(ChartIDs))
	for _, id := range ChartIDs {
		panels = append(panels, db.panel(id, c))
	}
	return panels
}

// Chart draws a single chart.
func (db *Dashboard) Chart(id ChartID, c Controls) (Panel, error) {
	if _, ok := db.handlers[id]; !ok {
		return Panel{}, &UnknownChartError{Chart: id}
	}
	return db.panel(id, c.WithDefaults()), nil
}

func (db *Dashboard) panel(id ChartID, c Controls) Panel {
	spec, err := db.handlers[id](db.data, c)
	if err != nil {
		return Panel{ID: id, Error: fmt.Sprintf("cannot render %s: %v", id, err)}
	}
	return Panel{ID: id, Spec: &spec}
}

// Options describes the selectors and their choices.
func (db *Dashboard) Options() []ControlOptions {
	columns := db.data.Columns()
	filter := make([]Option, 0, len(columns))
	for _, col := range columns {
		filter = append(filter, Option{Label: col, Value: col})
	}
	return []ControlOptions{
		{ID: FilterDropdown, Default: DefaultFilterField, Options: filter},
		{ID: GenreDropdown, Default: DefaultGenreChoice, Options: append([]Option(nil), genreOptions...)},
	}
}
