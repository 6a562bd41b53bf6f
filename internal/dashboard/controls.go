package dashboard

import (
	"fmt"

	"github.com/ademuri/song-dashboard/internal/dataset"
)

// ControlID names a UI selector.
type ControlID string

const (
	FilterDropdown ControlID = "filter-dropdown"
	GenreDropdown  ControlID = "genre-subgenre-dropdown"
)

// ChartID names a chart panel.
type ChartID string

const (
	BarGraph  ChartID = "playlist-bar-graph"
	LineGraph ChartID = "danceability-energy-line-graph"
	Scatter   ChartID = "scatter-plot"
	PieChart  ChartID = "genre-subgenre-pie-chart"
)

// ChartIDs lists every panel in page order.
var ChartIDs = []ChartID{BarGraph, LineGraph, Scatter, PieChart}

const (
	DefaultFilterField = dataset.PlaylistName
	DefaultGenreChoice = dataset.PlaylistGenre
)

// Controls is the current value of each selector. It is owned by the UI shell; the
// dashboard only reads it.
type Controls struct {
	FilterField string `json:"filter_field" yaml:"filter_field"`
	GenreChoice string `json:"genre_choice" yaml:"genre_choice"`
}

// DefaultControls returns the selector values a fresh page starts with.
func DefaultControls() Controls {
	return Controls{FilterField: DefaultFilterField, GenreChoice: DefaultGenreChoice}
}

// WithDefaults fills unset selectors with their defaults.
func (c Controls) WithDefaults() Controls {
	if c.FilterField == "" {
		c.FilterField = DefaultFilterField
	}
	if c.GenreChoice == "" {
		c.GenreChoice = DefaultGenreChoice
	}
	return c
}

// Set returns c with the selector id changed to value.
func (c Controls) Set(id ControlID, value string) (Controls, error) {
	switch id {
	case FilterDropdown:
		c.FilterField = value
	case GenreDropdown:
		c.GenreChoice = value
	default:
		return c, &UnknownControlError{Control: id}
	}
	return c, nil
}

// Option is one selectable value of a control.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ControlOptions describes a selector for the UI shell.
type ControlOptions struct {
	ID      ControlID `json:"id" yaml:"id"`
	Default string    `json:"default" yaml:"default"`
	Options []Option  `json:"options" yaml:"options"`
}

var genreOptions = []Option{
	{Label: "Playlist Genre", Value: dataset.PlaylistGenre},
	{Label: "Playlist Subgenre", Value: dataset.PlaylistSubgenre},
}

type UnknownControlError struct {
	Control ControlID
}

func (e *UnknownControlError) Error() string {
	return fmt.Sprintf("unknown control %q", e.Control)
}

type UnknownChartError struct {
	Chart ChartID
}

func (e *UnknownChartError) Error() string {
	return fmt.Sprintf("unknown chart %q", e.Chart)
}

// InvalidOptionError reports a value the control does not offer.
type InvalidOptionError struct {
	Control ControlID
	Value   string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("%q is not an option of %s", e.Value, e.Control)
}
