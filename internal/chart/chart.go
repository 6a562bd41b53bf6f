// Package chart describes dashboard charts as plain values that any renderer can draw.
package chart

import (
	"strings"
	"unicode"

	"github.com/ademuri/song-dashboard/internal/aggregate"
)

type Kind string

const (
	Bar     Kind = "bar"
	Scatter Kind = "scatter"
	Pie     Kind = "pie"
)

// Spec is a serialisable chart description: its kind, labels and exactly one payload.
// Categories is always encoded, so a bar or pie chart with no rows shows an empty list.
type Spec struct {
	Kind       Kind                     `json:"kind" yaml:"kind"`
	Title      string                   `json:"title" yaml:"title"`
	XLabel     string                   `json:"x_label,omitempty" yaml:"x_label,omitempty"`
	YLabel     string                   `json:"y_label,omitempty" yaml:"y_label,omitempty"`
	GroupBy    string                   `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Categories aggregate.CategoryCounts `json:"categories" yaml:"categories"`
	Series     *aggregate.SeriesPair    `json:"series,omitempty" yaml:"series,omitempty"`
}

// Meta carries what Bind needs besides the data. TitleTemplate and the label templates
// may contain {field}, replaced by the capitalised Field.
type Meta struct {
	Kind          Kind
	TitleTemplate string
	XLabel        string
	YLabel        string
	Field         string
}

// Bind wraps category counts or a series pair into a Spec. Any other result yields a
// Spec with no payload.
func Bind(result any, meta Meta) Spec {
	spec := Spec{
		Kind:   meta.Kind,
		Title:  Format(meta.TitleTemplate, meta.Field),
		XLabel: Format(meta.XLabel, meta.Field),
		YLabel: Format(meta.YLabel, meta.Field),
	}

	switch r := result.(type) {
	case aggregate.CategoryCounts:
		spec.Categories = r
	case aggregate.SeriesPair:
		spec.GroupBy = r.GroupBy
		spec.Series = &r
	case *aggregate.SeriesPair:
		spec.GroupBy = r.GroupBy
		spec.Series = r
	}
	return spec
}

// Format substitutes the capitalised field into each {field} of template.
func Format(template, field string) string {
	return strings.ReplaceAll(template, "{field}", Capitalize(field))
}

// Capitalize upper-cases the first letter and lower-cases the rest, so
// "playlist_subgenre" becomes "Playlist_subgenre".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Len returns the number of slices, bars or points in the payload.
func (s Spec) Len() int {
	if s.Series != nil {
		return s.Series.Len()
	}
	return len(s.Categories)
}
