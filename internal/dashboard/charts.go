package dashboard

import (
	"github.com/ademuri/song-dashboard/internal/aggregate"
	"github.com/ademuri/song-dashboard/internal/chart"
	"github.com/ademuri/song-dashboard/internal/dataset"
)

// barGraph counts songs per value of the filter field.
func barGraph(d *dataset.Dataset, c Controls) (chart.Spec, error) {
	counts, err := aggregate.Categories(d, c.FilterField)
	if err != nil {
		return chart.Spec{}, err
	}
	return chart.Bind(counts, chart.Meta{
		Kind:          chart.Bar,
		TitleTemplate: "Total Number of Songs in Each {field}",
		XLabel:        c.FilterField,
		YLabel:        "Count",
		Field:         c.FilterField,
	}), nil
}

// lineGraph always plots danceability against energy. It is bound to the filter
// dropdown but does not read it.
func lineGraph(d *dataset.Dataset, _ Controls) (chart.Spec, error) {
	pair, err := aggregate.Pairs(d, dataset.Danceability, dataset.Energy, "")
	if err != nil {
		return chart.Spec{}, err
	}
	return chart.Bind(pair, chart.Meta{
		Kind:          chart.Scatter,
		TitleTemplate: "Danceability vs Energy",
		XLabel:        dataset.Danceability,
		YLabel:        dataset.Energy,
	}), nil
}

// scatterPlot plots danceability against energy, coloured by the filter field.
func scatterPlot(d *dataset.Dataset, c Controls) (chart.Spec, error) {
	pair, err := aggregate.Pairs(d, dataset.Danceability, dataset.Energy, c.FilterField)
	if err != nil {
		return chart.Spec{}, err
	}
	return chart.Bind(pair, chart.Meta{
		Kind:          chart.Scatter,
		TitleTemplate: "Scatter Plot",
		XLabel:        dataset.Danceability,
		YLabel:        dataset.Energy,
		Field:         c.FilterField,
	}), nil
}

// pieChart counts songs per genre or subgenre.
func pieChart(d *dataset.Dataset, c Controls) (chart.Spec, error) {
	if !isGenreOption(c.GenreChoice) {
		if _, err := d.Column(c.GenreChoice); err != nil {
			return chart.Spec{}, err
		}
		return chart.Spec{}, &InvalidOptionError{Control: GenreDropdown, Value: c.GenreChoice}
	}
	counts, err := aggregate.Categories(d, c.GenreChoice)
	if err != nil {
		return chart.Spec{}, err
	}
	return chart.Bind(counts, chart.Meta{
		Kind:          chart.Pie,
		TitleTemplate: "Total Number of Songs by Each {field}",
		Field:         c.GenreChoice,
	}), nil
}

func isGenreOption(value string) bool {
	for _, o := range genreOptions {
		if o.Value == value {
			return true
		}
	}
	return false
}
