/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/song-dashboard/internal/chart"
	"github.com/ademuri/song-dashboard/internal/dashboard"
)

var chartNames = map[string]dashboard.ChartID{
	"bar":     dashboard.BarGraph,
	"line":    dashboard.LineGraph,
	"scatter": dashboard.Scatter,
	"pie":     dashboard.PieChart,
}

var chartFormat string
var chartLimit int
var chartCmd = &cobra.Command{
	Use:   "chart [bar|line|scatter|pie]",
	Short: "Prints one dashboard chart",
	Long: `Computes a chart the same way the web page does. The bar and scatter charts follow
--filter-field, the pie chart follows --genre-choice, and the line chart always plots
danceability against energy.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		controls := dashboard.Controls{
			FilterField: viper.GetString("filter_field"),
			GenreChoice: viper.GetString("genre_choice"),
		}
		err := printChart(os.Stdout, viper.GetString("data"), args[0], controls, chartFormat, chartLimit)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartFormat, "format", "f", "table", "output format: table, json or yaml")
	chartCmd.Flags().IntVarP(&chartLimit, "limit", "n", 10, "number of points to print for scatter charts in table format, 0 for all")
}

func chartID(name string) (dashboard.ChartID, error) {
	if id, ok := chartNames[strings.ToLower(name)]; ok {
		return id, nil
	}
	for _, id := range dashboard.ChartIDs {
		if string(id) == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown chart %q: want one of bar, line, scatter or pie", name)
}

func printChart(out io.Writer, dataPath string, name string, controls dashboard.Controls, format string, limit int) error {
	id, err := chartID(name)
	if err != nil {
		return err
	}
	if format != "table" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q: want table, json or yaml", format)
	}

	db, err := loadDashboard(dataPath)
	if err != nil {
		return err
	}
	panel, err := db.Chart(id, controls)
	if err != nil {
		return err
	}
	if !panel.OK() {
		return fmt.Errorf("%s", panel.Error)
	}

	switch format {
	case "json":
		encoded, err := json.MarshalIndent(panel.Spec, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding chart: %w", err)
		}
		fmt.Fprintln(out, string(encoded))
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(panel.Spec); err != nil {
			return fmt.Errorf("encoding chart: %w", err)
		}
		return encoder.Close()
	default:
		fmt.Fprintln(out, panel.Spec.Title)
		fmt.Fprint(out, specTable(*panel.Spec, limit))
	}
	return nil
}

func specTable(spec chart.Spec, limit int) *Table {
	if spec.Series == nil {
		field := spec.XLabel
		if field == "" {
			field = "Value"
		}
		table := newTable(field, "Count")
		for _, c := range spec.Categories {
			table.append(c.Key, fmt.Sprint(c.Count))
		}
		table.summary = fmt.Sprintf("%d songs in %d groups", spec.Categories.Total(), len(spec.Categories))
		return table
	}

	s := spec.Series
	header := []string{s.XField, s.YField}
	if s.GroupBy != "" {
		header = append(header, s.GroupBy)
	}
	table := newTable(header...)
	n := s.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		row := []string{formatFloat(s.X[i]), formatFloat(s.Y[i])}
		if s.GroupBy != "" {
			row = append(row, s.Group[i])
		}
		table.append(row...)
	}
	table.summary = fmt.Sprintf("Showing %d of %d points", n, s.Len())
	return table
}
