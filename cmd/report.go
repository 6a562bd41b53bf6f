package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/song-dashboard/internal/aggregate"
	"github.com/ademuri/song-dashboard/internal/dashboard"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Short:   "Generates a YAML report of the whole dashboard",
	Long:    `Renders every chart for the current selectors, the summaries, and statistics of each numeric column as one YAML document.`,
	Args:    cobra.NoArgs,
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		controls := dashboard.Controls{
			FilterField: viper.GetString("filter_field"),
			GenreChoice: viper.GetString("genre_choice"),
		}
		err := runReport(os.Stdout, viper.GetString("data"), controls)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

// Report is everything the dashboard shows, plus column statistics.
type Report struct {
	Source   string                  `yaml:"source"`
	Rows     int                     `yaml:"rows"`
	Controls dashboard.Controls      `yaml:"controls"`
	Summary  []string                `yaml:"summary"`
	Panels   []dashboard.Panel       `yaml:"panels"`
	Columns  []aggregate.Description `yaml:"columns"`
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(out io.Writer, dataPath string, controls dashboard.Controls) error {
	db, err := loadDashboard(dataPath)
	if err != nil {
		return err
	}

	controls = controls.WithDefaults()
	d := db.Dataset()
	report := Report{
		Source:   dataPath,
		Rows:     d.Len(),
		Controls: controls,
		Summary:  db.Summary().Lines(),
		Panels:   db.Render(controls),
	}
	for _, field := range d.NumericColumns() {
		desc, err := aggregate.Describe(d, field)
		if err != nil {
			return fmt.Errorf("analyzing data: %w", err)
		}
		report.Columns = append(report.Columns, desc)
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	err = encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return encoder.Close()
}
