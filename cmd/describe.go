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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/song-dashboard/internal/aggregate"
)

var describeCmd = &cobra.Command{
	Use:     "describe [field...]",
	Short:   "Prints summary statistics of numeric columns",
	Long:    `Count, mean, standard deviation, min, quartiles and max of each named column, or of every numeric column when none is named. Empty cells are not counted.`,
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		err := printDescribe(os.Stdout, viper.GetString("data"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func printDescribe(out io.Writer, dataPath string, fields []string) error {
	d, err := loadDataset(dataPath)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fields = d.NumericColumns()
	}

	table := newTable("Field", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max")
	for _, field := range fields {
		desc, err := aggregate.Describe(d, field)
		if err != nil {
			return fmt.Errorf("describing %s: %w", field, err)
		}
		table.append(
			desc.Field,
			fmt.Sprint(desc.Count),
			formatFloat(desc.Mean),
			formatFloat(desc.StdDev),
			formatFloat(desc.Min),
			formatFloat(desc.P25),
			formatFloat(desc.Median),
			formatFloat(desc.P75),
			formatFloat(desc.Max))
	}
	fmt.Fprint(out, table)
	return nil
}
