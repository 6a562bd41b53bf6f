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

var correlateCmd = &cobra.Command{
	Use:     "correlate [x] [y]",
	Short:   "Prints the Pearson correlation of two numeric columns",
	Long:    `Rows where either column is empty are skipped. For example: correlate danceability energy`,
	Args:    cobra.ExactArgs(2),
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		err := printCorrelation(os.Stdout, viper.GetString("data"), args[0], args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
}

func printCorrelation(out io.Writer, dataPath string, x string, y string) error {
	d, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	r, err := aggregate.Correlation(d, x, y)
	if err != nil {
		return fmt.Errorf("correlating %s and %s: %w", x, y, err)
	}
	fmt.Fprintf(out, "%s vs %s: %s\n", x, y, formatFloat(r))
	return nil
}
