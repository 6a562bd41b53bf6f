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

	"github.com/ademuri/song-dashboard/internal/store"
)

var countNumber int
var countCmd = &cobra.Command{
	Use:   "count [field]",
	Short: "Counts songs per value of a column",
	Long: `Groups the in-memory SQLite copy of the song table by the column, most common values
first. Numeric values are shown in decimal form.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		err := printCount(os.Stdout, viper.GetString("data"), args[0], countNumber)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().IntVarP(&countNumber, "number", "n", 10, "number of results to return, 0 for all")
}

func printCount(out io.Writer, dataPath string, field string, numToReturn int) error {
	d, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	s, err := store.Open(d)
	if err != nil {
		return fmt.Errorf("printCount: %w", err)
	}
	defer s.Close()

	counts, err := s.CategoryCounts(field)
	if err != nil {
		return fmt.Errorf("printCount: %w", err)
	}

	table := newTable(field, "Songs")
	for i, c := range counts {
		if numToReturn > 0 && i >= numToReturn {
			break
		}
		table.append(c.Key, fmt.Sprint(c.Count))
	}
	table.summary = fmt.Sprintf("%d songs, %d distinct values", counts.Total(), len(counts))
	fmt.Fprint(out, table)
	return nil
}
