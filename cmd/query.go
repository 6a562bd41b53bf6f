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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ademuri/song-dashboard/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Runs SQL against the song table",
	Long: `Copies the song table into an in-memory SQLite database as the table Song, then runs
the query. Numeric columns are REAL, everything else is TEXT, and row_index holds each
row's position in the file. For example:

  song-dashboard query "SELECT playlist_genre, AVG(energy) FROM Song GROUP BY playlist_genre"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		err := printQuery(os.Stdout, viper.GetString("data"), strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func printQuery(out io.Writer, dataPath string, query string) error {
	d, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	s, err := store.Open(d)
	if err != nil {
		return fmt.Errorf("printQuery: %w", err)
	}
	defer s.Close()

	logger.Debug("Running query", zap.String("query", query))
	result, err := s.Query(query)
	if err != nil {
		return fmt.Errorf("printQuery: %w", err)
	}
	if len(result.Header) == 0 {
		return nil
	}

	table := newTable(result.Header...)
	for _, row := range result.Rows {
		table.append(row...)
	}
	table.summary = fmt.Sprintf("%d rows", len(result.Rows))
	fmt.Fprint(out, table)
	return nil
}
