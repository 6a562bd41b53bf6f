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
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Prints the most and least popular songs, and the longest and shortest",
	Args:    cobra.NoArgs,
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		err := printSummary(os.Stdout, viper.GetString("data"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printSummary(out io.Writer, dataPath string) error {
	db, err := loadDashboard(dataPath)
	if err != nil {
		return err
	}

	s := db.Summary()
	d := db.Dataset()
	table := newTable("", "Song", "Value", "Playlist", "Genre", "Row")
	row := func(name string, label string, value float64, i int) {
		song := d.Song(i)
		table.append(name, label, formatFloat(value), song.PlaylistName, song.PlaylistGenre, fmt.Sprint(i))
	}
	row("Most popular", s.Popularity.MaxLabel, s.Popularity.MaxValue, s.Popularity.MaxRow)
	row("Least popular", s.Popularity.MinLabel, s.Popularity.MinValue, s.Popularity.MinRow)
	row("Longest (ms)", s.Duration.MaxLabel, s.Duration.MaxValue, s.Duration.MaxRow)
	row("Shortest (ms)", s.Duration.MinLabel, s.Duration.MinValue, s.Duration.MinRow)
	fmt.Fprint(out, table)
	return nil
}
