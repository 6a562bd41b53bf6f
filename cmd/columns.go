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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var columnsCmd = &cobra.Command{
	Use:     "columns",
	Short:   "Lists the columns of the song table",
	Long:    `Shows each column with the kind inferred for it: number when every non-empty cell parses as a number, otherwise string.`,
	Args:    cobra.NoArgs,
	PreRunE: requireData,
	Run: func(cmd *cobra.Command, args []string) {
		err := printColumns(os.Stdout, viper.GetString("data"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func printColumns(out io.Writer, dataPath string) error {
	d, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	table := newTable("Column", "Kind")
	for _, name := range d.Columns() {
		col, err := d.Column(name)
		if err != nil {
			return fmt.Errorf("printColumns: %w", err)
		}
		table.append(name, col.Kind.String())
	}
	table.summary = strconv.Itoa(d.Len()) + " rows"
	fmt.Fprint(out, table)
	return nil
}
