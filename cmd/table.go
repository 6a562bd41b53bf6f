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
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Table is a header row, data rows and an optional summary line printed under them.
type Table struct {
	results [][]string
	summary string
}

func newTable(header ...string) *Table {
	return &Table{results: [][]string{header}}
}

func (t *Table) append(row ...string) {
	t.results = append(t.results, row)
}

func (t Table) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(t.results[0])
	for _, row := range t.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if t.summary != "" {
		fmt.Fprintf(out, "%s\n", t.summary)
	}
	return out.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
