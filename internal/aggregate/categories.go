// Package aggregate reduces a song dataset to the counts, series and summaries the
// dashboard charts are drawn from. Every function is pure: the same dataset and
// arguments always produce the same result.
package aggregate

import (
	"sort"

	"github.com/ademuri/song-dashboard/internal/dataset"
)

// CategoryCount is the number of rows sharing one value of a field.
type CategoryCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryCounts is ordered by descending count; equal counts keep the order in which
// their keys first appear in the dataset.
type CategoryCounts []CategoryCount

// Total returns the sum of all counts.
func (c CategoryCounts) Total() int {
	total := 0
	for _, cc := range c {
		total += cc.Count
	}
	return total
}

// Categories counts the rows for each distinct value of field.
func Categories(d *dataset.Dataset, field string) (CategoryCounts, error) {
	col, err := d.Column(field)
	if err != nil {
		return nil, err
	}

	counts := CategoryCounts{}
	slot := make(map[string]int)
	for _, key := range col.Raw {
		i, ok := slot[key]
		if !ok {
			i = len(counts)
			slot[key] = i
			counts = append(counts, CategoryCount{Key: key})
		}
		counts[i].Count++
	}

	// counts is in first-seen order, so a stable sort keeps that order for ties.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts, nil
}
