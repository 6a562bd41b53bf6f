package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ademuri/song-dashboard/internal/aggregate"
	"github.com/ademuri/song-dashboard/internal/dataset"
)

func createTestStore(t *testing.T) (*Store, *dataset.Dataset) {
	t.Helper()
	d, err := dataset.Load("../dataset/testdata/songs.csv")
	if err != nil {
		t.Fatalf("dataset.Load() error: %v", err)
	}

	s, err := Open(d)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s, d
}

func TestImport(t *testing.T) {
	s, d := createTestStore(t)

	result, err := s.Query("SELECT COUNT(*) FROM Song")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if result.Rows[0][0] != "10" {
		t.Errorf("COUNT(*) = %s, want 10", result.Rows[0][0])
	}

	result, err = s.Query("SELECT * FROM Song LIMIT 1")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(result.Header) != len(d.Columns())+1 {
		t.Errorf("Song has %d columns, want %d", len(result.Header), len(d.Columns())+1)
	}
}

func TestImportTwice(t *testing.T) {
	s, d := createTestStore(t)

	if err := s.Import(d); err != nil {
		t.Fatalf("Import() again error: %v", err)
	}
	result, err := s.Query("SELECT COUNT(*) FROM Song")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if result.Rows[0][0] != "10" {
		t.Errorf("COUNT(*) after re-import = %s, want 10", result.Rows[0][0])
	}
}

func TestQueryNumeric(t *testing.T) {
	s, _ := createTestStore(t)

	result, err := s.Query(`
	SELECT playlist_genre, COUNT(*), MAX(track_popularity)
	FROM Song
	GROUP BY playlist_genre
	ORDER BY playlist_genre
	`)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	want := Result{
		Header: []string{"playlist_genre", "COUNT(*)", "MAX(track_popularity)"},
		Rows: [][]string{
			{"pop", "7", "88"},
			{"rock", "3", "88"},
		},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryArgs(t *testing.T) {
	s, _ := createTestStore(t)

	result, err := s.Query("SELECT track_name FROM Song WHERE duration_ms > ? ORDER BY row_index", 300000)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	want := [][]string{{"Bohemian Rhapsody - Remastered 2011"}, {"Smells Like Teen Spirit"}}
	if diff := cmp.Diff(want, result.Rows); diff != "" {
		t.Errorf("Query() rows mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryError(t *testing.T) {
	s, _ := createTestStore(t)

	if _, err := s.Query("SELECT nope FROM Song"); err == nil {
		t.Errorf("Query() with unknown column should have errored")
	}
}

func TestCategoryCountsMatchesAggregate(t *testing.T) {
	s, d := createTestStore(t)

	for _, field := range []string{
		dataset.PlaylistName,
		dataset.PlaylistGenre,
		dataset.PlaylistSubgenre,
		dataset.TrackName,
		"track_artist",
	} {
		t.Run(field, func(t *testing.T) {
			want, err := aggregate.Categories(d, field)
			if err != nil {
				t.Fatalf("aggregate.Categories() error: %v", err)
			}
			got, err := s.CategoryCounts(field)
			if err != nil {
				t.Fatalf("CategoryCounts() error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("CategoryCounts() mismatch (-aggregate +store):\n%s", diff)
			}
		})
	}
}

func TestCategoryCountsUnknownField(t *testing.T) {
	s, _ := createTestStore(t)

	for _, field := range []string{"nope", "row_index"} {
		_, err := s.CategoryCounts(field)
		var unknown *dataset.UnknownFieldError
		if !errors.As(err, &unknown) {
			t.Errorf("CategoryCounts(%q) error = %v, want *dataset.UnknownFieldError", field, err)
		}
	}
}

func TestImportEmptyCells(t *testing.T) {
	header := append(append([]string{}, dataset.RequiredFields...), "rating")
	d, err := dataset.New(header, [][]string{
		{"A", "1", "100", "P", "pop", "dance pop", "0.1", "0.2", ""},
		{"B", "2", "200", "P", "pop", "dance pop", "0.3", "0.4", "3"},
	})
	if err != nil {
		t.Fatalf("dataset.New() error: %v", err)
	}
	s, err := Open(d)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	result, err := s.Query("SELECT COUNT(rating), SUM(rating) FROM Song")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "3"}, result.Rows[0]); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}
}
