package aggregate

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ademuri/song-dashboard/internal/dataset"
)

type testSong struct {
	name       string
	popularity float64
	duration   float64
	playlist   string
	genre      string
	subgenre   string
	dance      float64
	energy     float64
}

func newTestDataset(t *testing.T, songs []testSong) *dataset.Dataset {
	t.Helper()
	records := make([][]string, 0, len(songs))
	for _, s := range songs {
		records = append(records, []string{
			s.name,
			fmt.Sprint(s.popularity),
			fmt.Sprint(s.duration),
			s.playlist,
			s.genre,
			s.subgenre,
			fmt.Sprint(s.dance),
			fmt.Sprint(s.energy),
		})
	}
	d, err := dataset.New(dataset.RequiredFields, records)
	if err != nil {
		t.Fatalf("dataset.New() error: %v", err)
	}
	return d
}

func loadSongs(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.Load("../dataset/testdata/songs.csv")
	if err != nil {
		t.Fatalf("dataset.Load() error: %v", err)
	}
	return d
}

func TestCategoriesGenre(t *testing.T) {
	d := newTestDataset(t, []testSong{
		{name: "A", genre: "pop"},
		{name: "B", genre: "pop"},
		{name: "C", genre: "rock"},
	})

	got, err := Categories(d, dataset.PlaylistGenre)
	if err != nil {
		t.Fatalf("Categories() error: %v", err)
	}
	want := CategoryCounts{{Key: "pop", Count: 2}, {Key: "rock", Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoriesTieBreak(t *testing.T) {
	d := loadSongs(t)

	tests := []struct {
		field string
		want  CategoryCounts
	}{
		{
			field: dataset.PlaylistName,
			want: CategoryCounts{
				{Key: "Pop Remix", Count: 5},
				{Key: "Today's Top Hits", Count: 2},
				{Key: "Classic Rock", Count: 2},
				{Key: "Thrash Metal", Count: 1},
			},
		},
		{
			field: dataset.PlaylistSubgenre,
			want: CategoryCounts{
				{Key: "dance pop", Count: 5},
				{Key: "post-teen pop", Count: 2},
				{Key: "classic rock", Count: 2},
				{Key: "hard rock", Count: 1},
			},
		},
		{
			field: dataset.PlaylistGenre,
			want:  CategoryCounts{{Key: "pop", Count: 7}, {Key: "rock", Count: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := Categories(d, tt.field)
			if err != nil {
				t.Fatalf("Categories(%q) error: %v", tt.field, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Categories(%q) mismatch (-want +got):\n%s", tt.field, diff)
			}
		})
	}
}

func TestCategoriesSumsToLen(t *testing.T) {
	d := loadSongs(t)

	for _, field := range d.Columns() {
		got, err := Categories(d, field)
		if err != nil {
			t.Fatalf("Categories(%q) error: %v", field, err)
		}
		if got.Total() != d.Len() {
			t.Errorf("Categories(%q).Total() = %d, want %d", field, got.Total(), d.Len())
		}
	}
}

func TestCategoriesIdempotent(t *testing.T) {
	d := loadSongs(t)

	first, err := Categories(d, dataset.PlaylistName)
	if err != nil {
		t.Fatalf("Categories() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Categories(d, dataset.PlaylistName)
		if err != nil {
			t.Fatalf("Categories() error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Categories() changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestPairsIdempotent(t *testing.T) {
	d := loadSongs(t)

	first, err := Pairs(d, dataset.Danceability, dataset.Energy, dataset.PlaylistName)
	if err != nil {
		t.Fatalf("Pairs() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Pairs(d, dataset.Danceability, dataset.Energy, dataset.PlaylistName)
		if err != nil {
			t.Fatalf("Pairs() error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Pairs() changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestExtremeIdempotent(t *testing.T) {
	d := loadSongs(t)

	for _, field := range []string{dataset.TrackPopularity, dataset.DurationMs} {
		first, err := Extreme(d, field)
		if err != nil {
			t.Fatalf("Extreme(%s) error: %v", field, err)
		}
		for i := 0; i < 5; i++ {
			again, err := Extreme(d, field)
			if err != nil {
				t.Fatalf("Extreme(%s) error: %v", field, err)
			}
			if diff := cmp.Diff(first, again); diff != "" {
				t.Fatalf("Extreme(%s) changed between calls (-first +again):\n%s", field, diff)
			}
		}
	}
}

func TestCategoriesEmpty(t *testing.T) {
	d := newTestDataset(t, nil)

	got, err := Categories(d, dataset.PlaylistGenre)
	if err != nil {
		t.Fatalf("Categories() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Categories() = %#v, want empty non-nil", got)
	}
}

func TestCategoriesUnknownField(t *testing.T) {
	d := loadSongs(t)

	_, err := Categories(d, "not_a_column")
	var unknown *dataset.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("Categories() error = %v, want *dataset.UnknownFieldError", err)
	}
	if unknown.Field != "not_a_column" {
		t.Errorf("UnknownFieldError.Field = %q, want not_a_column", unknown.Field)
	}
}

func TestPairs(t *testing.T) {
	d := newTestDataset(t, []testSong{
		{name: "A", genre: "pop", dance: 0.9, energy: 0.1},
		{name: "B", genre: "rock", dance: 0.2, energy: 0.8},
		{name: "C", genre: "pop", dance: 0.5, energy: 0.5},
	})

	got, err := Pairs(d, dataset.Danceability, dataset.Energy, dataset.PlaylistGenre)
	if err != nil {
		t.Fatalf("Pairs() error: %v", err)
	}
	want := SeriesPair{
		XField:  dataset.Danceability,
		YField:  dataset.Energy,
		GroupBy: dataset.PlaylistGenre,
		X:       []float64{0.9, 0.2, 0.5},
		Y:       []float64{0.1, 0.8, 0.5},
		Group:   []string{"pop", "rock", "pop"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pairs() mismatch (-want +got):\n%s", diff)
	}
}

func TestPairsLengths(t *testing.T) {
	d := loadSongs(t)
	numeric := d.NumericColumns()

	for _, x := range numeric {
		for _, y := range numeric {
			got, err := Pairs(d, x, y, "")
			if err != nil {
				t.Fatalf("Pairs(%q, %q) error: %v", x, y, err)
			}
			if len(got.X) != d.Len() || len(got.Y) != d.Len() {
				t.Errorf("Pairs(%q, %q) lengths = %d, %d, want %d", x, y, len(got.X), len(got.Y), d.Len())
			}
			if got.Group != nil {
				t.Errorf("Pairs(%q, %q) without group has Group = %v", x, y, got.Group)
			}
		}
	}
}

func TestPairsDoesNotAlias(t *testing.T) {
	d := loadSongs(t)

	got, err := Pairs(d, dataset.Danceability, dataset.Energy, "")
	if err != nil {
		t.Fatalf("Pairs() error: %v", err)
	}
	got.X[0] = -1

	again, err := Pairs(d, dataset.Danceability, dataset.Energy, "")
	if err != nil {
		t.Fatalf("Pairs() error: %v", err)
	}
	if again.X[0] == -1 {
		t.Errorf("Pairs() result shares storage with the dataset")
	}
}

func TestPairsErrors(t *testing.T) {
	d := loadSongs(t)

	tests := []struct {
		name        string
		x, y, group string
		mismatch    bool
	}{
		{name: "string x", x: dataset.PlaylistGenre, y: dataset.Energy, mismatch: true},
		{name: "string y", x: dataset.Danceability, y: dataset.TrackName, mismatch: true},
		{name: "unknown x", x: "nope", y: dataset.Energy},
		{name: "unknown group", x: dataset.Danceability, y: dataset.Energy, group: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pairs(d, tt.x, tt.y, tt.group)
			var mismatch *dataset.TypeMismatchError
			var unknown *dataset.UnknownFieldError
			switch {
			case tt.mismatch && !errors.As(err, &mismatch):
				t.Errorf("Pairs() error = %v, want *dataset.TypeMismatchError", err)
			case !tt.mismatch && !errors.As(err, &unknown):
				t.Errorf("Pairs() error = %v, want *dataset.UnknownFieldError", err)
			}
		})
	}
}

func TestExtreme(t *testing.T) {
	d := newTestDataset(t, []testSong{
		{name: "A", popularity: 10},
		{name: "B", popularity: 99},
		{name: "C", popularity: 5},
	})

	got, err := Extreme(d, dataset.TrackPopularity)
	if err != nil {
		t.Fatalf("Extreme() error: %v", err)
	}
	if got.MaxLabel != "B" || got.MinLabel != "C" {
		t.Errorf("Extreme() = max %q, min %q, want max B, min C", got.MaxLabel, got.MinLabel)
	}
}

func TestExtremeTiesAndSongs(t *testing.T) {
	d := loadSongs(t)

	tests := []struct {
		field string
		want  Extremes
	}{
		{
			field: dataset.TrackPopularity,
			want: Extremes{
				Field:    dataset.TrackPopularity,
				MaxLabel: "Old Town Road - Remix", MaxValue: 88, MaxRow: 5,
				MinLabel: "Smells Like Teen Spirit", MinValue: 4, MinRow: 8,
			},
		},
		{
			field: dataset.DurationMs,
			want: Extremes{
				Field:    dataset.DurationMs,
				MaxLabel: "Bohemian Rhapsody - Remastered 2011", MaxValue: 354320, MaxRow: 7,
				MinLabel: "Old Town Road - Remix", MinValue: 157067, MinRow: 5,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := Extreme(d, tt.field)
			if err != nil {
				t.Fatalf("Extreme(%q) error: %v", tt.field, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extreme(%q) mismatch (-want +got):\n%s", tt.field, diff)
			}
		})
	}
}

func TestExtremeEmpty(t *testing.T) {
	d := newTestDataset(t, nil)

	if _, err := Extreme(d, dataset.TrackPopularity); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Extreme() error = %v, want ErrEmptyDataset", err)
	}
}

func TestExtremeNonNumeric(t *testing.T) {
	d := loadSongs(t)

	var mismatch *dataset.TypeMismatchError
	if _, err := Extreme(d, dataset.PlaylistName); !errors.As(err, &mismatch) {
		t.Errorf("Extreme() error = %v, want *dataset.TypeMismatchError", err)
	}
}

func TestExtremeSkipsEmptyCells(t *testing.T) {
	header := append(append([]string{}, dataset.RequiredFields...), "rating")
	records := [][]string{
		{"A", "1", "100", "P", "pop", "dance pop", "0.1", "0.2", ""},
		{"B", "2", "200", "P", "pop", "dance pop", "0.3", "0.4", "3"},
		{"C", "3", "300", "P", "pop", "dance pop", "0.5", "0.6", "7"},
	}
	d, err := dataset.New(header, records)
	if err != nil {
		t.Fatalf("dataset.New() error: %v", err)
	}

	got, err := Extreme(d, "rating")
	if err != nil {
		t.Fatalf("Extreme() error: %v", err)
	}
	if got.MaxLabel != "C" || got.MinLabel != "B" {
		t.Errorf("Extreme() = max %q, min %q, want max C, min B", got.MaxLabel, got.MinLabel)
	}
}

func TestDescribe(t *testing.T) {
	d := newTestDataset(t, []testSong{
		{name: "A", popularity: 10},
		{name: "B", popularity: 20},
		{name: "C", popularity: 30},
		{name: "D", popularity: 40},
	})

	got, err := Describe(d, dataset.TrackPopularity)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	want := Description{
		Field:  dataset.TrackPopularity,
		Count:  4,
		Mean:   25,
		StdDev: math.Sqrt(500.0 / 3.0),
		Min:    10,
		P25:    15,
		Median: 25,
		P75:    35,
		Max:    40,
	}
	if diff := cmp.Diff(want, got, cmpFloat); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribeSingleRow(t *testing.T) {
	d := newTestDataset(t, []testSong{{name: "A", popularity: 42}})

	got, err := Describe(d, dataset.TrackPopularity)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if got.P25 != 42 || got.P75 != 42 || got.StdDev != 0 {
		t.Errorf("Describe() = %+v, want quartiles 42 and zero std dev", got)
	}
}

func TestDescribeEmpty(t *testing.T) {
	d := newTestDataset(t, nil)

	if _, err := Describe(d, dataset.Energy); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Describe() error = %v, want ErrEmptyDataset", err)
	}
}

func TestCorrelation(t *testing.T) {
	d := newTestDataset(t, []testSong{
		{name: "A", dance: 0.1, energy: 0.2},
		{name: "B", dance: 0.2, energy: 0.4},
		{name: "C", dance: 0.3, energy: 0.6},
	})

	got, err := Correlation(d, dataset.Danceability, dataset.Energy)
	if err != nil {
		t.Fatalf("Correlation() error: %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Correlation() = %v, want 1", got)
	}

	if _, err := Correlation(newTestDataset(t, nil), dataset.Danceability, dataset.Energy); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Correlation() on empty dataset error = %v, want ErrEmptyDataset", err)
	}
}

var cmpFloat = cmp.Comparer(func(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
})
