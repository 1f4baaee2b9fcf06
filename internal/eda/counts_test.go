package eda

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const tolerance = 1e-9

func newTable(cols ...series.Series) dataframe.DataFrame {
	return dataframe.New(cols...)
}

func TestComputeCountsTable(t *testing.T) {
	df := newTable(series.New([]string{"a", "b", "a", "c", "a"}, series.String, "col"))

	counts, err := ComputeCounts(FromTable(df), "col")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}

	if len(counts.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(counts.Rows))
	}

	first := counts.Rows[0]
	if first.Value != "a" || first.AbsCount != 3 || math.Abs(first.RelCount-0.6) > tolerance {
		t.Errorf("Expected {a 3 0.6} first, got %+v", first)
	}

	for _, row := range counts.Rows[1:] {
		if row.AbsCount != 1 || math.Abs(row.RelCount-0.2) > tolerance {
			t.Errorf("Expected count 1 and 0.2 for %q, got %d and %f", row.Value, row.AbsCount, row.RelCount)
		}
	}

	// ties keep first-seen order
	if counts.Rows[1].Value != "b" || counts.Rows[2].Value != "c" {
		t.Errorf("Expected tie order b, c, got %s, %s", counts.Rows[1].Value, counts.Rows[2].Value)
	}

	if counts.Total() != df.Nrow() {
		t.Errorf("Expected abs_count sum %d, got %d", df.Nrow(), counts.Total())
	}
}

func TestComputeCountsGrouped(t *testing.T) {
	df := newTable(
		series.New([]string{"a", "b", "a"}, series.String, "col"),
		series.New([]string{"x", "x", "y"}, series.String, "grp"),
	)

	counts, err := ComputeCounts(FromTable(df), "col", "grp")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}

	groups := counts.Groups()
	if !reflect.DeepEqual(groups, [][]string{{"x"}, {"y"}}) {
		t.Fatalf("Expected groups [[x] [y]], got %v", groups)
	}

	x := counts.Group("x")
	if len(x) != 2 {
		t.Fatalf("Expected 2 rows in group x, got %d", len(x))
	}
	for _, row := range x {
		if row.AbsCount != 1 || math.Abs(row.RelCount-0.5) > tolerance {
			t.Errorf("Expected 1 and 0.5 for %q in group x, got %d and %f", row.Value, row.AbsCount, row.RelCount)
		}
	}

	y := counts.Group("y")
	if len(y) != 1 || y[0].Value != "a" || y[0].AbsCount != 1 || y[0].RelCount != 1.0 {
		t.Errorf("Expected single row {a 1 1.0} in group y, got %+v", y)
	}
}

func TestComputeCountsGroupedSumsToOne(t *testing.T) {
	df := newTable(
		series.New([]int{1, 2, 2, 3, 3, 3, 1, 1}, series.Int, "v"),
		series.New([]int{10, 10, 9, 9, 9, 10, 10, 9}, series.Int, "g1"),
		series.New([]string{"p", "q", "p", "p", "q", "q", "p", "p"}, series.String, "g2"),
	)

	counts, err := ComputeCounts(FromTable(df), "v", "g1", "g2")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}

	if counts.Total() != df.Nrow() {
		t.Errorf("Expected abs_count sum %d, got %d", df.Nrow(), counts.Total())
	}

	// int keys sort numerically, not lexically
	if got := counts.Groups()[0]; got[0] != "9" {
		t.Errorf("Expected first group to start with 9, got %v", got)
	}

	for _, key := range counts.Groups() {
		sum := 0.0
		prev := math.MaxInt
		for _, row := range counts.Group(key...) {
			sum += row.RelCount
			if row.AbsCount > prev {
				t.Errorf("Expected descending abs_count in group %v", key)
			}
			prev = row.AbsCount
		}
		if math.Abs(sum-1.0) > tolerance {
			t.Errorf("Expected rel_count sum 1.0 in group %v, got %f", key, sum)
		}
	}
}

func TestComputeCountsValues(t *testing.T) {
	counts, err := ComputeCounts(FromValues([]int{1, 1, 2, 3, 3, 3}), "")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}

	want := []struct {
		value string
		abs   int
		rel   float64
	}{
		{"3", 3, 0.5},
		{"1", 2, 1.0 / 3.0},
		{"2", 1, 1.0 / 6.0},
	}

	if len(counts.Rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(counts.Rows))
	}
	for i, w := range want {
		got := counts.Rows[i]
		if got.Value != w.value || got.AbsCount != w.abs || math.Abs(got.RelCount-w.rel) > tolerance {
			t.Errorf("Row %d: expected {%s %d %f}, got %+v", i, w.value, w.abs, w.rel, got)
		}
	}
}

func TestComputeCountsSeriesIgnoresColAndBy(t *testing.T) {
	s := series.New([]float64{0.5, 1.5, 0.5}, series.Float, "score")

	counts, err := ComputeCounts(FromSeries(s), "does-not-exist", "nor-this")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}
	if counts.Column != "score" {
		t.Errorf("Expected column score, got %q", counts.Column)
	}
	if counts.GroupBy != nil {
		t.Errorf("Expected no grouping, got %v", counts.GroupBy)
	}
	if counts.Rows[0].Value != "0.5" || counts.Rows[0].AbsCount != 2 {
		t.Errorf("Expected {0.5 2} first, got %+v", counts.Rows[0])
	}
}

func TestComputeCountsNullsCounted(t *testing.T) {
	s := series.New([]string{"a", "NaN", "a", "NaN"}, series.String, "s")

	counts, err := ComputeCounts(FromSeries(s), "")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}
	if len(counts.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(counts.Rows))
	}
	for _, row := range counts.Rows {
		if row.RelCount != 0.5 {
			t.Errorf("Expected rel_count 0.5 for %q, got %f", row.Value, row.RelCount)
		}
	}
}

func TestComputeCountsErrors(t *testing.T) {
	df := newTable(
		series.New([]string{"a", "b"}, series.String, "col"),
		series.New([]string{"x", "y"}, series.String, "grp"),
	)

	tests := []struct {
		name string
		data Dataset
		col  string
		by   []string
		want error
	}{
		{"zero dataset", Dataset{}, "col", nil, ErrInvalidInput},
		{"broken table", FromTable(dataframe.DataFrame{Err: errors.New("boom")}), "col", nil, ErrInvalidInput},
		{"missing col", FromTable(df), "", nil, ErrMissingParameter},
		{"unknown col", FromTable(df), "nope", nil, ErrMissingColumn},
		{"unknown by", FromTable(df), "col", []string{"grp", "nope"}, ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCounts(tt.data, tt.col, tt.by...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestComputeCountsIdempotent(t *testing.T) {
	df := newTable(
		series.New([]string{"a", "b", "b", "c"}, series.String, "col"),
		series.New([]bool{true, false, true, true}, series.Bool, "flag"),
	)

	first, err := ComputeCounts(FromTable(df), "col", "flag")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}
	second, err := ComputeCounts(FromTable(df), "col", "flag")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical tables, got %+v and %+v", first, second)
	}
}

func TestDetect(t *testing.T) {
	df := newTable(series.New([]int{1}, series.Int, "a"))

	tests := []struct {
		name    string
		input   any
		want    Shape
		wantErr bool
	}{
		{"dataframe", df, ShapeTable, false},
		{"dataframe pointer", &df, ShapeTable, false},
		{"series", series.Ints([]int{1}), ShapeSeries, false},
		{"ints", []int{1, 2}, ShapeValues, false},
		{"floats", []float64{1.5}, ShapeValues, false},
		{"strings", []string{"a"}, ShapeValues, false},
		{"bools", []bool{true}, ShapeValues, false},
		{"map", map[string]int{"a": 1}, ShapeInvalid, true},
		{"nested slice", [][]int{{1}}, ShapeInvalid, true},
		{"nil", nil, ShapeInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Detect(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("Expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() unexpected error = %v", err)
			}
			if d.Shape() != tt.want {
				t.Errorf("Expected shape %s, got %s", tt.want, d.Shape())
			}
		})
	}
}

func TestCountTableDataFrame(t *testing.T) {
	df := newTable(
		series.New([]string{"a", "b", "a"}, series.String, "col"),
		series.New([]string{"x", "x", "y"}, series.String, "grp"),
	)
	counts, err := ComputeCounts(FromTable(df), "col", "grp")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}

	out := counts.DataFrame()
	if err := out.Error(); err != nil {
		t.Fatalf("DataFrame() failed: %v", err)
	}

	wantNames := []string{"grp", "col", AbsCountColumn, RelCountColumn}
	if !reflect.DeepEqual(out.Names(), wantNames) {
		t.Errorf("Expected columns %v, got %v", wantNames, out.Names())
	}
	if out.Nrow() != 3 {
		t.Errorf("Expected 3 rows, got %d", out.Nrow())
	}

	unnamed, err := ComputeCounts(FromValues([]string{"q"}), "")
	if err != nil {
		t.Fatalf("ComputeCounts() failed: %v", err)
	}
	if got := unnamed.DataFrame().Names()[0]; got != ValueColumn {
		t.Errorf("Expected value column %q, got %q", ValueColumn, got)
	}
}
