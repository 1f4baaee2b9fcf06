package eda

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gota/gota/series"
)

func TestComputeMissing(t *testing.T) {
	df := newTable(
		series.New([]string{"a", "NaN", "c", "d"}, series.String, "one"),
		series.New([]float64{1, 2, 3, 4}, series.Float, "none"),
		series.New([]string{"NaN", "NaN", "NaN", "x"}, series.String, "three"),
	)

	report, err := ComputeMissing(df, MissingOptions{ShowOnlyMissing: false})
	if err != nil {
		t.Fatalf("ComputeMissing() failed: %v", err)
	}

	var features []string
	for _, row := range report.Rows {
		features = append(features, row.Feature)
	}
	want := []string{"three", "one", "none"}
	if !reflect.DeepEqual(features, want) {
		t.Errorf("Expected order %v, got %v", want, features)
	}

	if report.Rows[0].MissingCount != 3 || math.Abs(report.Rows[0].MissingPct-0.75) > tolerance {
		t.Errorf("Expected 3 missing (0.75) for three, got %+v", report.Rows[0])
	}
	if report.Rows[2].MissingCount != 0 || report.Rows[2].MissingPct != 0 {
		t.Errorf("Expected no missing values for none, got %+v", report.Rows[2])
	}
}

func TestComputeMissingShowOnlyMissing(t *testing.T) {
	df := newTable(
		series.New([]int{1, 2}, series.Int, "full"),
		series.New([]string{"NaN", "b"}, series.String, "gappy"),
	)

	report, err := ComputeMissing(df, DefaultMissingOptions())
	if err != nil {
		t.Fatalf("ComputeMissing() failed: %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].Feature != "gappy" {
		t.Fatalf("Expected only gappy, got %+v", report.Rows)
	}

	out := report.DataFrame()
	if got := out.Col("missing_pct").Elem(0).String(); got != "50.00%" {
		t.Errorf("Expected formatted 50.00%%, got %s", got)
	}
	if out.Col("missing_pct").Type() != series.String {
		t.Errorf("Expected string missing_pct, got %s", out.Col("missing_pct").Type())
	}
}

func TestMissingReportRawPct(t *testing.T) {
	df := newTable(series.New([]string{"NaN", "b", "c", "d"}, series.String, "s"))

	report, err := ComputeMissing(df, MissingOptions{ShowOnlyMissing: true, FormatPct: false})
	if err != nil {
		t.Fatalf("ComputeMissing() failed: %v", err)
	}

	out := report.DataFrame()
	if out.Col("missing_pct").Type() != series.Float {
		t.Errorf("Expected float missing_pct, got %s", out.Col("missing_pct").Type())
	}
	if got := out.Col("missing_pct").Elem(0).Float(); math.Abs(got-0.25) > tolerance {
		t.Errorf("Expected 0.25, got %f", got)
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(0.123456); got != "12.35%" {
		t.Errorf("Expected 12.35%%, got %s", got)
	}
}
