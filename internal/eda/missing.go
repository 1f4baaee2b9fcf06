package eda

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// MissingOptions controls ComputeMissing.
type MissingOptions struct {
	ShowOnlyMissing bool // drop columns without missing values
	FormatPct       bool // render missing_pct as percentage text
}

// DefaultMissingOptions shows only columns with missing values and formats
// the fraction as a percentage.
func DefaultMissingOptions() MissingOptions {
	return MissingOptions{ShowOnlyMissing: true, FormatPct: true}
}

// MissingRow is the missing-value summary of one column.
type MissingRow struct {
	Feature      string
	MissingCount int
	MissingPct   float64 // fraction in [0, 1]
}

// MissingReport lists columns by descending missing count.
type MissingReport struct {
	Rows      []MissingRow
	FormatPct bool
}

// ComputeMissing counts missing values per column of df.
func ComputeMissing(df dataframe.DataFrame, opts MissingOptions) (*MissingReport, error) {
	if err := df.Error(); err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "table: %v", err)
	}

	nrows := df.Nrow()
	rows := make([]MissingRow, 0, df.Ncol())
	for _, name := range df.Names() {
		count := 0
		for _, na := range df.Col(name).IsNaN() {
			if na {
				count++
			}
		}

		row := MissingRow{Feature: name, MissingCount: count}
		if nrows > 0 {
			row.MissingPct = float64(count) / float64(nrows)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MissingCount > rows[j].MissingCount
	})

	if opts.ShowOnlyMissing {
		kept := rows[:0]
		for _, row := range rows {
			if row.MissingCount > 0 {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	return &MissingReport{Rows: rows, FormatPct: opts.FormatPct}, nil
}

// FormatPct renders a fraction as a percentage with two decimals.
func FormatPct(frac float64) string {
	return fmt.Sprintf("%.2f%%", frac*100)
}

// DataFrame converts the report into columns feature, missing_count, missing_pct.
func (r *MissingReport) DataFrame() dataframe.DataFrame {
	n := len(r.Rows)
	features := make([]string, n)
	counts := make([]int, n)
	fracs := make([]float64, n)
	texts := make([]string, n)
	for i, row := range r.Rows {
		features[i] = row.Feature
		counts[i] = row.MissingCount
		fracs[i] = row.MissingPct
		texts[i] = FormatPct(row.MissingPct)
	}

	pct := series.New(fracs, series.Float, "missing_pct")
	if r.FormatPct {
		pct = series.New(texts, series.String, "missing_pct")
	}
	return dataframe.New(
		series.New(features, series.String, "feature"),
		series.New(counts, series.Int, "missing_count"),
		pct,
	)
}
