// Package profiler computes pandas-describe style column statistics and
// dataset quality metrics over a data frame.
package profiler

import (
	"context"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/peekknuf/scikit-ds/internal/loader"
	"github.com/pkg/errors"
)

type Profile struct {
	Source         string
	RowCount       int
	Columns        []ColumnStats
	Quality        QualityMetrics
	ProcessingTime time.Duration
}

// ProfileFrame profiles every column of df in column order.
func ProfileFrame(source string, df dataframe.DataFrame) (*Profile, error) {
	if err := df.Error(); err != nil {
		return nil, errors.Wrapf(err, "cannot profile %s", source)
	}
	start := time.Now()

	p := &Profile{
		Source:   source,
		RowCount: df.Nrow(),
		Columns:  make([]ColumnStats, 0, df.Ncol()),
	}
	for _, name := range df.Names() {
		p.Columns = append(p.Columns, computeColumnStats(df.Col(name)))
	}

	quality, err := CalculateQuality(df, p.Columns)
	if err != nil {
		return nil, err
	}
	p.Quality = quality
	p.ProcessingTime = time.Since(start)
	return p, nil
}

// ProfileFile loads source through the loader and profiles it.
func ProfileFile(ctx context.Context, source string, opts loader.Options) (*Profile, error) {
	start := time.Now()
	df, err := loader.Load(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	p, err := ProfileFrame(source, df)
	if err != nil {
		return nil, err
	}
	p.ProcessingTime = time.Since(start)
	return p, nil
}

// Column returns the stats of the named column.
func (p *Profile) Column(name string) (ColumnStats, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}

func (p *Profile) NumericColumns() int {
	n := 0
	for _, c := range p.Columns {
		if c.Numeric() {
			n++
		}
	}
	return n
}

func (p *Profile) NullCount() int {
	n := 0
	for _, c := range p.Columns {
		n += c.NullCount
	}
	return n
}
