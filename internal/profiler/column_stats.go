package profiler

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/go-gota/gota/series"
	"github.com/peekknuf/scikit-ds/internal/eda"
)

const (
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeString   = "string"
	TypeDatetime = "datetime"
)

const maxSampleValues = 5

// ColumnStats mirrors pandas describe(): numeric columns fill Mean, Std and
// the quartiles; every column fills Top/Freq from its most frequent value.
type ColumnStats struct {
	Name          string
	Type          string
	Count         int // non-null values
	NullCount     int
	DistinctCount int // non-null distinct values
	Mean          float64
	Std           float64
	Min           string
	Q25           float64
	Q50           float64
	Q75           float64
	Max           string
	Top           string
	Freq          int
	SampleValues  []string

	// non-null values whose inferred kind matches the dominant one
	consistent int
}

func (s ColumnStats) Numeric() bool {
	return s.Type == TypeInt || s.Type == TypeFloat
}

func (s ColumnStats) NullRate() float64 {
	total := s.Count + s.NullCount
	if total == 0 {
		return 0
	}
	return float64(s.NullCount) / float64(total)
}

func computeColumnStats(col series.Series) ColumnStats {
	st := ColumnStats{
		Name: col.Name,
		Type: columnType(col.Type()),
		Mean: math.NaN(),
		Std:  math.NaN(),
		Q25:  math.NaN(),
		Q50:  math.NaN(),
		Q75:  math.NaN(),
	}

	values := make([]string, 0, col.Len())
	var numbers []float64
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			st.NullCount++
			continue
		}
		v := e.String()
		if st.Numeric() {
			f := e.Float()
			numbers = append(numbers, f)
			v = strconv.FormatFloat(f, 'g', -1, 64)
		}
		values = append(values, v)
		if len(st.SampleValues) < maxSampleValues {
			st.SampleValues = append(st.SampleValues, v)
		}
	}
	st.Count = len(values)

	if st.Type == TypeString && allDates(values) {
		st.Type = TypeDatetime
	}
	st.consistent = dominantKindCount(values)

	if counts, err := eda.ComputeCounts(eda.FromSeries(col), ""); err == nil {
		for _, row := range counts.Rows {
			if row.Value == "NaN" {
				continue
			}
			if st.DistinctCount == 0 {
				st.Top, st.Freq = row.Value, row.AbsCount
			}
			st.DistinctCount++
		}
	}

	if st.Numeric() {
		if len(numbers) > 0 {
			sample := stats.Sample{Xs: numbers}
			sample.Sort()
			lo, hi := sample.Bounds()
			st.Min = strconv.FormatFloat(lo, 'g', -1, 64)
			st.Max = strconv.FormatFloat(hi, 'g', -1, 64)
			st.Mean = sample.Mean()
			st.Q25 = sample.Quantile(0.25)
			st.Q50 = sample.Quantile(0.5)
			st.Q75 = sample.Quantile(0.75)
			if len(numbers) > 1 {
				st.Std = sample.StdDev()
			}
		}
		return st
	}

	for _, v := range values {
		if st.Min == "" || v < st.Min {
			st.Min = v
		}
		if st.Max == "" || v > st.Max {
			st.Max = v
		}
	}
	return st
}

func columnType(t series.Type) string {
	switch t {
	case series.Int:
		return TypeInt
	case series.Float:
		return TypeFloat
	case series.Bool:
		return TypeBool
	default:
		return TypeString
	}
}
