package profiler

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/peekknuf/scikit-ds/internal/eda"
)

type QualityMetrics struct {
	TotalRows       int
	NullPercentage  float64 // fraction of null cells
	TypeConsistency float64 // fraction of non-null cells matching their column's dominant kind
	DistinctRatio   float64 // fraction of rows that are not repeats of an earlier row
	DuplicateRows   int
}

// CalculateQuality derives dataset-level metrics from df and its column stats.
func CalculateQuality(df dataframe.DataFrame, columns []ColumnStats) (QualityMetrics, error) {
	metrics := QualityMetrics{
		TotalRows:       df.Nrow(),
		TypeConsistency: 1.0,
	}

	totalNulls, totalCells, nonNull, consistent := 0, 0, 0, 0
	for _, c := range columns {
		totalNulls += c.NullCount
		totalCells += c.Count + c.NullCount
		nonNull += c.Count
		consistent += c.consistent
	}
	if totalCells > 0 {
		metrics.NullPercentage = float64(totalNulls) / float64(totalCells)
	}
	if nonNull > 0 {
		metrics.TypeConsistency = float64(consistent) / float64(nonNull)
	}

	if metrics.TotalRows == 0 || df.Ncol() == 0 {
		return metrics, nil
	}
	dups, err := eda.DuplicateCount(df)
	if err != nil {
		return QualityMetrics{}, err
	}
	metrics.DuplicateRows = dups
	metrics.DistinctRatio = float64(metrics.TotalRows-dups) / float64(metrics.TotalRows)
	return metrics, nil
}
