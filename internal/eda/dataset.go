package eda

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// Shape identifies which of the accepted input layouts a Dataset holds.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeTable         // two-dimensional table with named columns
	ShapeSeries        // one-dimensional labeled sequence
	ShapeValues        // one-dimensional unlabeled values
)

func (s Shape) String() string {
	switch s {
	case ShapeTable:
		return "table"
	case ShapeSeries:
		return "series"
	case ShapeValues:
		return "values"
	default:
		return "invalid"
	}
}

// Value is the element type accepted for unlabeled input.
type Value interface {
	int | float64 | string | bool
}

// Dataset is the input of ComputeCounts. Build one with FromTable, FromSeries
// or FromValues; the zero Dataset is rejected with ErrInvalidInput.
type Dataset struct {
	shape  Shape
	table  dataframe.DataFrame
	series series.Series
}

// FromTable wraps a DataFrame.
func FromTable(df dataframe.DataFrame) Dataset {
	return Dataset{shape: ShapeTable, table: df}
}

// FromSeries wraps a labeled sequence.
func FromSeries(s series.Series) Dataset {
	return Dataset{shape: ShapeSeries, series: s}
}

// FromValues wraps raw values, coercing them into an unnamed Series.
func FromValues[T Value](values []T) Dataset {
	return Dataset{shape: ShapeValues, series: valuesSeries(values)}
}

// Detect builds a Dataset from a dynamically typed value.
func Detect(v any) (Dataset, error) {
	switch data := v.(type) {
	case Dataset:
		return data, data.validate()
	case dataframe.DataFrame:
		return FromTable(data), nil
	case *dataframe.DataFrame:
		if data == nil {
			break
		}
		return FromTable(*data), nil
	case series.Series:
		return FromSeries(data), nil
	case *series.Series:
		if data == nil {
			break
		}
		return FromSeries(*data), nil
	case []int:
		return FromValues(data), nil
	case []float64:
		return FromValues(data), nil
	case []string:
		return FromValues(data), nil
	case []bool:
		return FromValues(data), nil
	}
	return Dataset{}, errors.Wrapf(ErrInvalidInput, "unsupported type %T", v)
}

// Shape reports the layout of the dataset.
func (d Dataset) Shape() Shape {
	return d.shape
}

func (d Dataset) validate() error {
	switch d.shape {
	case ShapeTable:
		if err := d.table.Error(); err != nil {
			return errors.Wrapf(ErrInvalidInput, "table: %v", err)
		}
	case ShapeSeries, ShapeValues:
		if err := d.series.Error(); err != nil {
			return errors.Wrapf(ErrInvalidInput, "series: %v", err)
		}
	default:
		return ErrInvalidInput
	}
	return nil
}

func valuesSeries[T Value](values []T) series.Series {
	switch v := any(values).(type) {
	case []int:
		return series.Ints(v)
	case []float64:
		return series.Floats(v)
	case []bool:
		return series.Bools(v)
	case []string:
		return series.Strings(v)
	}
	return series.Series{Err: ErrInvalidInput}
}

// elemKey renders an element as the string used for counting and keys.
// Floats use the shortest representation rather than gota's fixed %f.
func elemKey(e series.Element) string {
	if e.IsNA() {
		return "NaN"
	}
	if e.Type() == series.Float {
		return strconv.FormatFloat(e.Float(), 'g', -1, 64)
	}
	return e.String()
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
