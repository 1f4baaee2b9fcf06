// Package loader turns data sources (local files, s3:// objects, SQL queries)
// into gota data frames.
package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for sources whose extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies how a source's bytes are decoded.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// DefaultNAValues are the cell contents read as nulls.
var DefaultNAValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "<nil>"}

type Options struct {
	// Delimiter for delimited text; zero means detect from the first lines.
	Delimiter rune
	NAValues  []string
	S3        S3Options
}

func DefaultOptions() Options {
	return Options{NAValues: DefaultNAValues}
}

// DetectFormat maps a path or object key onto a Format by extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return FormatUnknown
	}
}

// Load reads source into a data frame. Sources starting with s3:// are
// fetched from S3; anything else is a local path.
func Load(ctx context.Context, source string, opts Options) (dataframe.DataFrame, error) {
	format := DetectFormat(source)
	if format == FormatUnknown {
		return dataframe.DataFrame{}, errors.Wrapf(ErrUnsupportedFormat, "%s", source)
	}

	var (
		data []byte
		err  error
	)
	if IsS3URL(source) {
		data, err = fetchS3(ctx, source, opts.S3)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "failed to read %s", source)
	}

	df, err := Decode(ctx, data, format, opts)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "failed to decode %s", source)
	}
	return df, nil
}

// Decode parses raw bytes in the given format.
func Decode(ctx context.Context, data []byte, format Format, opts Options) (dataframe.DataFrame, error) {
	var df dataframe.DataFrame
	switch format {
	case FormatCSV:
		delim := opts.Delimiter
		if delim == 0 {
			delim = DetectDelimiter(data, 0)
		}
		df = dataframe.ReadCSV(bytes.NewReader(data),
			dataframe.WithDelimiter(delim),
			dataframe.NaNValues(naValues(opts)))
	case FormatJSON:
		df = dataframe.ReadJSON(bytes.NewReader(data), dataframe.NaNValues(naValues(opts)))
	case FormatParquet:
		records, err := parquetRecords(ctx, data)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		return fromRecords(records, opts)
	default:
		return dataframe.DataFrame{}, errors.Wrapf(ErrUnsupportedFormat, "format %s", format)
	}
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// fromRecords builds a frame from a header row plus string rows, letting
// gota detect column types.
func fromRecords(records [][]string, opts Options) (dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, errors.New("no header row")
	}
	if len(records) == 1 {
		return emptyFrame(records[0]), nil
	}
	df := dataframe.LoadRecords(records, dataframe.NaNValues(naValues(opts)))
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

func emptyFrame(names []string) dataframe.DataFrame {
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

// naValues always includes the marker used for nulls coming out of typed
// sources (parquet, SQL).
func naValues(opts Options) []string {
	values := opts.NAValues
	if len(values) == 0 {
		values = DefaultNAValues
	}
	for _, v := range values {
		if v == nullMarker {
			return values
		}
	}
	return append(append([]string{}, values...), nullMarker)
}

const nullMarker = "NaN"
