package loader

import (
	"bytes"
	"context"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/pkg/errors"
)

// parquetRecords reads a whole parquet file into a header row plus string
// rows. Nulls become nullMarker so type detection treats them as NA.
func parquetRecords(ctx context.Context, data []byte) ([][]string, error) {
	mem := memory.NewGoAllocator()
	pf, err := file.NewParquetReader(bytes.NewReader(data),
		file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open parquet data")
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create arrow reader")
	}
	table, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read parquet table")
	}
	defer table.Release()

	ncols := int(table.NumCols())
	nrows := int(table.NumRows())
	records := make([][]string, nrows+1)
	records[0] = make([]string, ncols)
	for r := 1; r <= nrows; r++ {
		records[r] = make([]string, ncols)
	}

	for c := 0; c < ncols; c++ {
		col := table.Column(c)
		records[0][c] = col.Name()
		row := 1
		for _, chunk := range col.Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					records[row][c] = nullMarker
				} else {
					records[row][c] = chunk.ValueStr(i)
				}
				row++
			}
		}
	}
	return records, nil
}
