package cmd

import (
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/olekukonko/tablewriter"
)

// renderFrame prints df as a table. Numeric columns are right aligned.
func renderFrame(w io.Writer, df dataframe.DataFrame) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(df.Names())
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)

	cols := make([]series.Series, df.Ncol())
	align := make([]int, df.Ncol())
	for i, name := range df.Names() {
		cols[i] = df.Col(name)
		align[i] = tablewriter.ALIGN_LEFT
		if t := cols[i].Type(); t == series.Int || t == series.Float {
			align[i] = tablewriter.ALIGN_RIGHT
		}
	}
	table.SetColumnAlignment(align)

	for r := 0; r < df.Nrow(); r++ {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = formatElem(c.Elem(r))
		}
		table.Append(row)
	}
	table.Render()
}

// renderRows prints a plain header plus rows table.
func renderRows(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.AppendBulk(rows)
	table.Render()
}

func formatElem(e series.Element) string {
	if e.IsNA() {
		return "NaN"
	}
	if e.Type() == series.Float {
		return formatFloat(e.Float())
	}
	return e.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
