package cmd

import (
	"fmt"
	"os"

	"github.com/peekknuf/scikit-ds/internal/eda"
	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/spf13/cobra"
)

var (
	countsColumn string
	countsBy     []string
)

var countsCmd = &cobra.Command{
	Use:   "counts [source]",
	Short: "Absolute and relative value counts of a column",
	Long: `Count the distinct values of a column, optionally within groups.
Relative counts are computed within each group.

Examples:
  scikit-ds counts data.csv --col city
  scikit-ds counts data.csv --col city --by country,year
  scikit-ds counts single_column.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, source, err := loadData(cmd.Context(), args)
		if err != nil {
			return err
		}

		data := eda.FromTable(df)
		if countsColumn == "" && len(countsBy) == 0 && df.Ncol() == 1 {
			data = eda.FromSeries(df.Col(df.Names()[0]))
		}

		counts, err := eda.ComputeCounts(data, countsColumn, countsBy...)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.HeaderColor("Value counts:"), ui.DetailColor(source))
		renderFrame(os.Stdout, counts.DataFrame())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countsCmd)
	countsCmd.Flags().StringVar(&countsColumn, "col", "",
		"Column to count (required unless the data has a single column)")
	countsCmd.Flags().StringSliceVar(&countsBy, "by", nil,
		"Grouping columns")
}
