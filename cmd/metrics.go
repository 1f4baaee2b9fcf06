package cmd

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/peekknuf/scikit-ds/internal/metrics"
	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/spf13/cobra"
)

var (
	trueColumn  string
	predColumn  string
	probaColumn string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [source]",
	Short: "Binary classification metrics from label and score columns",
	Long: `Compute accuracy, balanced accuracy, recall, precision, F1 and,
when a score column is given, ROC AUC. Labels must be 0/1.

Examples:
  scikit-ds metrics predictions.csv --true label --pred predicted
  scikit-ds metrics predictions.parquet --true y --pred y_hat --proba score`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, source, err := loadData(cmd.Context(), args)
		if err != nil {
			return err
		}

		yTrue, err := labelColumn(df, trueColumn)
		if err != nil {
			return err
		}
		yPred, err := labelColumn(df, predColumn)
		if err != nil {
			return err
		}
		var yProba []float64
		if probaColumn != "" {
			col := df.Col(probaColumn)
			if col.Err != nil {
				return fmt.Errorf("column %q: %w", probaColumn, col.Err)
			}
			yProba = col.Float()
		}

		scores, err := metrics.ClfMetrics(yTrue, yPred, yProba)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.HeaderColor("Classification metrics:"), ui.DetailColor(source))
		var rows [][]string
		for _, key := range metrics.Keys {
			if v, ok := scores[key]; ok {
				rows = append(rows, []string{key, formatFloat(v)})
			}
		}
		renderRows(os.Stdout, []string{"metric", "value"}, rows)
		return nil
	},
}

func labelColumn(df dataframe.DataFrame, name string) ([]int, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %q: %w", name, col.Err)
	}
	labels, err := col.Int()
	if err != nil {
		return nil, fmt.Errorf("column %q must hold integer labels without nulls: %w", name, err)
	}
	return labels, nil
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().StringVar(&trueColumn, "true", "",
		"Column with the true labels")
	metricsCmd.Flags().StringVar(&predColumn, "pred", "",
		"Column with the predicted labels")
	metricsCmd.Flags().StringVar(&probaColumn, "proba", "",
		"Column with positive-class scores (enables ROC_AUC)")

	metricsCmd.MarkFlagRequired("true")
	metricsCmd.MarkFlagRequired("pred")
}
