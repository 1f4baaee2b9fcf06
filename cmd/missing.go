package cmd

import (
	"fmt"
	"os"

	"github.com/peekknuf/scikit-ds/internal/eda"
	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/spf13/cobra"
)

var (
	missingAll bool
	missingRaw bool
)

var missingCmd = &cobra.Command{
	Use:   "missing [source]",
	Short: "Per-column missing value counts and percentages",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, source, err := loadData(cmd.Context(), args)
		if err != nil {
			return err
		}

		opts := appConfig.MissingOptions()
		if cmd.Flags().Changed("all") {
			opts.ShowOnlyMissing = !missingAll
		}
		if cmd.Flags().Changed("raw") {
			opts.FormatPct = !missingRaw
		}

		report, err := eda.ComputeMissing(df, opts)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.HeaderColor("Missing values:"), ui.DetailColor(source))
		if len(report.Rows) == 0 {
			fmt.Println(ui.SuccessColor("No missing values"))
			return nil
		}
		renderFrame(os.Stdout, report.DataFrame())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
	missingCmd.Flags().BoolVar(&missingAll, "all", false,
		"Include columns without missing values")
	missingCmd.Flags().BoolVar(&missingRaw, "raw", false,
		"Print fractions instead of formatted percentages")
}
