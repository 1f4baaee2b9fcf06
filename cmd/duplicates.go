package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/peekknuf/scikit-ds/internal/eda"
	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/spf13/cobra"
)

var duplicateKeys []string

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates [source]",
	Short: "Show every row whose key columns occur more than once",
	Long: `Show all occurrences of duplicated rows, sorted by the key columns.
Without --keys, whole rows are compared.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, source, err := loadData(cmd.Context(), args)
		if err != nil {
			return err
		}

		dups, err := eda.ShowDuplicates(df, duplicateKeys...)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.HeaderColor("Duplicates:"), ui.DetailColor(source))
		if dups.Nrow() == 0 {
			fmt.Println(ui.SuccessColor("No duplicated rows"))
			return nil
		}
		fmt.Printf("%s of %s rows are duplicated\n",
			ui.WarningColor(humanize.Comma(int64(dups.Nrow()))), humanize.Comma(int64(df.Nrow())))
		renderFrame(os.Stdout, dups)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
	duplicatesCmd.Flags().StringSliceVar(&duplicateKeys, "keys", nil,
		"Key columns (default: all columns)")
}
