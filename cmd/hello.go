package cmd

import (
	"fmt"

	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/spf13/cobra"
)

var helloCmd = &cobra.Command{
	Use:     "hello",
	Aliases: []string{"ds-hello"},
	Short:   "Print a greeting and the version",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s scikit-ds %s\n", ui.SuccessColor("Hello from"), Version)
	},
}

func init() {
	rootCmd.AddCommand(helloCmd)
}
