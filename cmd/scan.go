package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/peekknuf/scikit-ds/internal/connectors"
	"github.com/peekknuf/scikit-ds/internal/profiler"
	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	filename   string
	dirPath    string
	fileFormat string
	recursive  bool
	verbose    bool
	minSize    int64
	maxSize    int64
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan directory for data files",
	Long: `Scan a directory and report quality metrics (null rate,
distinct row ratio, duplicates, type consistency) for each data file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		opts := appConfig.LoaderOptions()

		if filename != "" {
			specificFile := filepath.Join(dirPath, filename)
			if _, err := os.Stat(specificFile); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", specificFile)
			}

			p, err := profiler.ProfileFile(ctx, specificFile, opts)
			if err != nil {
				return fmt.Errorf("failed to profile %s: %w", specificFile, err)
			}
			printScanResult(p)
			return nil
		}

		options := connectors.DiscoveryOptions{
			Recursive: recursive || appConfig.Recursive,
			MinSize:   minSize,
			MaxSize:   maxSize,
		}

		files, fileCount, err := connectors.DiscoverFiles(dirPath, connectors.ParseExtensions(fileFormat), options)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if fileCount == 0 {
			fmt.Printf("No %s files found in %s\n", fileFormat, dirPath)
			return nil
		}

		bar := progressbar.NewOptions(fileCount,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Processing files..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)

		for _, file := range files {
			if file.IsDir {
				continue
			}

			bar.Add(1)

			p, err := profiler.ProfileFile(ctx, file.Path, opts)
			if err != nil {
				log.Printf("Failed to profile %s: %v", file.Path, err)
				continue
			}
			printScanResult(p)
		}

		bar.Finish()
		return nil
	},
}

func printScanResult(p *profiler.Profile) {
	metrics := p.Quality
	fmt.Printf("\nFile: %s\n", ui.InfoColor(p.Source))
	fmt.Printf("- Rows: %s\n", humanize.Comma(int64(p.RowCount)))
	fmt.Printf("- Null Value Percentage: %.2f%%\n", metrics.NullPercentage*100)
	fmt.Printf("- Distinct Row Ratio: %.2f\n", metrics.DistinctRatio)
	if metrics.DuplicateRows > 0 {
		fmt.Printf("- Duplicate Rows: %s\n", ui.WarningColor(humanize.Comma(int64(metrics.DuplicateRows))))
	}
	fmt.Printf("- Type Consistency: %.2f\n", metrics.TypeConsistency)

	if !verbose {
		return
	}
	for _, stats := range p.Columns {
		fmt.Printf("\nColumn: %s\n", ui.ColumnColor(stats.Name))
		fmt.Printf("  Type: %s\n", stats.Type)
		fmt.Printf("  Nulls: %d\n", stats.NullCount)
		fmt.Printf("  Distinct: %d\n", stats.DistinctCount)
		fmt.Printf("  Min: %s\n", stats.Min)
		fmt.Printf("  Max: %s\n", stats.Max)
		if stats.Top != "" {
			fmt.Printf("  Top: %s (%d)\n", ui.ValueColor(stats.Top), stats.Freq)
		}
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&filename, "file", "n", "",
		"You might want to check specific file only")
	scanCmd.Flags().StringVarP(&dirPath, "dir", "d", "",
		"Directory to scan (required)")
	scanCmd.Flags().StringVarP(&fileFormat, "format", "f", "csv",
		"File formats to analyze, comma separated (csv, tsv, json, parquet)")
	scanCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Search directories recursively")
	scanCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Display detailed quality metrics")
	scanCmd.Flags().Int64Var(&minSize, "min-size", 0,
		"Minimum file size in bytes")
	scanCmd.Flags().Int64Var(&maxSize, "max-size", 0,
		"Maximum file size in bytes")

	scanCmd.MarkFlagRequired("dir")
}
