package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/peekknuf/scikit-ds/internal/connectors"
	"github.com/peekknuf/scikit-ds/internal/loader"
	"github.com/peekknuf/scikit-ds/internal/profiler"
	"github.com/peekknuf/scikit-ds/internal/ui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// dataExtensions are the file types directory runs pick up.
var dataExtensions = []string{"csv", "tsv", "txt", "json", "parquet"}

var (
	describeWorkers   int
	outputFile        string
	describeRecursive bool
)

type DescribeResult struct {
	Path    string
	Size    int64
	Profile *profiler.Profile
	Error   error
}

var describeCmd = &cobra.Command{
	Use:   "describe [file or directory]",
	Short: "Generate per-column statistics for data files",
	Long: `Generate pandas-describe style statistics: count, nulls, unique values,
top value, mean, std and quartiles for every column.

Examples:
  scikit-ds describe file.csv                        # Single file
  scikit-ds describe s3://bucket/data.parquet        # Object in S3
  scikit-ds describe /data/directory/ --recursive    # Directory processing
  scikit-ds describe /data/directory/ --workers 4    # Limit parallelism
  scikit-ds describe file.csv --output results.txt   # Save output
  scikit-ds describe --query "select * from orders" --sql-driver postgres --sql-dsn "..."`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		if sqlQuery != "" {
			df, source, err := loadData(ctx, args)
			if err != nil {
				return err
			}
			p, err := profiler.ProfileFrame(source, df)
			if err != nil {
				return err
			}
			return outputResults([]DescribeResult{{Path: source, Profile: p}}, time.Since(startTime))
		}

		if len(args) == 0 {
			return fmt.Errorf("please specify a file or directory to describe")
		}
		targetPath := args[0]

		if loader.IsS3URL(targetPath) {
			return describeSingleFile(ctx, targetPath, 0)
		}

		fileInfo, err := os.Stat(targetPath)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", targetPath, err)
		}
		if fileInfo.IsDir() {
			return describeDirectory(ctx, targetPath)
		}
		return describeSingleFile(ctx, targetPath, fileInfo.Size())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().IntVar(&describeWorkers, "workers", 0,
		"Number of parallel workers (default: workers from config)")
	describeCmd.Flags().StringVar(&outputFile, "output", "",
		"Output file to save results (default: stdout)")
	describeCmd.Flags().BoolVar(&describeRecursive, "recursive", false,
		"Process directories recursively")
}

func describeSingleFile(ctx context.Context, path string, size int64) error {
	startTime := time.Now()

	if loader.DetectFormat(path) == loader.FormatUnknown {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	progressBar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][reset] Describing %s...", filepath.Base(path))),
		progressbar.OptionSetWidth(20),
	)

	result := processFileDescribe(ctx, connectors.FileMeta{Path: path, Size: size}, progressBar)
	progressBar.Finish()
	fmt.Fprintln(os.Stderr)

	if result.Error != nil {
		return result.Error
	}
	return outputResults([]DescribeResult{result}, time.Since(startTime))
}

func describeDirectory(ctx context.Context, dirPath string) error {
	options := connectors.DiscoveryOptions{
		Recursive: describeRecursive || appConfig.Recursive,
	}

	files, fileCount, err := connectors.DiscoverFiles(dirPath, dataExtensions, options)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	if fileCount == 0 {
		fmt.Printf("No data files found in %s\n", dirPath)
		return nil
	}

	fmt.Printf("Found %s data files (%s)\n",
		ui.InfoColor(humanize.Comma(int64(fileCount))),
		humanize.Bytes(uint64(connectors.TotalSize(files))))

	progressBar := progressbar.NewOptions(fileCount,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Processing files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
	)

	startTime := time.Now()
	results := processFilesParallel(ctx, files, workerCount(), progressBar)
	progressBar.Finish()
	fmt.Fprintln(os.Stderr)

	return outputResults(results, time.Since(startTime))
}

// workerCount resolves the --workers flag against the config, capped at
// three workers per CPU.
func workerCount() int {
	workers := describeWorkers
	if workers <= 0 {
		workers = appConfig.Workers
	}
	maxWorkers := runtime.NumCPU() * 3
	if maxWorkers > 32 {
		maxWorkers = 32
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func processFilesParallel(ctx context.Context, files []connectors.FileMeta, workers int, progressBar *progressbar.ProgressBar) []DescribeResult {
	semaphore := make(chan struct{}, workers)
	results := make(chan DescribeResult, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		if file.IsDir {
			continue
		}

		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results <- processFileDescribe(ctx, f, progressBar)
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []DescribeResult
	for result := range results {
		allResults = append(allResults, result)
	}
	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Path < allResults[j].Path
	})
	return allResults
}

func processFileDescribe(ctx context.Context, file connectors.FileMeta, progressBar *progressbar.ProgressBar) DescribeResult {
	p, err := profiler.ProfileFile(ctx, file.Path, appConfig.LoaderOptions())
	progressBar.Add(1)
	return DescribeResult{
		Path:    file.Path,
		Size:    file.Size,
		Profile: p,
		Error:   err,
	}
}

func qualityLabel(nullRate float64) string {
	switch {
	case nullRate > 0.25:
		return "Poor"
	case nullRate > 0.10:
		return "Fair"
	default:
		return "Good"
	}
}

func outputResults(results []DescribeResult, totalTime time.Duration) error {
	var output bytes.Buffer

	var ok []DescribeResult
	for _, result := range results {
		if result.Error != nil {
			log.Printf("Failed to process %s: %v", result.Path, result.Error)
			continue
		}
		ok = append(ok, result)
	}

	var totalRows, totalCols, totalNulls, numericCols int
	for _, result := range ok {
		p := result.Profile
		totalRows += p.RowCount
		totalCols += len(p.Columns)
		totalNulls += p.NullCount()
		numericCols += p.NumericColumns()
	}

	output.WriteString("=== DATA QUALITY SUMMARY ===\n")
	fmt.Fprintf(&output, "Total files processed: %d\n", len(ok))
	fmt.Fprintf(&output, "Total processing time: %v\n", totalTime.Round(time.Millisecond))
	fmt.Fprintf(&output, "Total rows processed: %s\n", humanize.Comma(int64(totalRows)))
	fmt.Fprintf(&output, "Total columns analyzed: %d\n", totalCols)
	if cells := totalRows * totalCols; len(ok) == 1 && cells > 0 {
		fmt.Fprintf(&output, "Data completeness: %.1f%%\n", 100.0-float64(totalNulls)/float64(cells)*100.0)
	}
	fmt.Fprintf(&output, "Numeric columns: %d, Other columns: %d\n\n", numericCols, totalCols-numericCols)

	if len(ok) > 1 {
		output.WriteString("=== PER-FILE ANALYSIS ===\n")
		writeFileSummary(&output, ok)
		output.WriteString("\n")
	}

	for _, result := range ok {
		p := result.Profile
		fmt.Fprintf(&output, "=== %s ===\n", filepath.Base(result.Path))
		fmt.Fprintf(&output, "Rows: %s | Columns: %d | Null Rate: %.1f%% | Duplicate Rows: %d | Type Consistency: %.2f\n",
			humanize.Comma(int64(p.RowCount)), len(p.Columns),
			p.Quality.NullPercentage*100, p.Quality.DuplicateRows, p.Quality.TypeConsistency)
		writeDescribeTable(&output, p)
		output.WriteString("\n")
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, output.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write to output file %s: %w", outputFile, err)
		}
		fmt.Printf("Results saved to %s\n", outputFile)
		return nil
	}
	_, err := io.Copy(os.Stdout, &output)
	return err
}

func writeFileSummary(w io.Writer, results []DescribeResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Size", "Rows", "Columns", "Null Rate", "Process Time", "Data Quality"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	for _, result := range results {
		p := result.Profile
		name := filepath.Base(result.Path)
		if len(name) > 37 {
			name = name[:34] + "..."
		}
		table.Append([]string{
			name,
			humanize.Bytes(uint64(result.Size)),
			humanize.Comma(int64(p.RowCount)),
			strconv.Itoa(len(p.Columns)),
			fmt.Sprintf("%.1f%%", p.Quality.NullPercentage*100),
			p.ProcessingTime.Round(time.Millisecond).String(),
			qualityLabel(p.Quality.NullPercentage),
		})
	}
	table.Render()
}

func writeDescribeTable(w io.Writer, p *profiler.Profile) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"column", "type", "count", "nulls", "unique", "top", "freq",
		"mean", "std", "min", "25%", "50%", "75%", "max"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, c := range p.Columns {
		row := []string{c.Name, c.Type, strconv.Itoa(c.Count), strconv.Itoa(c.NullCount),
			strconv.Itoa(c.DistinctCount), truncate(c.Top, 24), strconv.Itoa(c.Freq)}
		if c.Numeric() {
			row = append(row, formatFloat(c.Mean), formatFloat(c.Std), c.Min,
				formatFloat(c.Q25), formatFloat(c.Q50), formatFloat(c.Q75), c.Max)
		} else {
			row = append(row, "", "", truncate(c.Min, 24), "", "", "", truncate(c.Max, 24))
		}
		table.Append(row)
	}
	table.Render()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
