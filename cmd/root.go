package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/peekknuf/scikit-ds/internal/config"
	"github.com/peekknuf/scikit-ds/internal/loader"
	"github.com/spf13/cobra"
)

// Version of the scikit-ds tool.
const Version = "0.0.1"

var (
	cfgFile   string
	sqlDriver string
	sqlDSN    string
	sqlQuery  string
	delimiter string

	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "scikit-ds",
	Short: "Exploratory data analysis and classifier evaluation helpers",
	Long: `Value counts, missing-value reports, duplicate detection, column
statistics and classification metrics for CSV, JSON and Parquet files,
s3:// objects and SQL queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if delimiter != "" {
			cfg.Delimiter = delimiter
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		appConfig = cfg
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file, YAML or TOML (default is $HOME/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&sqlDriver, "sql-driver", "",
		"SQL driver for --query (mysql, postgres)")
	rootCmd.PersistentFlags().StringVar(&sqlDSN, "sql-dsn", "",
		"SQL connection string for --query")
	rootCmd.PersistentFlags().StringVar(&sqlQuery, "query", "",
		"load data from this SQL query instead of a source argument")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "",
		"field delimiter for delimited text (default: detect)")
}

// loadData loads the frame a command works on: the SQL query when --query is
// set, otherwise the single source argument.
func loadData(ctx context.Context, args []string) (dataframe.DataFrame, string, error) {
	opts := appConfig.LoaderOptions()

	if sqlQuery != "" {
		driver, dsn := sqlDriver, sqlDSN
		if driver == "" {
			driver = appConfig.SQL.Driver
		}
		if dsn == "" {
			dsn = appConfig.SQL.DSN
		}
		if driver == "" || dsn == "" {
			return dataframe.DataFrame{}, "", fmt.Errorf("--query needs --sql-driver and --sql-dsn (or the sql section of the config)")
		}
		df, err := loader.LoadSQL(ctx, driver, dsn, sqlQuery, opts)
		if err != nil {
			return dataframe.DataFrame{}, "", fmt.Errorf("failed to load query: %w", err)
		}
		return df, "query", nil
	}

	if len(args) == 0 {
		return dataframe.DataFrame{}, "", fmt.Errorf("specify a file, an s3:// URL or --query")
	}
	df, err := loader.Load(ctx, args[0], opts)
	if err != nil {
		return dataframe.DataFrame{}, "", fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	return df, args[0], nil
}
