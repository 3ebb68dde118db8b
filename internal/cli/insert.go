package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/internal/logging"
	"github.com/vvka-141/csvload/internal/services"
	"github.com/vvka-141/csvload/pkg/csvload"
)

const insertLong = `insert-table replaces the contents of a MySQL table with the rows of a CSV file.

The insert-table command:
1. Reads the CSV with normalized headers (same rules as create-table)
2. Writes the rows to output.json and reads them back
3. Truncates the table and inserts every row, then removes output.json

The column list is taken from the first row. Missing and empty values are
stored as NULL. Rows are sent in multi-row INSERT statements sized to stay
under MySQL's placeholder limit, or --batch-size rows when given.

Arguments:
  csv_path      CSV file with a header row and at least one data row
  table_name    Existing table whose columns match the normalized headers

Examples:
  # Load people.csv into the people table
  insert-table ./people.csv people -d mydb

  # Connect with a DSN and keep output.json for inspection
  insert-table ./people.csv people --dsn "app@tcp(db:3306)/mydb" --keep-artifacts`

type insertFlagValues struct {
	loadFlags
	batchSize int
}

// NewInsertTableCommand builds the insert-table root command.
func NewInsertTableCommand() *cobra.Command {
	var flags insertFlagValues

	cmd := newRootCommand("insert-table <csv_path> <table_name>",
		"Load CSV rows into a MySQL table", insertLong)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runInsert(cmd, args, &flags)
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flags.batchSize, "batch-size", 0,
		"Maximum rows per INSERT statement (default: as many as fit in 65535 placeholders)")
	registerCompletions(cmd)

	return cmd
}

func runInsert(cmd *cobra.Command, args []string, flags *insertFlagValues) error {
	load, projectCfg, err := flags.resolveLoadConfig(cmd, args)
	if err != nil {
		return err
	}

	batchSize := flags.batchSize
	if !cmd.Flags().Changed("batch-size") && projectCfg != nil {
		batchSize = projectCfg.BatchSize
	}

	config := csvload.InsertConfig{
		LoadConfig: load,
		BatchSize:  batchSize,
	}

	logger := logging.NewConsoleLogger(flags.verbose)
	logConnectionVerbose(logger, load.Connection)

	return runPipeline(cmd.Context(), flags.verbose, logger, "Inserting rows into "+load.Table,
		func(ctx context.Context, logger csvload.Logger) error {
			inserter := services.NewRowInsertionService(connectorFactory(logger), artifactStores, logger)
			_, err := inserter.InsertRows(ctx, config)
			return err
		})
}
