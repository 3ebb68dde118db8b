package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/internal/logging"
	"github.com/vvka-141/csvload/internal/services"
	"github.com/vvka-141/csvload/pkg/csvload"
)

const createLong = `create-table reads the header row of a CSV file and (re)creates a MySQL
table with one column per header.

The create-table command:
1. Normalizes headers (lowercase, [a-z0-9 ] only, whitespace runs become _)
2. Writes DROP TABLE IF EXISTS + CREATE TABLE to create_table.sql
3. Executes the script and removes the file

Every column gets the same type, VARCHAR(255) unless --column-type is given.

Arguments:
  csv_path      CSV file with a header row and at least one data row
  table_name    Table to drop and recreate

Examples:
  # Create the people table in mydb
  create-table ./people.csv people -d mydb

  # Create and fill it in one script
  create-table ./people.csv people -d mydb --with-data

  # Semicolon-separated input, TEXT columns
  create-table ./export.csv export --delimiter ';' --column-type TEXT`

type createFlagValues struct {
	loadFlags
	columnType string
	withData   bool
}

// NewCreateTableCommand builds the create-table root command.
func NewCreateTableCommand() *cobra.Command {
	var flags createFlagValues

	cmd := newRootCommand("create-table <csv_path> <table_name>",
		"Create a MySQL table from CSV headers", createLong)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args, &flags)
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.columnType, "column-type", "",
		"SQL type for every column (default: VARCHAR(255), or column_type in csvload.yaml)")
	cmd.Flags().BoolVar(&flags.withData, "with-data", false,
		"Append INSERT statements for the CSV rows to the script")
	registerCompletions(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, flags *createFlagValues) error {
	load, projectCfg, err := flags.resolveLoadConfig(cmd, args)
	if err != nil {
		return err
	}

	columnType := flags.columnType
	if columnType == "" && projectCfg != nil {
		columnType = projectCfg.ColumnType
	}

	config := csvload.CreateConfig{
		LoadConfig:  load,
		ColumnType:  columnType,
		IncludeData: flags.withData,
	}

	logger := logging.NewConsoleLogger(flags.verbose)
	logConnectionVerbose(logger, load.Connection)

	return runPipeline(cmd.Context(), flags.verbose, logger, "Creating table "+load.Table,
		func(ctx context.Context, logger csvload.Logger) error {
			creator := services.NewTableCreationService(connectorFactory(logger), artifactStores, logger)
			_, err := creator.CreateTable(ctx, config)
			return err
		})
}
