package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/internal/db"
	"github.com/vvka-141/csvload/internal/logging"
	"github.com/vvka-141/csvload/internal/services"
	"github.com/vvka-141/csvload/internal/tui"
	"github.com/vvka-141/csvload/pkg/csvload"
)

const commonHelp = `
Connection:
  Parameters resolve as --dsn > flags > environment > csvload.yaml > defaults.
  Environment: DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME.
  A .env file in the current directory is loaded first, then any --env-file.

Password Authentication:
  For security, password is NOT accepted as a CLI flag. Use one of:
    1. $DB_PASSWORD environment variable (or a .env file)
    2. --dsn "user:pass@tcp(host:3306)/db"

Exit Codes:
  0  - Success
  1  - General error or missing argument
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  13 - SQL execution failed
  14 - Intermediate file not found
  15 - CSV has no columns or no rows`

// connectorFactory builds connectors for a run. Tests replace it.
var connectorFactory = db.Factory

// artifactStores places intermediate files. Tests replace it.
var artifactStores services.StoreFactory = services.OSStores

func newRootCommand(use, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		Long:         long + "\n" + commonHelp,
		Args:         RequireCSVAndTable,
		SilenceUsage: true,
	}
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs cmd with the process arguments.
func Execute(cmd *cobra.Command) error {
	return execute(cmd, os.Args[1:])
}

func execute(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] == "--version" {
		printVersionInfo(cmd.OutOrStdout(), cmd.Name())
		return nil
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

// pipelineFunc is one service call, given the run context and the logger to use.
type pipelineFunc func(ctx context.Context, logger csvload.Logger) error

// runPipeline runs fn under SIGINT/SIGTERM cancellation. Interactive
// non-verbose runs show a spinner and replay log lines once it stops.
func runPipeline(ctx context.Context, verbose bool, logger csvload.Logger, message string, fn pipelineFunc) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if verbose || !tui.IsInteractive() {
		return fn(ctx, logger)
	}

	buffered := logging.NewBufferedLogger(logger)
	err := tui.RunWithSpinner(ctx, message, func(ctx context.Context) error {
		return fn(ctx, buffered)
	})
	buffered.Flush()
	return err
}
