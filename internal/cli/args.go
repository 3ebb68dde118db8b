package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// RequireCSVAndTable validates that exactly <csv_path> and <table_name> are provided.
// Returns a helpful error message with usage and examples if either is missing.
func RequireCSVAndTable(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		missing := "<csv_path> <table_name>"
		if len(args) == 1 {
			missing = "<table_name>"
		}
		return fmt.Errorf(`%w: %s

Usage: %s

Example:
  %s ./people.csv people -d mydb`, csvload.ErrMissingArgument, missing, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}
