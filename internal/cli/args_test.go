package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/pkg/csvload"
)

func TestRequireCSVAndTable(t *testing.T) {
	cmd := &cobra.Command{
		Use: "create-table <csv_path> <table_name>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireCSVAndTable(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !errors.Is(err, csvload.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got: %v", err)
		}
		if !strings.Contains(err.Error(), "<csv_path> <table_name>") {
			t.Errorf("expected both arguments named, got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := csvload.ExitCodeForError(err); code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
	})

	t.Run("names the table when only the path is given", func(t *testing.T) {
		err := RequireCSVAndTable(cmd, []string{"people.csv"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <table_name>") {
			t.Errorf("expected '<table_name>' to be named, got: %s", err.Error())
		}
	})

	t.Run("returns nil when both args provided", func(t *testing.T) {
		if err := RequireCSVAndTable(cmd, []string{"people.csv", "people"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireCSVAndTable(cmd, []string{"a", "b", "c"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 2 arg") {
			t.Errorf("expected error to contain 'accepts 2 arg', got: %s", err.Error())
		}
	})
}
