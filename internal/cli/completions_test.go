package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/pkg/csvload"
)

func TestCompleteAuthMethods(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all methods for empty input", func(t *testing.T) {
		completions, directive := completeAuthMethods(cmd, nil, "")
		if len(completions) != len(authMethods) {
			t.Errorf("expected %d completions, got %d", len(authMethods), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeAuthMethods(cmd, nil, "a")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions (aws-iam, azure-entra), got %v", completions)
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeAuthMethods(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})

	t.Run("every value parses", func(t *testing.T) {
		for _, m := range authMethods {
			if _, err := csvload.ParseAuthMethod(m); err != nil {
				t.Errorf("%s: %v", m, err)
			}
		}
	})
}

func TestCompleteTLSModes(t *testing.T) {
	completions, _ := completeTLSModes(&cobra.Command{}, nil, "s")
	if len(completions) != 1 || completions[0] != "skip-verify" {
		t.Errorf("expected [skip-verify], got %v", completions)
	}
}

func TestCompleteLoadArgs(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("csv files for first arg", func(t *testing.T) {
		exts, directive := completeLoadArgs(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterFileExt {
			t.Errorf("expected ShellCompDirectiveFilterFileExt, got %v", directive)
		}
		if len(exts) == 0 || exts[0] != "csv" {
			t.Errorf("expected csv extension first, got %v", exts)
		}
	})

	t.Run("nothing for table name", func(t *testing.T) {
		_, directive := completeLoadArgs(cmd, []string{"people.csv"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}

func TestCompleteDirectories(t *testing.T) {
	_, directive := completeDirectories(&cobra.Command{}, nil, "")
	if directive != cobra.ShellCompDirectiveFilterDirs {
		t.Errorf("expected ShellCompDirectiveFilterDirs, got %v", directive)
	}
}
