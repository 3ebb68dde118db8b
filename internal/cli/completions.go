package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// authMethods contains the --auth-method values offered by shell completion.
var authMethods = []string{"standard", "aws-iam", "google-iam", "azure-entra"}

// tlsModes contains the driver's tls parameter values.
var tlsModes = []string{"true", "false", "skip-verify", "preferred"}

func completeFrom(values []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, toComplete) {
			matches = append(matches, v)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeAuthMethods provides shell completion for --auth-method.
func completeAuthMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeFrom(authMethods, toComplete)
}

// completeTLSModes provides shell completion for --tls.
func completeTLSModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeFrom(tlsModes, toComplete)
}

// completeLoadArgs completes <csv_path> with .csv files and leaves <table_name> alone.
func completeLoadArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"csv", "tsv", "txt"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory flags.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func registerCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("auth-method", completeAuthMethods)
	_ = cmd.RegisterFlagCompletionFunc("tls", completeTLSModes)
	_ = cmd.RegisterFlagCompletionFunc("work-dir", completeDirectories)
	cmd.ValidArgsFunction = completeLoadArgs
}
