package commands

import (
	"github.com/spf13/cobra"

	"github.com/astridej/smithy4s"
	"github.com/astridej/smithy4s/internal/output"
)

// RootCmd creates and returns the root command for the smithy4s CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "smithy4s",
		Short: "Multi-target code generation for Smithy models",
		Long: `smithy4s orchestrates code generation over resolved Smithy models.

Given model documents and dependency artifacts it:
• Resolves which namespaces are eligible for generation
• Skips namespaces already generated by upstream artifacts
• Fans out over source, OpenAPI and binary-schema pipelines
• Commits every artifact in one idempotent filesystem write`,
		Version: smithy4s.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
