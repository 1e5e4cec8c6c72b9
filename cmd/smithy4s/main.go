package main

import (
	"os"

	"github.com/astridej/smithy4s/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.DumpModelCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
