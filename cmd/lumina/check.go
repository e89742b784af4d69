package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumina/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.lum",
	Short: "Type-check a Lumina source file without generating code",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	result, err := driver.Check(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Failed || !result.OK {
		return errCompileFailed(countErrors(result.Bag))
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no errors\n", args[0])
	}
	return nil
}
