package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/diagfmt"
	"lumina/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lum",
	Short: "Parse a Lumina source file and dump the AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Failed {
		return errCompileFailed(countErrors(result.Bag))
	}

	switch format {
	case "tree":
		return diagfmt.DumpASTTree(os.Stdout, result.Program)
	case "json":
		return diagfmt.DumpASTJSON(os.Stdout, result.Program)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
