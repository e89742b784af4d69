package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/diag"
	"lumina/internal/diagfmt"
	"lumina/internal/source"
)

// useColor resolves the --color flag against the stream we write to.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func maxDiagnostics(cmd *cobra.Command) int {
	max, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 100
	}
	return max
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func showTimings(cmd *cobra.Command) bool {
	t, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return t
}

// printDiagnostics writes the bag to stderr in the pretty format. Returns
// whether any errors were present.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) bool {
	if bag.Len() == 0 {
		return false
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
	return bag.HasErrors()
}

// errCompileFailed signals a failed exit without re-printing diagnostics
// that already went to stderr.
func errCompileFailed(n int) error {
	if n == 1 {
		return fmt.Errorf("1 error")
	}
	return fmt.Errorf("%d errors", n)
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}
