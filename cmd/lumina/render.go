package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lumina/internal/driver"
	"lumina/internal/ssr"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] file.lum [component]",
	Short: "Render a component to static HTML",
	Long: `Render evaluates a component server-side and prints the resulting HTML
fragment. Without a component name the first component in the file is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringArray("prop", nil, "component prop as name=value (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	result, err := driver.Check(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if printDiagnostics(cmd, result.Bag, result.FileSet) {
		return errCompileFailed(countErrors(result.Bag))
	}

	component := ""
	if len(args) == 2 {
		component = args[1]
	}

	rawProps, _ := cmd.Flags().GetStringArray("prop")
	props, err := parseProps(rawProps)
	if err != nil {
		return err
	}

	html, err := ssr.Render(result.Program, component, props)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), html)
	return nil
}

// parseProps turns name=value pairs into prop values, recognizing numbers
// and booleans so `--prop count=3` arrives as a number, not a string.
func parseProps(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid prop %q: want name=value", pair)
		}
		switch {
		case value == "true":
			props[name] = true
		case value == "false":
			props[name] = false
		default:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				props[name] = n
			} else {
				props[name] = value
			}
		}
	}
	return props, nil
}
