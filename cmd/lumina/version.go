package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the lumina build fingerprint",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit hash and build date")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	full, _ := cmd.Flags().GetBool("full")

	switch format {
	case "json":
		payload := versionPayload{Tool: "lumina", Version: version.Version}
		if full {
			payload.GitCommit = version.GitCommit
			payload.BuildDate = version.BuildDate
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		v := version.Version
		if useColor(cmd, os.Stdout) {
			v = version.Colored()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lumina %s\n", v)
		if full {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\ndate:   %s\n", version.GitCommit, version.BuildDate)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
