package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/driver"
	"lumina/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build artifacts and the build cache",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache-only", false, "drop the build cache but keep output files")
}

func runClean(cmd *cobra.Command, args []string) error {
	cacheOnly, _ := cmd.Flags().GetBool("cache-only")

	cache, err := driver.OpenDiskCache("lumina")
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	if !quiet(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), "build cache dropped")
	}
	if cacheOnly {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, found, err := project.LoadFrom(wd)
	if err != nil || !found {
		return err
	}
	out := manifest.OutPath()
	if err := os.RemoveAll(out); err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", out)
	}
	return nil
}
