package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lumina/internal/devserver"
	"lumina/internal/driver"
	"lumina/internal/project"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] [dir]",
	Short: "Serve a Lumina project with rebuild on change",
	Long: `Serve builds the project, serves the output directory over HTTP, and
rebuilds whenever a source file changes. The address and directories come
from lumina.toml when present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from lumina.toml, else 127.0.0.1:3000)")
	serveCmd.Flags().StringP("out", "o", "", "output directory")
	serveCmd.Flags().Duration("poll", time.Second, "source polling interval")
}

func runServe(cmd *cobra.Command, args []string) error {
	srcDir, outDir, err := resolveBuildPaths(cmd, args)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	poll, _ := cmd.Flags().GetDuration("poll")

	if addr == "" {
		wd, _ := os.Getwd()
		if manifest, found, err := project.LoadFrom(wd); err == nil && found {
			addr = manifest.Config.Serve.Addr
		}
	}

	srv, err := devserver.New(devserver.Options{
		Addr:     addr,
		SrcDir:   srcDir,
		OutDir:   outDir,
		Interval: poll,
		Build: driver.BuildOptions{
			MaxDiagnostics: maxDiagnostics(cmd),
		},
		Logf: log.New(cmd.ErrOrStderr(), "", log.Ltime).Printf,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
