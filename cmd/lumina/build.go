package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"lumina/internal/buildpipeline"
	"lumina/internal/driver"
	"lumina/internal/project"
	"lumina/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Compile Lumina sources into HTML, JavaScript and CSS",
	Long: `Build compiles a .lum file or every .lum file in a directory. Without an
argument the entry from the nearest lumina.toml is used, falling back to the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default from lumina.toml, else ./dist)")
	buildCmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "number of files compiled in parallel")
	buildCmd.Flags().Bool("no-cache", false, "compile every file even if cached")
	buildCmd.Flags().String("emit", "all", "artifacts to write (html|js|css|all)")
	buildCmd.Flags().Bool("no-progress", false, "disable the interactive progress view")
}

func runBuild(cmd *cobra.Command, args []string) error {
	srcDir, outDir, err := resolveBuildPaths(cmd, args)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	emit, _ := cmd.Flags().GetString("emit")
	switch emit {
	case "html", "js", "css", "all":
	default:
		return fmt.Errorf("unknown emit target: %s", emit)
	}

	opts := driver.BuildOptions{
		OutDir:         outDir,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics(cmd),
		Emit:           emit,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("lumina")
		if err == nil {
			opts.Cache = cache
		}
	}

	info, err := os.Stat(srcDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return buildSingleFile(cmd, srcDir, outDir, opts)
	}

	start := time.Now()
	var res *driver.BuildResult
	interactive := !noProgress && !quiet(cmd) && isTerminal(os.Stdout)
	if interactive {
		res, err = buildWithProgress(cmd, srcDir, opts)
	} else {
		res, err = driver.CompileDir(context.Background(), srcDir, opts)
	}
	if err != nil {
		return err
	}

	errs := 0
	for _, fr := range res.Results {
		if printDiagnostics(cmd, fr.Bag, fr.FileSet) {
			errs += countErrors(fr.Bag)
		}
	}
	if errs > 0 {
		return errCompileFailed(errs)
	}

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "built %d files into %s in %s\n",
			len(res.Files), outDir, time.Since(start).Round(time.Millisecond))
	}
	if showTimings(cmd) {
		printBuildTimings(cmd, res)
	}
	return nil
}

func buildWithProgress(cmd *cobra.Command, srcDir string, opts driver.BuildOptions) (*driver.BuildResult, error) {
	files, err := driver.ListSourceFiles(srcDir)
	if err != nil {
		return nil, err
	}

	sink := buildpipeline.NewChanSink(len(files) * 8)
	opts.Sink = sink

	type outcome struct {
		res *driver.BuildResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := driver.CompileDir(context.Background(), srcDir, opts)
		sink.Close()
		done <- outcome{res, err}
	}()

	if err := ui.RunBuildUI("building "+srcDir, files, sink.C); err != nil {
		// A broken terminal should not lose the build result.
		fmt.Fprintf(os.Stderr, "progress view failed: %v\n", err)
	}
	out := <-done
	return out.res, out.err
}

func buildSingleFile(cmd *cobra.Command, path, outDir string, opts driver.BuildOptions) error {
	res, err := driver.Compile(path, driver.CompileOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		Cache:          opts.Cache,
	})
	if err != nil {
		return err
	}
	if printDiagnostics(cmd, res.Bag, res.FileSet) {
		return errCompileFailed(countErrors(res.Bag))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := driver.WriteOutput(outDir, path, res, opts.Emit); err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "built %s into %s\n", path, outDir)
	}
	if showTimings(cmd) {
		printTimings(cmd, res.Timings)
	}
	return nil
}

// resolveBuildPaths decides what to compile and where to write, preferring
// explicit flags, then the manifest, then conventions.
func resolveBuildPaths(cmd *cobra.Command, args []string) (src, out string, err error) {
	out, _ = cmd.Flags().GetString("out")

	if len(args) == 1 {
		src = args[0]
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	manifest, found, err := project.LoadFrom(wd)
	if err != nil {
		return "", "", err
	}
	if found {
		if src == "" {
			src = manifest.EntryPath()
		}
		if out == "" {
			out = manifest.OutPath()
		}
	}
	if src == "" {
		src = wd
	}
	if out == "" {
		out = "dist"
	}
	return src, out, nil
}

func printBuildTimings(cmd *cobra.Command, res *driver.BuildResult) {
	for _, fr := range res.Results {
		if fr.CacheHit {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: cached\n", fr.Path)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", fr.Path)
		printTimings(cmd, fr.Timings)
	}
}

func printTimings(cmd *cobra.Command, t buildpipeline.Timings) {
	stages := []buildpipeline.Stage{
		buildpipeline.StageParse,
		buildpipeline.StageCheck,
		buildpipeline.StageGenerate,
		buildpipeline.StageWrite,
	}
	for _, st := range stages {
		if d := t.Duration(st); d > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-9s %s\n", st, d.Round(time.Microsecond))
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %-9s %s\n", "total", t.Total().Round(time.Microsecond))
}
