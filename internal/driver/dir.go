package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lumina/internal/buildpipeline"
)

// BuildOptions configures a directory build.
type BuildOptions struct {
	// OutDir receives the generated artifacts. Empty means do not write.
	OutDir string
	// Jobs caps the number of files compiled concurrently; values below 1
	// mean one worker per file.
	Jobs int
	// Sink receives progress events. Nil means no progress reporting.
	Sink           buildpipeline.ProgressSink
	MaxDiagnostics int
	Cache          *DiskCache
	// Emit selects which artifacts to write: "html", "js", "css" or
	// "all" (the default when empty).
	Emit string
}

// BuildResult aggregates the per-file outcomes of a directory build, in
// the same sorted order as the input files.
type BuildResult struct {
	Files   []string
	Results []*CompileResult
}

// Errors reports whether any file failed to parse or type check.
func (r *BuildResult) Errors() bool {
	for _, res := range r.Results {
		if res.Failed || !res.OK {
			return true
		}
	}
	return false
}

// ListSourceFiles returns the .lum files directly under dir, sorted, so
// builds are deterministic regardless of readdir order.
func ListSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lum") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every .lum file under dir in parallel and, when
// OutDir is set, writes the html/js/css artifacts next to each other named
// after the source file. The first I/O error cancels the remaining work;
// compile diagnostics do not, they are collected per file.
func CompileDir(ctx context.Context, dir string, opts BuildOptions) (*BuildResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lum files in %s", dir)
	}

	sink := opts.Sink
	if sink == nil {
		sink = buildpipeline.NopSink{}
	}
	for _, path := range files {
		sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusQueued})
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, err
		}
	}

	results := make([]*CompileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs < 1 || jobs > len(files) {
		jobs = len(files)
	}
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := compileOne(path, opts, sink)
				if err != nil {
					sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: err})
					return err
				}
				results[i] = res
				return nil
			}
		}(i, path))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BuildResult{Files: files, Results: results}, nil
}

func compileOne(path string, opts BuildOptions, sink buildpipeline.ProgressSink) (*CompileResult, error) {
	sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})

	res, err := Compile(path, CompileOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		Cache:          opts.Cache,
	})
	if err != nil {
		return nil, err
	}

	if res.Failed {
		sink.OnEvent(buildpipeline.Event{
			File:    path,
			Stage:   buildpipeline.StageParse,
			Status:  buildpipeline.StatusError,
			Elapsed: res.Timings.Duration(buildpipeline.StageParse),
		})
		return res, nil
	}
	sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone, Elapsed: res.Timings.Duration(buildpipeline.StageParse)})

	checkStatus := buildpipeline.StatusDone
	if !res.OK {
		checkStatus = buildpipeline.StatusError
	}
	sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageCheck, Status: checkStatus, Elapsed: res.Timings.Duration(buildpipeline.StageCheck)})
	sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageGenerate, Status: buildpipeline.StatusDone, Elapsed: res.Timings.Duration(buildpipeline.StageGenerate)})

	if opts.OutDir != "" && res.OK {
		start := time.Now()
		if err := WriteOutput(opts.OutDir, path, res, opts.Emit); err != nil {
			sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusError, Err: err})
			return nil, err
		}
		res.Timings.Set(buildpipeline.StageWrite, time.Since(start))
		sink.OnEvent(buildpipeline.Event{File: path, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Elapsed: res.Timings.Duration(buildpipeline.StageWrite)})
	}
	return res, nil
}

// WriteOutput writes the artifacts for one compiled file into outDir using
// the source file's base name. emit narrows the set to one of "html", "js"
// or "css"; empty and "all" write everything.
func WriteOutput(outDir, srcPath string, res *CompileResult, emit string) error {
	base := strings.TrimSuffix(filepath.Base(srcPath), ".lum")
	pairs := []struct {
		kind, ext, content string
	}{
		{"html", ".html", res.Output.HTML},
		{"js", ".js", res.Output.JS},
		{"css", ".css", res.Output.CSS},
	}
	for _, p := range pairs {
		if emit != "" && emit != "all" && emit != p.kind {
			continue
		}
		if err := os.WriteFile(filepath.Join(outDir, base+p.ext), []byte(p.content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
