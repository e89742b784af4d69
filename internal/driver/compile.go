package driver

import (
	"time"

	"lumina/internal/ast"
	"lumina/internal/buildpipeline"
	"lumina/internal/checker"
	"lumina/internal/codegen"
	"lumina/internal/diag"
	"lumina/internal/project"
	"lumina/internal/source"
)

// CompileOptions configures a single-file compile.
type CompileOptions struct {
	MaxDiagnostics int
	// Cache, when non-nil, is consulted by content digest before running
	// the pipeline and updated after a clean compile.
	Cache *DiskCache
}

// CompileResult carries the full pipeline outcome for one file. Output is
// only meaningful when Failed is false. OK reports a clean type check;
// code is still generated for a program with type errors because the
// checker treats unresolved types as dynamic.
type CompileResult struct {
	Path     string
	FileSet  *source.FileSet
	FileID   source.FileID
	Program  *ast.Program
	Output   codegen.Output
	Failed   bool
	OK       bool
	CacheHit bool
	Bag      *diag.Bag
	Timings  buildpipeline.Timings
}

// Compile runs the whole pipeline for one file: parse, check, generate.
// A failed parse stops before codegen. Cached results are only stored for
// clean compiles, so a cache hit implies OK.
func Compile(path string, opts CompileOptions) (*CompileResult, error) {
	res := &CompileResult{Path: path}

	var digest project.Digest
	if opts.Cache != nil {
		d, err := project.DigestFile(path)
		if err != nil {
			return nil, err
		}
		digest = d
		if out, ok, err := opts.Cache.Get(digest); err == nil && ok {
			res.Output = out
			res.OK = true
			res.CacheHit = true
			res.Bag = diag.NewBag(opts.MaxDiagnostics)
			return res, nil
		}
	}

	start := time.Now()
	pr, err := Parse(path, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	res.Timings.Set(buildpipeline.StageParse, time.Since(start))

	res.FileSet = pr.FileSet
	res.FileID = pr.FileID
	res.Program = pr.Program
	res.Failed = pr.Failed
	res.Bag = pr.Bag
	if pr.Failed {
		return res, nil
	}

	start = time.Now()
	cr := checker.Check(pr.FileSet, pr.Program, checker.Options{
		Reporter: diag.BagReporter{Bag: pr.Bag},
	})
	res.OK = cr.OK
	res.Timings.Set(buildpipeline.StageCheck, time.Since(start))

	start = time.Now()
	res.Output = codegen.Generate(pr.Program)
	res.Timings.Set(buildpipeline.StageGenerate, time.Since(start))

	if opts.Cache != nil && res.OK {
		// Cache write failures are not build failures.
		_ = opts.Cache.Put(digest, res.Output)
	}
	return res, nil
}
