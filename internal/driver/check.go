package driver

import (
	"lumina/internal/ast"
	"lumina/internal/checker"
	"lumina/internal/diag"
	"lumina/internal/source"
)

// CheckResult carries the parse and type check outcome for one file. When
// the parse failed, Checked is nil and OK is false.
type CheckResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Program *ast.Program
	Failed  bool
	OK      bool
	Bag     *diag.Bag
}

// Check loads path, parses it and runs the type checker over the result.
// Check never aborts on type errors; they all land in Bag.
func Check(path string, maxDiagnostics int) (*CheckResult, error) {
	pr, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := &CheckResult{
		FileSet: pr.FileSet,
		FileID:  pr.FileID,
		Program: pr.Program,
		Failed:  pr.Failed,
		Bag:     pr.Bag,
	}
	if pr.Failed {
		return res, nil
	}

	cr := checker.Check(pr.FileSet, pr.Program, checker.Options{
		Reporter: diag.BagReporter{Bag: pr.Bag},
	})
	res.OK = cr.OK
	return res, nil
}
