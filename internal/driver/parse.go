package driver

import (
	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/parser"
	"lumina/internal/source"
)

// ParseResult carries the parse outcome for one file. Program is nil when
// Failed is true.
type ParseResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Program *ast.Program
	Failed  bool
	Bag     *diag.Bag
}

// Parse loads path, lexes and parses it.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	res := parser.ParseFile(fs, fileID, parser.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &ParseResult{
		FileSet: fs,
		FileID:  fileID,
		Program: res.Program,
		Failed:  res.Failed,
		Bag:     bag,
	}, nil
}
