// Package driver wires the compiler phases together for the CLI: load a
// file into a FileSet, run lexer, parser, checker and codegen, collect
// diagnostics into bags, and fan builds out over a directory.
package driver

import (
	"lumina/internal/diag"
	"lumina/internal/lexer"
	"lumina/internal/source"
	"lumina/internal/token"
)

// TokenizeResult carries everything the CLI needs to print tokens and
// diagnostics for one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it. A lex error does not abort: the token
// stream is returned as far as it got, with the errors in Bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		FileID:  fileID,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
