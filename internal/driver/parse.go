package driver

import (
	"fortio.org/safecast"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/parser"
	"mview/internal/source"
	"mview/internal/structure"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Doc     *ast.Document
	Bag     *diag.Bag
}

// Parse runs the front end (lex, structure, parse) on one file.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	doc, err := parseFile(file, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Doc:     doc,
		Bag:     bag,
	}, nil
}

func parseFile(file *source.File, bag *diag.Bag, maxDiagnostics int) (*ast.Document, error) {
	tokens := tokenizeFile(file, bag)
	rep := diag.BagReporter{Bag: bag}
	stream := structure.Build(file, tokens, rep)

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	doc := parser.Parse(stream, tokens, parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
	})
	return doc, nil
}
