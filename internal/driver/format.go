package driver

import (
	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/source"
)

// FormatResult is one file's canonical rendering.
type FormatResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Bag       *diag.Bag
	Formatted []byte
	Changed   bool
}

// Format parses one file and renders it back in canonical form. Files with
// errors are left alone: Formatted is nil so callers never rewrite a file the
// parser only partially understood.
func Format(path string, maxDiagnostics int) (*FormatResult, error) {
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

	res := &FormatResult{FileSet: fs, File: file, Bag: bag}
	if bag.HasErrors() {
		return res, nil
	}

	formatted := []byte(ast.Print(doc))
	res.Formatted = formatted
	res.Changed = string(formatted) != string(file.Content)
	return res, nil
}
