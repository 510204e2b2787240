package driver

import (
	"path/filepath"
	"strings"

	"mview/internal/ast"
	"mview/internal/codegen"
	"mview/internal/diag"
	"mview/internal/resolve"
	"mview/internal/source"
)

// ExpandOptions configures one expansion.
type ExpandOptions struct {
	MaxDiagnostics int
	Target         codegen.Target
	Package        string // fallback when no //mv:package directive
}

// ExpandResult is one expanded view file. Code is nil when the bag holds
// errors; a failed expansion never emits partial output.
type ExpandResult struct {
	FileSet *source.FileSet
	File    *source.File
	Doc     *ast.Document
	Bag     *diag.Bag
	Code    []byte
	OutPath string
}

// Expand compiles one .mv file into Go source for the sibling .mv.go file.
func Expand(path string, opts ExpandOptions) (*ExpandResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ExpandFile(fs, fs.Get(fileID), opts)
}

// ExpandFile is Expand over an already-loaded file, shared with the parallel
// directory walk and with tests that use virtual files.
func ExpandFile(fs *source.FileSet, file *source.File, opts ExpandOptions) (*ExpandResult, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &ExpandResult{
		FileSet: fs,
		File:    file,
		Bag:     bag,
		OutPath: OutPath(file.Path),
	}

	doc, err := parseFile(file, bag, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	res.Doc = doc

	rep := diag.BagReporter{Bag: bag}
	info := resolve.Resolve(doc, resolve.Options{Reporter: rep})
	if bag.HasErrors() {
		return res, nil
	}

	lowered, ok := codegen.Lower(doc, info, file, codegen.Options{
		Target:   opts.Target,
		Reporter: rep,
	})
	if !ok || bag.HasErrors() {
		return res, nil
	}

	code, err := emitFile(doc, lowered, emitMeta{
		pkg:      opts.Package,
		funcName: FuncNameFor(file.Path),
	})
	if err != nil {
		diag.ReportError(rep, diag.GenMalformedExpression, doc.Span,
			"generated file does not format: "+err.Error()).Emit()
		return res, nil
	}
	res.Code = code
	return res, nil
}

// OutPath maps a view path onto its generated sibling: views/home.mv ->
// views/home.mv.go.
func OutPath(path string) string {
	return path + ".go"
}

// FuncNameFor derives the exported view constructor name from the file name:
// views/user-card.mv -> UserCard.
func FuncNameFor(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	if sb.Len() == 0 {
		return "View"
	}
	return sb.String()
}
