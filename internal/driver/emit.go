package driver

import (
	"fmt"
	goformat "go/format"
	"sort"
	"strings"

	"mview/internal/ast"
	"mview/internal/codegen"
)

// header marks generated files; tooling and humans both key off it.
const header = "// Code generated by mview; DO NOT EDIT.\n"

type emitMeta struct {
	pkg      string
	funcName string
}

// emitFile assembles the generated Go file around the lowered expression and
// runs it through go/format so output is always canonical.
//
// Recognized //mv: directives:
//
//	//mv:package name           package clause
//	//mv:import path            extra import (repeatable)
//	//mv:func Name(args ...)    constructor signature
func emitFile(doc *ast.Document, lowered codegen.Result, meta emitMeta) ([]byte, error) {
	pkg := meta.pkg
	signature := meta.funcName + "()"
	extraImports := []string{}

	for _, d := range doc.Directives {
		switch d.Name {
		case "package":
			pkg = d.Payload
		case "import":
			extraImports = append(extraImports, fmt.Sprintf("%q", strings.Trim(d.Payload, `"`)))
		case "func":
			signature = d.Payload
		}
	}
	if pkg == "" {
		pkg = "views"
	}

	imports := map[string]bool{codegen.ImportGomponents: true}
	for _, imp := range lowered.Imports {
		imports[imp] = true
	}
	for _, imp := range extraImports {
		imports[imp] = true
	}
	lines := make([]string, 0, len(imports))
	for imp := range imports {
		lines = append(lines, imp)
	}
	sort.Strings(lines)

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\npackage ")
	sb.WriteString(pkg)
	sb.WriteString("\n\nimport (\n")
	for _, imp := range lines {
		sb.WriteString("\t")
		sb.WriteString(imp)
		sb.WriteString("\n")
	}
	sb.WriteString(")\n\nfunc ")
	sb.WriteString(signature)
	sb.WriteString(" g.Node {\n\treturn ")
	sb.WriteString(lowered.Expr)
	sb.WriteString("\n}\n")

	return goformat.Source([]byte(sb.String()))
}
