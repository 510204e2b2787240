// Package codegen lowers a resolved document into a single Go expression that
// evaluates to a g.Node. The expression is built as a go/ast tree and printed
// with go/printer, so emitted code is always gofmt-shaped. Embedded host
// expressions are syntax-checked with go/parser before they are spliced in.
package codegen

import (
	"bytes"
	goast "go/ast"
	goprinter "go/printer"
	gotoken "go/token"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/resolve"
	"mview/internal/source"
)

// Target selects the constructor vocabulary of the emitted expression.
type Target uint8

const (
	// TargetNamed emits html.Div, html.Class and friends where a named
	// constructor exists, falling back to g.El / g.Attr.
	TargetNamed Target = iota
	// TargetGeneric emits only g.El / g.Attr calls.
	TargetGeneric
)

// Options configures one lowering.
type Options struct {
	Target   Target
	Reporter diag.Reporter
}

// Import paths the generated expression may reference. The driver puts the
// used subset into the generated file's import block.
const (
	ImportGomponents = `g "maragu.dev/gomponents"`
	ImportHTML       = `"maragu.dev/gomponents/html"`
	ImportRuntime    = `"mview/pkg/mviewrt"`
	ImportFmt        = `"fmt"`
)

// Result is one lowered document.
type Result struct {
	Expr    string   // Go expression evaluating to g.Node
	Imports []string // import lines the expression needs
}

type lowerer struct {
	file *source.File
	info *resolve.Info
	opts Options

	uses   map[string]bool
	failed bool
}

// Lower emits the expression for doc. It reports GenMalformedExpression for
// embedded expressions that do not parse and returns ok=false when any were
// found; the partial result is then only good for debugging output.
func Lower(doc *ast.Document, info *resolve.Info, file *source.File, opts Options) (Result, bool) {
	lw := &lowerer{file: file, info: info, opts: opts, uses: map[string]bool{}}

	expr := lw.children(doc.Children)
	var buf bytes.Buffer
	fset := gotoken.NewFileSet()
	if err := goprinter.Fprint(&buf, fset, expr); err != nil {
		diag.ReportError(opts.Reporter, diag.GenMalformedExpression, doc.Span,
			"cannot print generated expression: "+err.Error()).Emit()
		return Result{}, false
	}

	return Result{Expr: buf.String(), Imports: lw.imports()}, !lw.failed
}

func (lw *lowerer) imports() []string {
	var out []string
	for _, imp := range []string{ImportFmt, ImportGomponents, ImportHTML, ImportRuntime} {
		if lw.uses[imp] {
			out = append(out, imp)
		}
	}
	return out
}

func (lw *lowerer) g(name string) goast.Expr {
	lw.uses[ImportGomponents] = true
	return sel("g", name)
}

func (lw *lowerer) html(name string) goast.Expr {
	lw.uses[ImportHTML] = true
	return sel("html", name)
}

func (lw *lowerer) rt(name string) goast.Expr {
	lw.uses[ImportRuntime] = true
	return sel("mviewrt", name)
}

func sel(pkg, name string) goast.Expr {
	return &goast.SelectorExpr{X: goast.NewIdent(pkg), Sel: goast.NewIdent(name)}
}

func call(fun goast.Expr, args ...goast.Expr) *goast.CallExpr {
	return &goast.CallExpr{Fun: fun, Args: args}
}

func strLit(s string) goast.Expr {
	return &goast.BasicLit{Kind: gotoken.STRING, Value: quote(s)}
}
