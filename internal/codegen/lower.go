package codegen

import (
	goast "go/ast"
	goparser "go/parser"
	"strconv"
	"strings"

	"mview/internal/ast"
	"mview/internal/diag"
)

func quote(s string) string { return strconv.Quote(s) }

// parseExpr syntax-checks an embedded host expression. On failure it reports
// at the expression's span and substitutes nil so lowering can continue.
func (lw *lowerer) parseExpr(e ast.ExprText) goast.Expr {
	if strings.TrimSpace(e.Raw) == "" {
		lw.failed = true
		diag.ReportError(lw.opts.Reporter, diag.GenMalformedExpression, e.Span,
			"empty embedded expression").Emit()
		return goast.NewIdent("nil")
	}
	ex, err := goparser.ParseExpr(e.Raw)
	if err != nil {
		lw.failed = true
		diag.ReportError(lw.opts.Reporter, diag.GenMalformedExpression, e.Span,
			"malformed embedded expression").
			WithNote(e.Span, firstLine(err.Error())).
			Emit()
		return goast.NewIdent("nil")
	}
	return ex
}

// sprintfExpr parses an f[...] argument list wrapped in a fmt.Sprintf call,
// so the format string and its arguments are syntax-checked together.
func (lw *lowerer) sprintfExpr(e ast.ExprText) goast.Expr {
	lw.uses[ImportFmt] = true
	return lw.parseExpr(ast.ExprText{Raw: "fmt.Sprintf(" + e.Raw + ")", Span: e.Span})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// children lowers a sibling list into one expression: the child itself for a
// single node, g.Group for several, nil for none.
func (lw *lowerer) children(ns []ast.Node) goast.Expr {
	switch len(ns) {
	case 0:
		return goast.NewIdent("nil")
	case 1:
		return lw.node(ns[0])
	}
	return call(lw.g("Group"), lw.nodeSlice(ns))
}

func (lw *lowerer) nodeSlice(ns []ast.Node) goast.Expr {
	elts := make([]goast.Expr, 0, len(ns))
	for _, n := range ns {
		elts = append(elts, lw.node(n))
	}
	lw.uses[ImportGomponents] = true
	return &goast.CompositeLit{
		Type: &goast.ArrayType{Elt: sel("g", "Node")},
		Elts: elts,
	}
}

func (lw *lowerer) node(n ast.Node) goast.Expr {
	switch n := n.(type) {
	case *ast.Element:
		return lw.element(n)
	case *ast.Component:
		return lw.component(n)
	case *ast.Slot:
		return lw.slotNode(n)
	case *ast.TextLit:
		return call(lw.g("Text"), strLit(n.Value))
	case *ast.ExprBlock:
		ex := lw.parseExpr(n.Expr)
		if isNodeExpr(ex) {
			return ex
		}
		return call(lw.g("Text"), ex)
	case *ast.DeferredBlock:
		return lw.deferred(n)
	case *ast.Fragment:
		if len(n.Children) == 0 {
			lw.uses[ImportGomponents] = true
			return call(lw.g("Group"), &goast.CompositeLit{
				Type: &goast.ArrayType{Elt: sel("g", "Node")},
			})
		}
		return call(lw.g("Group"), lw.nodeSlice(n.Children))
	case *ast.Doctype:
		return call(lw.rt("Doctype"), strLit(n.Name), goast.NewIdent("nil"))
	case *ast.ControlBlock:
		return lw.control(n)
	}
	return goast.NewIdent("nil")
}

// isNodeExpr mirrors the splice heuristic for embedded expressions: calls to
// capitalized identifiers (or capitalized selector calls) are assumed to
// already produce a g.Node.
func isNodeExpr(ex goast.Expr) bool {
	callEx, ok := ex.(*goast.CallExpr)
	if !ok {
		return false
	}
	switch fun := callEx.Fun.(type) {
	case *goast.Ident:
		return isExported(fun.Name)
	case *goast.SelectorExpr:
		return fun.Sel != nil && isExported(fun.Sel.Name)
	}
	return false
}

func isExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func (lw *lowerer) deferred(d *ast.DeferredBlock) goast.Expr {
	if d.Format {
		// f["...", args] -> mviewrt.DynText(func() string { return fmt.Sprintf(...) })
		return call(lw.rt("DynText"), funcLit(nil, "string", returnStmt(lw.sprintfExpr(d.Expr))))
	}
	ex := lw.parseExpr(d.Expr)
	if isNodeExpr(ex) {
		lw.uses[ImportGomponents] = true
		return call(lw.rt("Dyn"), funcLitNode(returnStmt(ex)))
	}
	return call(lw.rt("DynText"), funcLit(nil, "string", returnStmt(ex)))
}

func (lw *lowerer) element(el *ast.Element) goast.Expr {
	args := lw.selectorArgs(el.Selectors)
	args = append(args, lw.attrArgs(el, el.Attrs, false)...)
	for _, c := range el.Children {
		args = append(args, lw.node(c))
	}

	if lw.opts.Target == TargetNamed {
		if fn := htmlElementFunc(el.Tag); fn != "" {
			return call(lw.html(fn), args...)
		}
	}
	return call(lw.g("El"), append([]goast.Expr{strLit(el.Tag)}, args...)...)
}

func (lw *lowerer) component(comp *ast.Component) goast.Expr {
	var fun goast.Expr
	if len(comp.Path) == 1 {
		fun = goast.NewIdent(comp.Path[0])
	} else {
		fun = goast.NewIdent(comp.Path[0])
		for _, seg := range comp.Path[1:] {
			fun = &goast.SelectorExpr{X: fun, Sel: goast.NewIdent(seg)}
		}
	}

	args := lw.selectorArgs(comp.Selectors)
	args = append(args, lw.attrArgs(comp, comp.Attrs, true)...)

	if comp.Closure != nil {
		args = append(args, lw.closureFn(comp.Closure, comp.Children))
		return call(fun, args...)
	}
	for _, c := range comp.Children {
		args = append(args, lw.node(c))
	}
	return call(fun, args...)
}

func (lw *lowerer) closureFn(cl *ast.Closure, body []ast.Node) goast.Expr {
	params := make([]*goast.Field, 0, len(cl.Params))
	for _, p := range cl.Params {
		typ := p.Type
		if typ == "" {
			typ = "any"
		}
		tex, err := goparser.ParseExpr(typ)
		if err != nil {
			lw.failed = true
			diag.ReportError(lw.opts.Reporter, diag.GenMalformedExpression, p.Span,
				"malformed closure parameter type").Emit()
			tex = goast.NewIdent("any")
		}
		params = append(params, &goast.Field{
			Names: []*goast.Ident{goast.NewIdent(identName(p.Name))},
			Type:  tex,
		})
	}
	lw.uses[ImportGomponents] = true
	return &goast.FuncLit{
		Type: &goast.FuncType{
			Params:  &goast.FieldList{List: params},
			Results: &goast.FieldList{List: []*goast.Field{{Type: sel("g", "Node")}}},
		},
		Body: &goast.BlockStmt{List: []goast.Stmt{returnStmt(lw.children(body))}},
	}
}

func (lw *lowerer) slotNode(s *ast.Slot) goast.Expr {
	attrs := lw.attrArgs(s, s.Attrs, true)
	lw.uses[ImportGomponents] = true
	attrSlice := &goast.CompositeLit{
		Type: &goast.ArrayType{Elt: sel("g", "Node")},
		Elts: attrs,
	}
	if s.Closure != nil {
		return call(lw.rt("SlotFn"), strLit(identName(s.Name)), attrSlice, lw.closureFn(s.Closure, s.Children))
	}
	return call(lw.rt("Slot"), strLit(identName(s.Name)), attrSlice, lw.children(s.Children))
}

func (lw *lowerer) selectorArgs(sels []ast.Selector) []goast.Expr {
	var args []goast.Expr
	var classes []string
	for _, s := range sels {
		if s.ID {
			args = append(args, lw.attrCall("id", strLit(s.Name)))
			continue
		}
		classes = append(classes, s.Name)
	}
	if len(classes) > 0 {
		args = append([]goast.Expr{lw.attrCall("class", strLit(strings.Join(classes, " ")))}, args...)
	}
	return args
}

// attrCall emits a string-valued attribute through the named vocabulary when
// available, g.Attr otherwise.
func (lw *lowerer) attrCall(name string, value goast.Expr) goast.Expr {
	if lw.opts.Target == TargetNamed {
		if fn := htmlStringAttrFunc(name); fn != "" {
			return call(lw.html(fn), value)
		}
	}
	return call(lw.g("Attr"), strLit(name), value)
}

// flagCall emits a boolean attribute: html.Disabled() and friends under the
// named vocabulary, valueless g.Attr otherwise.
func (lw *lowerer) flagCall(name string) goast.Expr {
	if lw.opts.Target == TargetNamed {
		if fn := htmlFlagAttrFunc(name); fn != "" {
			return call(lw.html(fn))
		}
	}
	return call(lw.g("Attr"), strLit(name))
}

// attrArgs lowers one node's attributes. When the resolver marked the node
// for runtime merging, everything funnels through mviewrt.Attrs: spreads are
// emitted ahead of named entries so an explicit attribute overrides a spread
// key wherever it was written; within each group source order is kept.
func (lw *lowerer) attrArgs(n ast.Node, attrs []ast.Attr, component bool) []goast.Expr {
	if !lw.info.NeedsRuntimeMerge(n) {
		args := make([]goast.Expr, 0, len(attrs))
		for _, a := range attrs {
			args = append(args, lw.attr(a, component))
		}
		return args
	}

	entries := make([]goast.Expr, 0, len(attrs))
	for _, a := range attrs {
		if sp, ok := a.Value.(ast.Spread); ok {
			entries = append(entries, call(lw.rt("SpreadMap"), lw.parseExpr(sp.Expr)))
		}
	}
	for _, a := range attrs {
		if _, ok := a.Value.(ast.Spread); ok {
			continue
		}
		if a.Dir == "" {
			if lit, ok := a.Value.(ast.Literal); ok && lit.Kind == ast.LitString {
				entries = append(entries, call(lw.rt("Set"), strLit(a.Name), strLit(lit.Text)))
				continue
			}
			if sh, ok := a.Value.(ast.Shorthand); ok && sh.Flag {
				entries = append(entries, call(lw.rt("SetFlag"), strLit(a.Name)))
				continue
			}
		}
		entries = append(entries, call(lw.rt("SetNode"), strLit(mergeKey(a)), lw.attr(a, component)))
	}
	return []goast.Expr{call(lw.rt("Attrs"), entries...)}
}

func mergeKey(a ast.Attr) string {
	if a.Dir != "" {
		return a.Dir + ":" + a.Name
	}
	return a.Name
}

// attr lowers one non-spread attribute to an argument expression.
func (lw *lowerer) attr(a ast.Attr, component bool) goast.Expr {
	switch a.Dir {
	case ast.DirOn:
		return call(lw.rt("On"), strLit(a.Name), lw.attrValueExpr(a))
	case ast.DirClass:
		return call(lw.rt("ClassIf"), strLit(a.Name), lw.attrValueExpr(a))
	case ast.DirStyle:
		return call(lw.rt("StyleKV"), strLit(a.Name), lw.attrValueExpr(a))
	case ast.DirProp:
		return call(lw.rt("Prop"), strLit(a.Name), lw.attrValueExpr(a))
	case ast.DirBind:
		return call(lw.rt("Bind"), strLit(a.Name), lw.attrValueExpr(a))
	case ast.DirUse:
		if sh, ok := a.Value.(ast.Shorthand); ok && sh.Flag {
			return call(lw.rt("Use"), goast.NewIdent(identName(a.Name)))
		}
		return call(lw.rt("Use"), lw.attrValueExpr(a))
	case ast.DirAttr:
		return call(lw.g("Attr"), strLit(a.Name), lw.attrValueExpr(a))
	}

	switch v := a.Value.(type) {
	case ast.Literal:
		switch v.Kind {
		case ast.LitString:
			return lw.attrCall(a.Name, strLit(v.Text))
		case ast.LitBool:
			if v.Text == "true" {
				return lw.flagCall(a.Name)
			}
			return call(lw.g("If"), goast.NewIdent("false"), lw.flagCall(a.Name))
		default:
			return lw.attrCall(a.Name, strLit(v.Text))
		}

	case ast.Shorthand:
		if v.Flag {
			return lw.flagCall(a.Name)
		}
		return lw.attrCall(a.Name, goast.NewIdent(identName(a.Name)))

	case ast.Expression:
		if v.Format {
			return call(lw.rt("DynAttr"), strLit(a.Name), funcLit(nil, "string", returnStmt(lw.sprintfExpr(v.Expr))))
		}
		if v.Deferred {
			return call(lw.rt("DynAttr"), strLit(a.Name), funcLit(nil, "string", returnStmt(lw.parseExpr(v.Expr))))
		}
		if component {
			return call(lw.rt("Prop"), strLit(a.Name), lw.parseExpr(v.Expr))
		}
		if isBoolAttr(a.Name) {
			return call(lw.g("If"), lw.parseExpr(v.Expr), lw.flagCall(a.Name))
		}
		return lw.attrCall(a.Name, lw.parseExpr(v.Expr))

	case ast.EventHandler:
		return call(lw.rt("On"), strLit(a.Name), lw.parseExpr(v.Expr))
	}
	return goast.NewIdent("nil")
}

// attrValueExpr extracts the value expression of a directive attribute.
func (lw *lowerer) attrValueExpr(a ast.Attr) goast.Expr {
	switch v := a.Value.(type) {
	case ast.Literal:
		if v.Kind == ast.LitString {
			return strLit(v.Text)
		}
		return goast.NewIdent(v.Text)
	case ast.Expression:
		if v.Format {
			return lw.sprintfExpr(v.Expr)
		}
		return lw.parseExpr(v.Expr)
	case ast.EventHandler:
		return lw.parseExpr(v.Expr)
	case ast.Shorthand:
		if v.Flag {
			return goast.NewIdent("true")
		}
		return goast.NewIdent(identName(a.Name))
	}
	return goast.NewIdent("nil")
}

// identName maps a kebab-case DSL name onto its host-side spelling: the
// identifier a {name} shorthand refers to, a closure parameter, a slot key.
func identName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func returnStmt(ex goast.Expr) goast.Stmt {
	return &goast.ReturnStmt{Results: []goast.Expr{ex}}
}

// funcLit builds func(<params>) <result> { stmts... } with a plain result type.
func funcLit(params []*goast.Field, result string, stmts ...goast.Stmt) goast.Expr {
	return &goast.FuncLit{
		Type: &goast.FuncType{
			Params:  &goast.FieldList{List: params},
			Results: &goast.FieldList{List: []*goast.Field{{Type: goast.NewIdent(result)}}},
		},
		Body: &goast.BlockStmt{List: stmts},
	}
}

// funcLitNode builds func() g.Node { stmts... }.
func funcLitNode(stmts ...goast.Stmt) goast.Expr {
	return &goast.FuncLit{
		Type: &goast.FuncType{
			Params:  &goast.FieldList{},
			Results: &goast.FieldList{List: []*goast.Field{{Type: sel("g", "Node")}}},
		},
		Body: &goast.BlockStmt{List: stmts},
	}
}
