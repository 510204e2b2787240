package codegen

import (
	goast "go/ast"
	gotoken "go/token"

	"mview/internal/ast"
)

// control lowers @if/@for/@match into an immediately invoked closure so the
// construct stays a single expression in the emitted call tree.
func (lw *lowerer) control(blk *ast.ControlBlock) goast.Expr {
	switch blk.Kind {
	case ast.ControlIf:
		return lw.lowerIf(blk)
	case ast.ControlFor:
		return lw.lowerFor(blk)
	case ast.ControlMatch:
		return lw.lowerMatch(blk)
	}
	return goast.NewIdent("nil")
}

func iife(fn goast.Expr) goast.Expr {
	return &goast.CallExpr{Fun: fn}
}

func (lw *lowerer) lowerIf(blk *ast.ControlBlock) goast.Expr {
	// func() g.Node { if c { return ... } else if ... ; return nil }()
	var root goast.Stmt
	for i := len(blk.Branches) - 1; i >= 0; i-- {
		br := blk.Branches[i]
		body := &goast.BlockStmt{List: []goast.Stmt{returnStmt(lw.children(br.Body))}}
		if br.Cond == nil {
			root = body
			continue
		}
		root = &goast.IfStmt{Cond: lw.parseExpr(*br.Cond), Body: body, Else: root}
	}

	stmts := []goast.Stmt{returnStmt(goast.NewIdent("nil"))}
	if root != nil {
		stmts = append([]goast.Stmt{root}, stmts...)
	}
	return iife(funcLitNode(stmts...))
}

func (lw *lowerer) lowerFor(blk *ast.ControlBlock) goast.Expr {
	// func() g.Node {
	//     var out []g.Node
	//     for i, x := range expr { out = append(out, ...) }
	//     return g.Group(out)
	// }()
	br := blk.Branches[0]

	key := "_"
	val := "_"
	switch len(blk.LoopVars) {
	case 1:
		val = blk.LoopVars[0]
	case 2:
		key = blk.LoopVars[0]
		val = blk.LoopVars[1]
	}

	lw.uses[ImportGomponents] = true
	decl := &goast.DeclStmt{Decl: &goast.GenDecl{
		Tok: gotoken.VAR,
		Specs: []goast.Spec{&goast.ValueSpec{
			Names: []*goast.Ident{goast.NewIdent("out")},
			Type:  &goast.ArrayType{Elt: sel("g", "Node")},
		}},
	}}

	appendCall := &goast.AssignStmt{
		Lhs: []goast.Expr{goast.NewIdent("out")},
		Tok: gotoken.ASSIGN,
		Rhs: []goast.Expr{call(goast.NewIdent("append"),
			append([]goast.Expr{goast.NewIdent("out")}, lw.branchExprs(br.Body)...)...)},
	}

	var iter goast.Expr = goast.NewIdent("nil")
	if br.Cond != nil {
		iter = lw.parseExpr(*br.Cond)
	}
	loop := &goast.RangeStmt{
		Key:   goast.NewIdent(key),
		Value: goast.NewIdent(val),
		Tok:   gotoken.DEFINE,
		X:     iter,
		Body:  &goast.BlockStmt{List: []goast.Stmt{appendCall}},
	}

	ret := returnStmt(call(lw.g("Group"), goast.NewIdent("out")))
	return iife(funcLitNode(decl, loop, ret))
}

// branchExprs lowers a control-block body into one expression per child, so
// loop bodies append siblings without an extra Group.
func (lw *lowerer) branchExprs(body []ast.Node) []goast.Expr {
	if len(body) == 0 {
		return []goast.Expr{goast.NewIdent("nil")}
	}
	out := make([]goast.Expr, 0, len(body))
	for _, n := range body {
		out = append(out, lw.node(n))
	}
	return out
}

func (lw *lowerer) lowerMatch(blk *ast.ControlBlock) goast.Expr {
	// func() g.Node { switch subject { case v: return ... } ; return nil }()
	var subject goast.Expr
	if blk.Subject != nil {
		subject = lw.parseExpr(*blk.Subject)
	}

	var clauses []goast.Stmt
	for _, br := range blk.Branches {
		clause := &goast.CaseClause{
			Body: []goast.Stmt{returnStmt(lw.children(br.Body))},
		}
		if br.Cond != nil {
			clause.List = []goast.Expr{lw.parseExpr(*br.Cond)}
		}
		clauses = append(clauses, clause)
	}

	sw := &goast.SwitchStmt{
		Tag:  subject,
		Body: &goast.BlockStmt{List: clauses},
	}
	return iife(funcLitNode(sw, returnStmt(goast.NewIdent("nil"))))
}
