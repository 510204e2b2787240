package parser

import (
	"strings"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

// parseControl parses an @if, @for, or @match block starting at '@'.
func (p *Parser) parseControl(c *cursor) (ast.Node, bool) {
	at := c.next().(structure.Leaf).Tok
	kw, ok := c.eatLeaf(token.Ident)
	if !ok {
		p.err(diag.ParseExpectControlHeader, c.endSpan(p.file.ID),
			"expected 'if', 'for', or 'match' after '@'").Emit()
		return nil, false
	}
	switch kw.Text {
	case "if":
		return p.parseIf(c, at)
	case "for":
		return p.parseFor(c, at)
	case "match":
		return p.parseMatch(c, at)
	case "else", "case", "default":
		p.err(diag.ParseExpectControlHeader, at.Span.Cover(kw.Span),
			"@"+kw.Text+" outside its control block").Emit()
		return nil, false
	}
	p.err(diag.ParseExpectControlHeader, kw.Span,
		"unknown control block @"+kw.Text).Emit()
	return nil, false
}

func (p *Parser) parseIf(c *cursor, at token.Token) (ast.Node, bool) {
	blk := &ast.ControlBlock{Kind: ast.ControlIf}
	end := at.Span

	cond, sp, ok := p.exprGroup(c, "condition")
	if !ok {
		return nil, false
	}
	body, bsp, ok := p.bodyGroup(c)
	if !ok {
		return nil, false
	}
	blk.Branches = append(blk.Branches, ast.ControlBranch{Cond: &cond, Body: body, Span: sp.Cover(bsp)})
	end = end.Cover(bsp)

	for c.leafKind() == token.At && c.leafKindAt(1) == token.Ident &&
		c.peekAt(1).(structure.Leaf).Tok.Text == "else" {
		c.next()
		elseTok := c.next().(structure.Leaf).Tok
		if c.leafKind() == token.Ident && c.peek().(structure.Leaf).Tok.Text == "if" {
			c.next()
			cond, sp, ok := p.exprGroup(c, "condition")
			if !ok {
				return nil, false
			}
			body, bsp, ok := p.bodyGroup(c)
			if !ok {
				return nil, false
			}
			blk.Branches = append(blk.Branches, ast.ControlBranch{Cond: &cond, Body: body, Span: sp.Cover(bsp)})
			end = end.Cover(bsp)
			continue
		}
		body, bsp, ok := p.bodyGroup(c)
		if !ok {
			return nil, false
		}
		blk.Branches = append(blk.Branches, ast.ControlBranch{Body: body, Span: elseTok.Span.Cover(bsp)})
		end = end.Cover(bsp)
		break
	}

	blk.NodeSpan = at.Span.Cover(end)
	return blk, true
}

func (p *Parser) parseFor(c *cursor, at token.Token) (ast.Node, bool) {
	blk := &ast.ControlBlock{Kind: ast.ControlFor}

	name, ok := c.eatLeaf(token.Ident)
	if !ok {
		p.err(diag.ParseExpectControlHeader, c.endSpan(p.file.ID),
			"expected a loop variable after @for").Emit()
		return nil, false
	}
	blk.LoopVars = append(blk.LoopVars, name.Text)
	if _, ok := c.eatLeaf(token.Comma); ok {
		second, ok := c.eatLeaf(token.Ident)
		if !ok {
			p.err(diag.ParseExpectControlHeader, c.endSpan(p.file.ID),
				"expected a loop variable after ','").Emit()
			return nil, false
		}
		blk.LoopVars = append(blk.LoopVars, second.Text)
	}
	if _, ok := c.eatLeaf(token.KwIn); !ok {
		p.err(diag.ParseExpectControlHeader, c.endSpan(p.file.ID),
			"expected 'in' after the loop variables").Emit()
		return nil, false
	}

	iter, sp, ok := p.exprGroup(c, "iterated expression")
	if !ok {
		return nil, false
	}
	body, bsp, ok := p.bodyGroup(c)
	if !ok {
		return nil, false
	}
	blk.Branches = append(blk.Branches, ast.ControlBranch{Cond: &iter, Body: body, Span: sp.Cover(bsp)})
	blk.NodeSpan = at.Span.Cover(bsp)
	return blk, true
}

func (p *Parser) parseMatch(c *cursor, at token.Token) (ast.Node, bool) {
	blk := &ast.ControlBlock{Kind: ast.ControlMatch}

	subject, _, ok := p.exprGroup(c, "match subject")
	if !ok {
		return nil, false
	}
	blk.Subject = &subject

	arms, ok := c.eatGroup(token.LBrace)
	if !ok {
		if arms, ok = c.eatGroup(token.LParen); !ok {
			p.err(diag.ParseExpectControlHeader, c.endSpan(p.file.ID),
				"expected a block of @case arms").Emit()
			return nil, false
		}
	}

	sub := newCursor(arms.Items)
	for !sub.done() && !p.opts.enough() {
		atTok, ok := sub.eatLeaf(token.At)
		if !ok {
			p.err(diag.ParseExpectControlHeader, sub.peek().Span(),
				"expected @case or @default").Emit()
			return nil, false
		}
		kw, ok := sub.eatLeaf(token.Ident)
		if !ok || (kw.Text != "case" && kw.Text != "default") {
			p.err(diag.ParseExpectControlHeader, atTok.Span,
				"expected @case or @default").Emit()
			return nil, false
		}
		if kw.Text == "case" {
			cond, sp, ok := p.exprGroup(sub, "case value")
			if !ok {
				return nil, false
			}
			body, bsp, ok := p.bodyGroup(sub)
			if !ok {
				return nil, false
			}
			blk.Branches = append(blk.Branches, ast.ControlBranch{Cond: &cond, Body: body, Span: sp.Cover(bsp)})
			continue
		}
		body, bsp, ok := p.bodyGroup(sub)
		if !ok {
			return nil, false
		}
		blk.Branches = append(blk.Branches, ast.ControlBranch{Body: body, Span: kw.Span.Cover(bsp)})
	}

	blk.NodeSpan = at.Span.Cover(arms.Span())
	return blk, true
}

// exprGroup expects a {expr} group and returns its raw interior.
func (p *Parser) exprGroup(c *cursor, what string) (ast.ExprText, source.Span, bool) {
	g, ok := c.eatGroup(token.LBrace)
	if !ok {
		p.err(diag.ParseExpectExpression, c.endSpan(p.file.ID),
			"expected a braced "+what).Emit()
		return ast.ExprText{}, source.Span{}, false
	}
	raw, sp := g.RawInterior(p.file)
	return ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp}, g.Span(), true
}

// bodyGroup expects a children group after a control header.
func (p *Parser) bodyGroup(c *cursor) ([]ast.Node, source.Span, bool) {
	g, ok := c.eatGroup(token.LBrace)
	if !ok {
		if g, ok = c.eatGroup(token.LParen); !ok {
			p.err(diag.ParseExpectChildrenOrSemi, c.endSpan(p.file.ID),
				"expected a children block").Emit()
			return nil, source.Span{}, false
		}
	}
	return p.parseNodes(newCursor(g.Items)), g.Span(), true
}
