package parser

import (
	"strings"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

// parseAttrs consumes the attribute section of a node header. Attributes are
// written inline (`div class="x"`) or in a parenthesized list
// (`MyComp(x=1)`); the second return reports which form was seen.
func (p *Parser) parseAttrs(c *cursor) ([]ast.Attr, bool) {
	if g, ok := p.attrListGroup(c); ok {
		sub := newCursor(g.Items)
		var out []ast.Attr
		seen := map[string]source.Span{}
		for !sub.done() && !p.opts.enough() {
			a, ok := p.attrAt(sub)
			if !ok {
				sub.next()
				continue
			}
			p.checkReserved(seen, a)
			out = append(out, a)
		}
		return out, true
	}

	var out []ast.Attr
	seen := map[string]source.Span{}
	for !p.opts.enough() {
		if !p.attrStarts(c) {
			return out, false
		}
		a, ok := p.attrAt(c)
		if !ok {
			return out, false
		}
		p.checkReserved(seen, a)
		out = append(out, a)
	}
	return out, false
}

// attrListGroup decides whether a leading paren group is an attribute list.
// It is one when some top-level entry has `ident =` or `ident :` shape, or
// when a children block, ';', or closure follows the group; otherwise the
// parens hold children.
func (p *Parser) attrListGroup(c *cursor) (structure.Group, bool) {
	g, ok := c.peek().(structure.Group)
	if !ok || g.Delim != token.LParen {
		return structure.Group{}, false
	}
	tail := false
	switch nx := c.peekAt(1).(type) {
	case structure.Leaf:
		tail = nx.Tok.Kind == token.Semicolon || nx.Tok.Kind == token.Pipe
	case structure.Group:
		tail = nx.Delim == token.LBrace || nx.Delim == token.LParen
	}
	if tail || hasAttrShape(g.Items) {
		c.next()
		return g, true
	}
	return structure.Group{}, false
}

func hasAttrShape(items []structure.Item) bool {
	for i := 0; i+1 < len(items); i++ {
		l, ok := items[i].(structure.Leaf)
		if !ok || l.Tok.Kind != token.Ident {
			continue
		}
		if nx, ok := items[i+1].(structure.Leaf); ok {
			if nx.Tok.Kind == token.Assign || nx.Tok.Kind == token.Colon {
				return true
			}
		}
	}
	for _, it := range items {
		if g, ok := it.(structure.Group); ok && g.Delim == token.LBrace && isSpreadGroup(g) {
			return true
		}
	}
	return false
}

// attrStarts reports whether the next item can begin an inline attribute.
func (p *Parser) attrStarts(c *cursor) bool {
	if c.leafKind() == token.Ident {
		return !isFormatMarker(c)
	}
	if g, ok := c.peek().(structure.Group); ok && g.Delim == token.LBrace {
		return isSpreadGroup(g) || isShorthandGroup(g)
	}
	return false
}

func isSpreadGroup(g structure.Group) bool {
	if len(g.Items) == 0 {
		return false
	}
	l, ok := g.Items[0].(structure.Leaf)
	return ok && l.Tok.Kind == token.DotDot
}

func isShorthandGroup(g structure.Group) bool {
	if len(g.Items) != 1 {
		return false
	}
	l, ok := g.Items[0].(structure.Leaf)
	return ok && l.Tok.Kind == token.Ident
}

func (p *Parser) checkReserved(seen map[string]source.Span, a ast.Attr) {
	if a.Dir != "" || !ast.ReservedAttrs[a.Name] {
		return
	}
	if prev, dup := seen[a.Name]; dup {
		p.err(diag.ParseDuplicateReservedAttribute, a.NameSpan,
			"duplicate "+a.Name+" attribute").
			WithNote(prev, "first "+a.Name+" here").
			Emit()
		return
	}
	seen[a.Name] = a.NameSpan
}

// attrAt parses one attribute at the cursor.
func (p *Parser) attrAt(c *cursor) (ast.Attr, bool) {
	if g, ok := c.peek().(structure.Group); ok && g.Delim == token.LBrace {
		c.next()
		if isSpreadGroup(g) {
			dd := g.Items[0].(structure.Leaf).Tok
			sp := source.Span{File: p.file.ID, Start: dd.Span.End, End: g.Close.Span.Start}
			if sp.End < sp.Start {
				sp.End = sp.Start
			}
			raw := strings.TrimSpace(string(p.file.Content[sp.Start:sp.End]))
			return ast.Attr{
				Value:    ast.Spread{Expr: ast.ExprText{Raw: raw, Span: sp}},
				AttrSpan: g.Span(),
			}, true
		}
		if isShorthandGroup(g) {
			name := g.Items[0].(structure.Leaf).Tok
			return ast.Attr{
				Name:     name.Text,
				NameSpan: name.Span,
				Value:    ast.Shorthand{ValueSpan: name.Span},
				AttrSpan: g.Span(),
			}, true
		}
		p.err(diag.ParseUnexpectedToken, g.Span(),
			"expected {name} shorthand or {..expr} spread").Emit()
		return ast.Attr{}, false
	}

	key, ok := c.eatLeaf(token.Ident)
	if !ok {
		p.err(diag.ParseUnexpectedToken, c.endSpan(p.file.ID), "expected an attribute").Emit()
		return ast.Attr{}, false
	}

	a := ast.Attr{Name: key.Text, NameSpan: key.Span, AttrSpan: key.Span}

	if c.leafKind() == token.Colon {
		c.next()
		a.Dir = key.Text
		switch {
		case c.leafKind() == token.Ident:
			name := c.next().(structure.Leaf).Tok
			a.Name = name.Text
			a.NameSpan = name.Span
		case c.leafKind() == token.StringLit:
			name := c.next().(structure.Leaf).Tok
			a.Name = p.unquote(name)
			a.NameSpan = name.Span
		case c.groupKind() == token.LBrace:
			g := c.next().(structure.Group)
			if !isShorthandGroup(g) {
				p.err(diag.ParseUnexpectedToken, g.Span(),
					"expected {name} after '"+a.Dir+":'").Emit()
				return ast.Attr{}, false
			}
			name := g.Items[0].(structure.Leaf).Tok
			a.Name = name.Text
			a.NameSpan = name.Span
			a.Value = ast.Shorthand{ValueSpan: name.Span}
			a.AttrSpan = key.Span.Cover(g.Span())
			return a, true
		default:
			p.err(diag.ParseUnexpectedToken, c.endSpan(p.file.ID),
				"expected a name after '"+a.Dir+":'").Emit()
			return ast.Attr{}, false
		}
	}

	if _, ok := c.eatLeaf(token.Assign); !ok {
		a.Value = ast.Shorthand{Flag: true, ValueSpan: a.NameSpan}
		a.AttrSpan = key.Span.Cover(a.NameSpan)
		return a, true
	}

	val, ok := p.parseValue(c)
	if !ok {
		return ast.Attr{}, false
	}
	if a.Dir == ast.DirOn {
		if e, isExpr := val.(ast.Expression); isExpr && !e.Deferred {
			val = ast.EventHandler{Expr: e.Expr}
		}
	}
	a.Value = val
	a.AttrSpan = key.Span.Cover(val.Span())
	return a, true
}

// parseValue parses the right-hand side of '='.
func (p *Parser) parseValue(c *cursor) (ast.AttrValue, bool) {
	switch {
	case c.leafKind() == token.StringLit:
		t := c.next().(structure.Leaf).Tok
		return ast.Literal{Kind: ast.LitString, Text: p.unquote(t), ValueSpan: t.Span}, true

	case c.leafKind() == token.IntLit:
		t := c.next().(structure.Leaf).Tok
		return ast.Literal{Kind: ast.LitInt, Text: t.Text, ValueSpan: t.Span}, true

	case c.leafKind() == token.FloatLit:
		t := c.next().(structure.Leaf).Tok
		return ast.Literal{Kind: ast.LitFloat, Text: t.Text, ValueSpan: t.Span}, true

	case c.leafKind() == token.KwTrue || c.leafKind() == token.KwFalse:
		t := c.next().(structure.Leaf).Tok
		return ast.Literal{Kind: ast.LitBool, Text: t.Text, ValueSpan: t.Span}, true

	case isFormatMarker(c):
		c.next()
		g := c.next().(structure.Group)
		raw, sp := g.RawInterior(p.file)
		return ast.Expression{
			Expr:     ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp},
			Deferred: true,
			Format:   true,
		}, true

	case c.groupKind() == token.LBrace:
		g := c.next().(structure.Group)
		raw, sp := g.RawInterior(p.file)
		return ast.Expression{Expr: ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp}}, true

	case c.groupKind() == token.LBracket:
		g := c.next().(structure.Group)
		raw, sp := g.RawInterior(p.file)
		return ast.Expression{
			Expr:     ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp},
			Deferred: true,
		}, true
	}

	p.err(diag.ParseExpectAttrValue, c.endSpan(p.file.ID),
		"expected a value after '='").
		WithNote(c.endSpan(p.file.ID), "host expressions must be wrapped in braces").
		Emit()
	return nil, false
}

// parseClosure parses a |name: Type, ...| children closure.
func (p *Parser) parseClosure(c *cursor) (*ast.Closure, bool) {
	open := c.next().(structure.Leaf).Tok
	cl := &ast.Closure{Span: open.Span}
	for {
		if pipe, ok := c.eatLeaf(token.Pipe); ok {
			cl.Span = open.Span.Cover(pipe.Span)
			return cl, true
		}
		if c.done() {
			p.err(diag.ParseExpectClosureParam, c.endSpan(p.file.ID),
				"unterminated closure parameter list").
				WithNote(open.Span, "opened here").
				Emit()
			return nil, false
		}
		name, ok := c.eatLeaf(token.Ident)
		if !ok {
			p.err(diag.ParseExpectClosureParam, c.peek().Span(),
				"expected a parameter name").Emit()
			return nil, false
		}
		param := ast.ClosureParam{Name: name.Text, Span: name.Span}
		if _, ok := c.eatLeaf(token.Colon); ok {
			var first, last structure.Item
			for !c.done() && c.leafKind() != token.Comma && c.leafKind() != token.Pipe {
				it := c.next()
				if first == nil {
					first = it
				}
				last = it
			}
			if first == nil {
				p.err(diag.ParseExpectClosureParam, c.endSpan(p.file.ID),
					"expected a type after ':'").Emit()
				return nil, false
			}
			sp := first.Span().Cover(last.Span())
			param.Type = strings.TrimSpace(string(p.file.Content[sp.Start:sp.End]))
			param.Span = name.Span.Cover(sp)
		}
		cl.Params = append(cl.Params, param)
		c.eatLeaf(token.Comma)
	}
}
