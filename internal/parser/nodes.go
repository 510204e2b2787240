package parser

import (
	"strconv"
	"strings"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

// parseNode dispatches on the first item of a node.
func (p *Parser) parseNode(c *cursor) (ast.Node, bool) {
	switch {
	case c.leafKind() == token.StringLit:
		tok := c.next().(structure.Leaf).Tok
		return &ast.TextLit{Value: p.unquote(tok), NodeSpan: tok.Span}, true

	case c.leafKind() == token.Bang:
		return p.parseDoctype(c)

	case c.leafKind() == token.At:
		return p.parseControl(c)

	case c.leafKind() == token.Ident:
		// f["...", args] is a formatted deferred block, not an element.
		if isFormatMarker(c) {
			return p.parseFormatBlock(c)
		}
		return p.parseHeader(c)

	case c.groupKind() == token.LBrace:
		g := c.next().(structure.Group)
		raw, sp := g.RawInterior(p.file)
		return &ast.ExprBlock{
			Expr:     ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp},
			NodeSpan: g.Span(),
		}, true

	case c.groupKind() == token.LBracket:
		g := c.next().(structure.Group)
		raw, sp := g.RawInterior(p.file)
		return &ast.DeferredBlock{
			Expr:     ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp},
			NodeSpan: g.Span(),
		}, true

	case c.groupKind() == token.LParen:
		g := c.next().(structure.Group)
		return &ast.Fragment{
			Children: p.parseNodes(newCursor(g.Items)),
			NodeSpan: g.Span(),
		}, true
	}

	it := c.peek()
	if it == nil {
		return nil, false
	}
	p.err(diag.ParseUnexpectedToken, it.Span(),
		"expected an element, component, text, or embedded expression").Emit()
	return nil, false
}

func isFormatMarker(c *cursor) bool {
	l, ok := c.peek().(structure.Leaf)
	if !ok || l.Tok.Text != "f" {
		return false
	}
	if g, ok := c.peekAt(1).(structure.Group); ok {
		return g.Delim == token.LBracket
	}
	return false
}

func (p *Parser) parseFormatBlock(c *cursor) (ast.Node, bool) {
	f := c.next().(structure.Leaf).Tok
	g := c.next().(structure.Group)
	raw, sp := g.RawInterior(p.file)
	return &ast.DeferredBlock{
		Expr:     ast.ExprText{Raw: strings.TrimSpace(raw), Span: sp},
		Format:   true,
		NodeSpan: f.Span.Cover(g.Span()),
	}, true
}

func (p *Parser) parseDoctype(c *cursor) (ast.Node, bool) {
	bang := c.next().(structure.Leaf).Tok
	first, ok := c.eatLeaf(token.Ident)
	if !ok {
		p.err(diag.ParseUnexpectedToken, c.endSpan(p.file.ID),
			"expected a name after '!'").Emit()
		return nil, false
	}
	name := first
	if strings.EqualFold(first.Text, "doctype") {
		if second, ok := c.eatLeaf(token.Ident); ok {
			name = second
		}
	}
	end := name.Span
	if semi, ok := c.eatLeaf(token.Semicolon); ok {
		end = semi.Span
	} else {
		p.err(diag.ParseExpectChildrenOrSemi, c.endSpan(p.file.ID),
			"expected ';' after doctype").Emit()
	}
	return &ast.Doctype{Name: name.Text, NodeSpan: bang.Span.Cover(end)}, true
}

// parseHeader parses an element, component, or slot starting at an ident.
func (p *Parser) parseHeader(c *cursor) (ast.Node, bool) {
	first := c.next().(structure.Leaf).Tok

	if first.Text == ast.DirSlot && c.leafKind() == token.Colon && c.leafKindAt(1) == token.Ident {
		return p.parseSlot(c, first)
	}

	// A dotted chain is a component path up to and including the first
	// capitalized segment; anything after that (and the whole chain when no
	// segment is capitalized) reads as class selectors on the header.
	segs := []token.Token{first}
	for c.leafKind() == token.Dot && c.leafKindAt(1) == token.Ident {
		c.next()
		seg := c.next().(structure.Leaf).Tok
		segs = append(segs, seg)
		if isCapitalized(seg.Text) {
			break
		}
	}

	if i := firstCapitalized(segs); i >= 0 {
		return p.parseComponent(c, segs)
	}

	tag := segs[0]
	if !isValidTag(tag.Text) {
		p.err(diag.ParseInvalidNodeName, tag.Span,
			"invalid element name "+strconv.Quote(tag.Text)).
			WithNote(tag.Span, "element names are lower-case; capitalize the first letter for a component").
			Emit()
		return nil, false
	}

	el := &ast.Element{Tag: tag.Text, TagSpan: tag.Span}
	for _, seg := range segs[1:] {
		el.Selectors = append(el.Selectors, ast.Selector{Name: seg.Text, Span: seg.Span})
	}
	el.Selectors = append(el.Selectors, p.parseSelectors(c)...)

	attrs, parenAttrs := p.parseAttrs(c)
	el.Attrs = attrs

	children, childless, end, ok := p.parseTail(c, parenAttrs, tag.Span)
	if !ok {
		return nil, false
	}
	el.Children = children
	el.Childless = childless
	el.NodeSpan = tag.Span.Cover(end)
	return el, true
}

func (p *Parser) parseComponent(c *cursor, segs []token.Token) (ast.Node, bool) {
	comp := &ast.Component{PathSpan: segs[0].Span.Cover(segs[len(segs)-1].Span)}
	for _, seg := range segs {
		comp.Path = append(comp.Path, seg.Text)
	}
	comp.Selectors = p.parseSelectors(c)

	attrs, parenAttrs := p.parseAttrs(c)
	comp.Attrs = attrs

	if c.leafKind() == token.Pipe {
		cl, ok := p.parseClosure(c)
		if !ok {
			return nil, false
		}
		comp.Closure = cl
	}

	children, childless, end, ok := p.parseTail(c, parenAttrs, comp.PathSpan)
	if !ok {
		return nil, false
	}
	comp.Children = children
	comp.Childless = childless
	comp.NodeSpan = comp.PathSpan.Cover(end)
	return comp, true
}

func (p *Parser) parseSlot(c *cursor, kw token.Token) (ast.Node, bool) {
	c.next() // ':'
	name := c.next().(structure.Leaf).Tok
	slot := &ast.Slot{Name: name.Text, NameSpan: name.Span}

	attrs, parenAttrs := p.parseAttrs(c)
	slot.Attrs = attrs

	if c.leafKind() == token.Pipe {
		cl, ok := p.parseClosure(c)
		if !ok {
			return nil, false
		}
		slot.Closure = cl
	}

	children, _, end, ok := p.parseTail(c, parenAttrs, name.Span)
	if !ok {
		return nil, false
	}
	slot.Children = children
	slot.NodeSpan = kw.Span.Cover(end)
	return slot, true
}

// parseSelectors consumes .class and #id shorthands after a header name.
func (p *Parser) parseSelectors(c *cursor) []ast.Selector {
	var out []ast.Selector
	for {
		switch {
		case c.leafKind() == token.Dot && c.leafKindAt(1) == token.Ident:
			dot := c.next().(structure.Leaf).Tok
			name := c.next().(structure.Leaf).Tok
			out = append(out, ast.Selector{Name: name.Text, Span: dot.Span.Cover(name.Span)})
		case c.leafKind() == token.Hash && c.leafKindAt(1) == token.Ident:
			hash := c.next().(structure.Leaf).Tok
			name := c.next().(structure.Leaf).Tok
			out = append(out, ast.Selector{ID: true, Name: name.Text, Span: hash.Span.Cover(name.Span)})
		default:
			return out
		}
	}
}

// parseTail finishes a node after its attributes: a children group, a ';'
// terminator, or (after a parenthesized attribute list) nothing at all.
func (p *Parser) parseTail(c *cursor, parenAttrs bool, header source.Span) (children []ast.Node, childless bool, end source.Span, ok bool) {
	switch {
	case c.leafKind() == token.Semicolon:
		semi := c.next().(structure.Leaf).Tok
		return nil, true, semi.Span, true

	case c.groupKind() == token.LBrace || c.groupKind() == token.LParen:
		g := c.next().(structure.Group)
		return p.parseNodes(newCursor(g.Items)), false, g.Span(), true

	case parenAttrs:
		return nil, true, c.endSpan(p.file.ID), true
	}

	p.err(diag.ParseExpectChildrenOrSemi, c.endSpan(p.file.ID),
		"expected children or ';'").
		WithNote(header, "node started here").
		Emit()
	return nil, false, source.Span{}, false
}

// unquote decodes a string literal token, reporting malformed escapes.
func (p *Parser) unquote(t token.Token) string {
	s, err := strconv.Unquote(t.Text)
	if err != nil {
		p.err(diag.ParseUnexpectedToken, t.Span, "invalid string literal").Emit()
		if len(t.Text) >= 2 {
			return t.Text[1 : len(t.Text)-1]
		}
		return t.Text
	}
	return s
}

func isCapitalized(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func firstCapitalized(segs []token.Token) int {
	for i, seg := range segs {
		if isCapitalized(seg.Text) {
			return i
		}
	}
	return -1
}

func isValidTag(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'a' && b <= 'z':
		case b >= '0' && b <= '9':
		case b == '-' || b == '_':
		default:
			return false
		}
	}
	return true
}
