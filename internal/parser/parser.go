// Package parser turns a structured token stream into an ast.Document by
// recursive descent. Errors accumulate in the reporter; after a contained
// failure the parser resynchronizes at the next sibling boundary so one
// invocation can report several independent problems.
package parser

import (
	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

// Options configures one parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 = unlimited

	errors uint
}

func (o *Options) enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.errors >= o.MaxErrors
}

// Parser holds the state for one document.
type Parser struct {
	file *source.File
	opts *Options
}

// Parse is the entry point for one expansion. tokens is the flat stream the
// structurer was built from; it is only consulted for //mv: trivia
// directives.
func Parse(stream *structure.Stream, tokens []token.Token, opts Options) *ast.Document {
	p := &Parser{file: stream.File, opts: &opts}

	doc := &ast.Document{
		Directives: collectDirectives(tokens),
	}
	doc.Children = p.parseNodes(newCursor(stream.Items))
	doc.Span = coverAll(stream.File.ID, doc.Children)
	return doc
}

func collectDirectives(tokens []token.Token) []ast.GenDirective {
	var out []ast.GenDirective
	for _, t := range tokens {
		for _, tr := range t.Leading {
			if tr.Kind == token.TriviaDirective && tr.Directive != nil {
				out = append(out, ast.GenDirective{
					Name:    tr.Directive.Name,
					Payload: tr.Directive.Payload,
					Span:    tr.Span,
				})
			}
		}
	}
	return out
}

func coverAll(file source.FileID, nodes []ast.Node) source.Span {
	if len(nodes) == 0 {
		return source.Span{File: file}
	}
	sp := nodes[0].Span()
	for _, n := range nodes[1:] {
		sp = sp.Cover(n.Span())
	}
	return sp
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	p.opts.errors++
	return diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// cursor walks one level of structured items.
type cursor struct {
	items []structure.Item
	pos   int
}

func newCursor(items []structure.Item) *cursor {
	return &cursor{items: items}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.items)
}

func (c *cursor) peek() structure.Item {
	if c.done() {
		return nil
	}
	return c.items[c.pos]
}

// peekAt looks n items ahead without consuming.
func (c *cursor) peekAt(n int) structure.Item {
	if c.pos+n >= len(c.items) {
		return nil
	}
	return c.items[c.pos+n]
}

func (c *cursor) next() structure.Item {
	it := c.peek()
	if it != nil {
		c.pos++
	}
	return it
}

// leafKind returns the token kind of the next item when it is a leaf.
func (c *cursor) leafKind() token.Kind {
	if l, ok := c.peek().(structure.Leaf); ok {
		return l.Tok.Kind
	}
	return token.Invalid
}

// leafKindAt is leafKind for the item n positions ahead.
func (c *cursor) leafKindAt(n int) token.Kind {
	if l, ok := c.peekAt(n).(structure.Leaf); ok {
		return l.Tok.Kind
	}
	return token.Invalid
}

// groupKind returns the delimiter kind of the next item when it is a group.
func (c *cursor) groupKind() token.Kind {
	if g, ok := c.peek().(structure.Group); ok {
		return g.Delim
	}
	return token.Invalid
}

func (c *cursor) eatLeaf(k token.Kind) (token.Token, bool) {
	if c.leafKind() == k {
		return c.next().(structure.Leaf).Tok, true
	}
	return token.Token{}, false
}

func (c *cursor) eatGroup(delim token.Kind) (structure.Group, bool) {
	if c.groupKind() == delim {
		return c.next().(structure.Group), true
	}
	return structure.Group{}, false
}

// endSpan is a zero-width span after the last consumed item, used when
// something is missing at the current position.
func (c *cursor) endSpan(file source.FileID) source.Span {
	if c.done() {
		if len(c.items) == 0 {
			return source.Span{File: file}
		}
		last := c.items[len(c.items)-1].Span()
		return source.Span{File: file, Start: last.End, End: last.End}
	}
	sp := c.peek().Span()
	return source.Span{File: file, Start: sp.Start, End: sp.Start}
}

// parseNodes parses a sibling sequence until the level is exhausted.
// A failed node skips one item and resumes at the next plausible sibling
// start, so later siblings still parse and report their own errors.
func (p *Parser) parseNodes(c *cursor) []ast.Node {
	var out []ast.Node
	for !c.done() && !p.opts.enough() {
		n, ok := p.parseNode(c)
		if ok {
			out = append(out, n)
			continue
		}
		c.next()
		for !c.done() {
			if _, isGroup := c.peek().(structure.Group); isGroup {
				break
			}
			k := c.leafKind()
			if k == token.Ident || k == token.At || k == token.Bang || k == token.StringLit {
				break
			}
			c.next()
		}
	}
	return out
}
