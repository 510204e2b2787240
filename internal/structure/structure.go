// Package structure groups a flat token stream into a bracket-aware tree.
// It matches ()/{}/[] nesting and nothing else: no DSL meaning is assigned
// here, the parser decides later whether a group is an attribute list, a
// children block, or an embedded expression.
package structure

import (
	"mview/internal/diag"
	"mview/internal/source"
	"mview/internal/token"
)

// Item is one entry of a structured stream: a Leaf token or a nested Group.
type Item interface {
	item()
	Span() source.Span
}

// Leaf wraps a single non-delimiter token.
type Leaf struct {
	Tok token.Token
}

func (Leaf) item() {}

func (l Leaf) Span() source.Span { return l.Tok.Span }

// Group is a delimited token group. Delim is the opening kind (LParen,
// LBrace, LBracket). Close is the EOF token when the group was never closed.
type Group struct {
	Delim token.Kind
	Open  token.Token
	Close token.Token
	Items []Item
}

func (Group) item() {}

func (g Group) Span() source.Span { return g.Open.Span.Cover(g.Close.Span) }

// RawInterior returns the verbatim source text between the delimiters.
// This is how embedded host expressions survive lowering untouched.
func (g Group) RawInterior(f *source.File) (string, source.Span) {
	sp := source.Span{File: f.ID, Start: g.Open.Span.End, End: g.Close.Span.Start}
	if sp.End < sp.Start {
		sp.End = sp.Start
	}
	return string(f.Content[sp.Start:sp.End]), sp
}

// Stream is the structured form of one source file.
type Stream struct {
	File  *source.File
	Items []Item
}

// Build structures tokens into nested groups. Unclosed or mismatched
// delimiters report StructUnbalancedDelimiter with the span of the offending
// opener; a stray closer reports its own span. tokens must end with EOF.
func Build(file *source.File, tokens []token.Token, reporter diag.Reporter) *Stream {
	b := builder{file: file, tokens: tokens, reporter: reporter}
	items := b.items(nil)
	return &Stream{File: file, Items: items}
}

type builder struct {
	file     *source.File
	tokens   []token.Token
	pos      int
	reporter diag.Reporter
	opens    []token.Kind
}

func (b *builder) peek() token.Token {
	if b.pos >= len(b.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return b.tokens[b.pos]
}

func (b *builder) next() token.Token {
	t := b.peek()
	if b.pos < len(b.tokens) {
		b.pos++
	}
	return t
}

// items consumes until the closer matching open (nil at top level), EOF, or a
// mismatched closer.
func (b *builder) items(open *token.Token) []Item {
	var out []Item
	for {
		t := b.peek()
		switch {
		case t.Kind == token.EOF:
			if open != nil {
				diag.ReportError(b.reporter, diag.StructUnbalancedDelimiter, open.Span,
					"unclosed "+delimName(open.Kind)).
					WithNote(t.Span, "expected "+token.CloseOf(open.Kind).String()+" before end of input").
					Emit()
			}
			return out

		case t.Kind.IsOpenDelim():
			openTok := b.next()
			b.opens = append(b.opens, openTok.Kind)
			inner := b.items(&openTok)
			b.opens = b.opens[:len(b.opens)-1]
			closeTok := b.peek()
			if closeTok.Kind == token.CloseOf(openTok.Kind) {
				b.next()
			} else {
				// group was cut short at EOF or a mismatched closer;
				// record a zero-width close so spans stay sane
				closeTok = token.Token{Kind: token.EOF, Span: source.Span{
					File:  openTok.Span.File,
					Start: b.peek().Span.Start,
					End:   b.peek().Span.Start,
				}}
			}
			out = append(out, Group{
				Delim: openTok.Kind,
				Open:  openTok,
				Close: closeTok,
				Items: inner,
			})

		case t.Kind.IsCloseDelim():
			if open != nil {
				if t.Kind != token.CloseOf(open.Kind) {
					diag.ReportError(b.reporter, diag.StructUnbalancedDelimiter, open.Span,
						"mismatched "+delimName(open.Kind)).
						WithNote(t.Span, "closed by "+t.Kind.String()+" here").
						Emit()
					if !b.encloses(t.Kind) {
						// no enclosing group is waiting for this closer, so it
						// stands in for ours; consuming it keeps one typo at
						// one diagnostic
						b.next()
					}
				}
				return out
			}
			stray := b.next()
			diag.ReportError(b.reporter, diag.StructUnbalancedDelimiter, stray.Span,
				"unmatched closing "+stray.Kind.String()).Emit()

		default:
			out = append(out, Leaf{Tok: b.next()})
		}
	}
}

// encloses reports whether any open group on the stack is still waiting for
// closer k.
func (b *builder) encloses(k token.Kind) bool {
	for _, open := range b.opens {
		if token.CloseOf(open) == k {
			return true
		}
	}
	return false
}

func delimName(k token.Kind) string {
	switch k {
	case token.LParen:
		return "parenthesis"
	case token.LBrace:
		return "brace"
	case token.LBracket:
		return "bracket"
	}
	return "delimiter"
}
