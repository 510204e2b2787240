package lexer

import (
	"fmt"

	"mview/internal/diag"
	"mview/internal/token"
)

// scanPunct scans DSL punctuation. Anything else that is printable becomes an
// Opaque token: it carries no DSL meaning but must flow through so embedded
// host expressions survive until codegen slices them back out by span.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Opaque
	switch b {
	case '=':
		kind = token.Assign
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
		if lx.cursor.Eat('.') {
			kind = token.DotDot
		}
	case '#':
		kind = token.Hash
	case '@':
		kind = token.At
	case '|':
		kind = token.Pipe
	case '!':
		kind = token.Bang
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		if b < 0x20 {
			kind = token.Invalid
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", text))
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
