package lexer

import (
	"mview/internal/token"
)

// scanIdentOrKeyword scans an identifier and checks it via LookupKeyword.
// Kebab-case is folded into the identifier: a '-' is consumed when it sits
// between ident characters (data-index, aria-label). Token.Text is exactly
// the source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}

	for {
		r, sz = lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			b := byte(r)
			if isIdentContinueByte(b) {
				lx.cursor.Bump()
				continue
			}
			if b == '-' && lx.isIdentAfterHyphen() {
				lx.cursor.Bump()
				continue
			}
			break
		}
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func (lx *Lexer) isIdentAfterHyphen() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '-' && isIdentStartByte(b1)
}
