// Package token defines lexical token kinds and trivia for the mview DSL.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Kebab-cased names (data-index) are lexed as a single Ident token;
//     whether the hyphens survive lowering is decided per target, not here.
//   - Generator directives (//mv:...) are represented as leading Trivia
//     (TriviaDirective) and never appear in the main token stream.
package token
