package token

import "mview/internal/source"

// Directive is a parsed //mv: generator instruction carried as trivia.
type Directive struct {
	Name    string // "package", "import", "func"
	Payload string
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDirective
)

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // only if Kind == TriviaDirective
}
