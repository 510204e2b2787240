package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including kebab-cased ones.
	Ident
	// KwIn represents the 'in' keyword of @for headers.
	KwIn // in
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit

	// Assign represents the attribute value separator.
	Assign // =
	// Colon represents the directive separator.
	Colon // :
	// Semicolon represents the childless-node terminator.
	Semicolon // ;
	// Comma represents the comma separator inside closures and expressions.
	Comma // ,
	// Dot represents the class-selector marker and path separator.
	Dot // .
	// DotDot represents the spread marker inside attribute braces.
	DotDot // ..
	// Hash represents the id-selector marker.
	Hash // #
	// At represents the control-block marker.
	At // @
	// Pipe represents the children-closure delimiter.
	Pipe // |
	// Bang represents the doctype marker.
	Bang // !
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]

	// Opaque represents a character sequence with no DSL meaning of its own.
	// Embedded host-language expressions are full of these; they only need to
	// survive bracket matching so the raw expression text can be sliced back
	// out of the source by span.
	Opaque
)

var kindNames = map[Kind]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Ident:     "ident",
	KwIn:      "in",
	KwTrue:    "true",
	KwFalse:   "false",
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	Assign:    "=",
	Colon:     ":",
	Semicolon: ";",
	Comma:     ",",
	Dot:       ".",
	DotDot:    "..",
	Hash:      "#",
	At:        "@",
	Pipe:      "|",
	Bang:      "!",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Opaque:    "opaque",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsOpenDelim reports whether the token opens a bracket group.
func (k Kind) IsOpenDelim() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsCloseDelim reports whether the token closes a bracket group.
func (k Kind) IsCloseDelim() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// CloseOf returns the closing kind matching an opening delimiter.
func CloseOf(open Kind) Kind {
	switch open {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	}
	return Invalid
}
