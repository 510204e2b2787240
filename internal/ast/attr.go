package ast

import (
	"mview/internal/source"
)

// Directive prefixes understood by the resolver. Everything else in
// directive position is an UnknownDirective.
const (
	DirOn    = "on"
	DirClass = "class"
	DirStyle = "style"
	DirAttr  = "attr"
	DirProp  = "prop"
	DirUse   = "use"
	DirBind  = "bind"
	DirSlot  = "slot" // consumed by the parser, never survives on an Attr
)

// Reserved attribute names that may appear at most once per node.
var ReservedAttrs = map[string]bool{
	"ref": true,
	"key": true,
}

// AttrValue is the closed variant of attribute payloads.
type AttrValue interface {
	attrValue()
	Span() source.Span
}

// LitKind discriminates literal attribute values.
type LitKind uint8

const (
	LitString LitKind = iota
	LitInt
	LitFloat
	LitBool
)

// Literal is a directly written value: class="main", data-index=3,
// checked=true.
type Literal struct {
	Kind      LitKind
	Text      string // unquoted for LitString
	ValueSpan source.Span
}

func (Literal) attrValue() {}

func (l Literal) Span() source.Span { return l.ValueSpan }

// Expression is a braced or bracketed value. Deferred values ([expr]) lower
// into render-time closures; Format adds Sprintf (f["...", args]).
type Expression struct {
	Expr     ExprText
	Deferred bool
	Format   bool
}

func (Expression) attrValue() {}

func (e Expression) Span() source.Span { return e.Expr.Span }

// Shorthand is a value implied by the attribute name: a bare boolean flag
// (`blocking`) or the {name} form where the value is the identifier itself.
type Shorthand struct {
	Flag      bool // true: bare flag = true; false: {name} = ident name
	ValueSpan source.Span
}

func (Shorthand) attrValue() {}

func (s Shorthand) Span() source.Span { return s.ValueSpan }

// EventHandler is the payload of an on:event attribute.
type EventHandler struct {
	Expr ExprText
}

func (EventHandler) attrValue() {}

func (e EventHandler) Span() source.Span { return e.Expr.Span }

// Spread is a {..expr} entry expanding a map of attributes at render time.
type Spread struct {
	Expr ExprText
}

func (Spread) attrValue() {}

func (s Spread) Span() source.Span { return s.Expr.Span }

// Attr is one attribute of an element, component, or slot.
// Dir is the directive prefix ("" for plain attributes); Name is the final
// key, event name, or directive subkey. A Spread value has an empty Name.
// The value kinds are mutually exclusive by construction.
type Attr struct {
	Dir      string
	Name     string
	NameSpan source.Span
	Value    AttrValue
	AttrSpan source.Span
}

// IsSpread reports whether the attribute is a spread entry.
func (a Attr) IsSpread() bool {
	_, ok := a.Value.(Spread)
	return ok
}
