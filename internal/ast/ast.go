// Package ast defines the typed tree for one mview DSL document.
//
// Node and AttrValue are closed variants: every stage switches over them
// exhaustively, and adding a kind means updating every stage. That is
// intentional; the compile-time switch takes the place of dynamic dispatch.
// Every node owns its children exclusively and child order is significant
// all the way into emitted code.
package ast

import (
	"mview/internal/source"
)

// Document is the top-level sibling sequence of one expansion. It is created
// by the parser and discarded after lowering; nothing persists it.
type Document struct {
	Children   []Node
	Directives []GenDirective
	Span       source.Span
}

// GenDirective is one //mv: instruction for the generated-file wrapper
// (package clause, extra import, function signature).
type GenDirective struct {
	Name    string
	Payload string
	Span    source.Span
}

// ExprText is a verbatim embedded host-language expression with its span.
// The compiler never interprets it beyond a syntax check at lowering time.
type ExprText struct {
	Raw  string
	Span source.Span
}

// Node is one syntactic unit of the DSL.
type Node interface {
	node()
	Span() source.Span
}

// Selector is a .class or #id shorthand on an element header.
type Selector struct {
	ID   bool // false: class
	Name string
	Span source.Span
}

// ClosureParam is one typed parameter of a children closure.
type ClosureParam struct {
	Name string
	Type string
	Span source.Span
}

// Closure is the |x: T| argument list components may pass to their children.
type Closure struct {
	Params []ClosureParam
	Span   source.Span
}

// Element is a lower-case tag node (div, input, data-table).
type Element struct {
	Tag       string
	TagSpan   source.Span
	Selectors []Selector
	Attrs     []Attr
	Children  []Node
	Childless bool // terminated with ';'
	NodeSpan  source.Span
}

func (*Element) node() {}

func (e *Element) Span() source.Span { return e.NodeSpan }

// Component is a capitalized (optionally dotted) constructor reference.
type Component struct {
	Path      []string // ["MyComp"] or ["ui", "Card"]
	PathSpan  source.Span
	Selectors []Selector
	Attrs     []Attr
	Closure   *Closure
	Children  []Node
	Childless bool
	NodeSpan  source.Span
}

func (*Component) node() {}

func (c *Component) Span() source.Span { return c.NodeSpan }

// Name returns the dotted path of the component.
func (c *Component) Name() string {
	out := ""
	for i, seg := range c.Path {
		if i > 0 {
			out += "."
		}
		out += seg
	}
	return out
}

// Slot is a slot:Name node; legal only directly under a component.
type Slot struct {
	Name     string
	NameSpan source.Span
	Attrs    []Attr
	Closure  *Closure
	Children []Node
	NodeSpan source.Span
}

func (*Slot) node() {}

func (s *Slot) Span() source.Span { return s.NodeSpan }

// TextLit is a string-literal child.
type TextLit struct {
	Value    string // unquoted
	NodeSpan source.Span
}

func (*TextLit) node() {}

func (t *TextLit) Span() source.Span { return t.NodeSpan }

// ExprBlock is a {expr} child, spliced verbatim at lowering time.
type ExprBlock struct {
	Expr     ExprText
	NodeSpan source.Span
}

func (*ExprBlock) node() {}

func (e *ExprBlock) Span() source.Span { return e.NodeSpan }

// DeferredBlock is an [expr] or f["...", args] child: the value is wrapped
// in a closure so the host framework evaluates it at render time.
type DeferredBlock struct {
	Expr     ExprText
	Format   bool // f[...] adds Sprintf into the wrapper
	NodeSpan source.Span
}

func (*DeferredBlock) node() {}

func (d *DeferredBlock) Span() source.Span { return d.NodeSpan }

// Fragment is a bare children group with no tag. An empty fragment is valid.
type Fragment struct {
	Children []Node
	NodeSpan source.Span
}

func (*Fragment) node() {}

func (f *Fragment) Span() source.Span { return f.NodeSpan }

// Doctype is the special `!DOCTYPE html;` element.
type Doctype struct {
	Name     string
	NodeSpan source.Span
}

func (*Doctype) node() {}

func (d *Doctype) Span() source.Span { return d.NodeSpan }

// ControlKind discriminates control blocks.
type ControlKind uint8

const (
	ControlIf ControlKind = iota
	ControlFor
	ControlMatch
)

func (k ControlKind) String() string {
	switch k {
	case ControlIf:
		return "if"
	case ControlFor:
		return "for"
	case ControlMatch:
		return "match"
	}
	return "control"
}

// ControlBranch is one arm of a control block. Cond is nil for @else and
// @default arms. For ControlFor the single branch's Cond is the iterated
// expression.
type ControlBranch struct {
	Cond *ExprText
	Body []Node
	Span source.Span
}

// ControlBlock is an @if/@for/@match construct.
type ControlBlock struct {
	Kind     ControlKind
	Subject  *ExprText // @match subject, nil otherwise
	LoopVars []string  // @for patterns: (x) or (i, x)
	Branches []ControlBranch
	NodeSpan source.Span
}

func (*ControlBlock) node() {}

func (c *ControlBlock) Span() source.Span { return c.NodeSpan }
