// Package mviewrt is the render-time support library for code generated by
// the mview compiler. Generated expressions call into it for deferred
// evaluation, attribute merging, directives, and named slots; handwritten
// code normally never imports it directly.
//
// Components are plain functions returning g.Node. A component invocation is
// lowered to a call whose arguments appear in source order: attribute nodes
// first, then the children closure (when the view passes one), then child
// nodes. The component's own signature decides what it accepts; the Go
// compiler reports mismatches in the generated file.
package mviewrt

import (
	"fmt"
	"io"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Dyn defers a child to render time. The callback runs on every render.
func Dyn(f func() g.Node) g.Node {
	return dynNode(f)
}

type dynNode func() g.Node

func (d dynNode) Render(w io.Writer) error {
	n := d()
	if n == nil {
		return nil
	}
	return n.Render(w)
}

// DynText defers a text child to render time.
func DynText(f func() string) g.Node {
	return dynNode(func() g.Node { return g.Text(f()) })
}

// DynAttr defers an attribute value to render time.
func DynAttr(name string, f func() string) g.Node {
	return dynAttr{name: name, f: f}
}

type dynAttr struct {
	name string
	f    func() string
}

func (d dynAttr) Render(w io.Writer) error {
	return g.Attr(d.name, d.f()).Render(w)
}

// Type satisfies gomponents' attribute contract so dynamic attributes render
// inside the opening tag.
func (dynAttr) Type() g.NodeType { return g.AttributeType }

// On emits an on<event> attribute with a script payload.
func On(event, script string) g.Node {
	return g.Attr("on"+event, script)
}

// Prop attaches a non-string value to a component or element. Elements render
// it with fmt.Sprint; components receive it as an attribute entry and may
// interpret it themselves.
func Prop(name string, value any) g.Node {
	return propNode{name: name, value: value}
}

type propNode struct {
	name  string
	value any
}

func (p propNode) Render(w io.Writer) error {
	return g.Attr(p.name, fmt.Sprint(p.value)).Render(w)
}

func (propNode) Type() g.NodeType { return g.AttributeType }

// Bind renders the current value of a two-way binding target. The pointer is
// read at render time, so the emitted attribute follows later mutations.
func Bind(name string, value *string) g.Node {
	return dynAttr{name: name, f: func() string {
		if value == nil {
			return ""
		}
		return *value
	}}
}

// Use invokes an element directive. The callback returns extra nodes for the
// element, nil for none.
func Use(f func() g.Node) g.Node {
	return dynNode(f)
}

// ClassIf includes a class token when cond holds.
func ClassIf(name string, cond bool) g.Node {
	return g.If(cond, html.Class(name))
}

// StyleKV emits a single style property.
func StyleKV(prop, value string) g.Node {
	return g.Attr("style", prop+": "+value+";")
}

// Doctype prefixes a document node with its doctype declaration.
func Doctype(name string, rest g.Node) g.Node {
	return doctypeNode{name: name, rest: rest}
}

type doctypeNode struct {
	name string
	rest g.Node
}

func (d doctypeNode) Render(w io.Writer) error {
	if _, err := io.WriteString(w, "<!doctype "+d.name+">"); err != nil {
		return err
	}
	if d.rest == nil {
		return nil
	}
	return d.rest.Render(w)
}
