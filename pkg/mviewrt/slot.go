package mviewrt

import (
	"io"

	g "maragu.dev/gomponents"
)

// SlotNode is the named child content a view passes to a component with
// slot:Name. Rendering a SlotNode directly renders its content, so components
// that ignore slot names still work.
type SlotNode struct {
	Name    string
	Attrs   []g.Node
	Content g.Node
	Fn      any // children closure, when the slot was given one
}

// Slot builds a named slot. attrs carries the slot header's attribute nodes.
func Slot(name string, attrs []g.Node, content g.Node) *SlotNode {
	return &SlotNode{Name: name, Attrs: attrs, Content: content}
}

// SlotFn builds a named slot whose content is a children closure. The owning
// component asserts fn to the signature it documents and calls it itself;
// rendering such a slot directly produces nothing.
func SlotFn(name string, attrs []g.Node, fn any) *SlotNode {
	return &SlotNode{Name: name, Attrs: attrs, Fn: fn}
}

func (s *SlotNode) Render(w io.Writer) error {
	if s.Content == nil {
		return nil
	}
	return s.Content.Render(w)
}

// NamedSlot returns the first slot called name among a component's arguments,
// nil when absent. Components use it to place slot content explicitly.
func NamedSlot(name string, children []g.Node) *SlotNode {
	for _, c := range children {
		if s, ok := c.(*SlotNode); ok && s.Name == name {
			return s
		}
	}
	return nil
}

// WithoutSlots filters slot nodes out of a component's arguments, leaving the
// default children.
func WithoutSlots(children []g.Node) []g.Node {
	out := make([]g.Node, 0, len(children))
	for _, c := range children {
		if _, ok := c.(*SlotNode); ok {
			continue
		}
		out = append(out, c)
	}
	return out
}
