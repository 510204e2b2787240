package mviewrt

import (
	"fmt"
	"io"
	"sort"

	g "maragu.dev/gomponents"
)

// Entry is one attribute in a runtime merge. Entries with the same name
// collapse; the last one written wins while keeping the position of the
// first. An Entry with an empty name never merges.
type Entry struct {
	Name string
	Node g.Node
}

// Set names a string-valued attribute.
func Set(name, value string) Entry {
	return Entry{Name: name, Node: g.Attr(name, value)}
}

// SetFlag names a boolean attribute rendered without a value.
func SetFlag(name string) Entry {
	return Entry{Name: name, Node: g.Attr(name)}
}

// SetNode wraps an already-built attribute node under a merge name.
func SetNode(name string, n g.Node) Entry {
	return Entry{Name: name, Node: n}
}

// SpreadMap expands a map into entries in sorted key order, so spreads render
// deterministically.
func SpreadMap(m map[string]string) []Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Set(k, m[k]))
	}
	return out
}

// Attrs merges attribute entries in argument order with last-write-wins
// semantics. Arguments are Entry or []Entry; a spread contributes its
// expanded entries at the position it was passed. Generated code passes
// spread groups ahead of named entries, so explicit attributes override
// spread keys.
func Attrs(groups ...any) g.Node {
	var flat []Entry
	for _, grp := range groups {
		switch v := grp.(type) {
		case Entry:
			flat = append(flat, v)
		case []Entry:
			flat = append(flat, v...)
		default:
			panic(fmt.Sprintf("mviewrt.Attrs: unsupported argument %T", grp))
		}
	}

	order := make([]int, 0, len(flat))
	byName := map[string]int{}
	for i, e := range flat {
		if e.Name == "" {
			order = append(order, i)
			continue
		}
		if at, seen := byName[e.Name]; seen {
			for j, idx := range order {
				if idx == at {
					order[j] = i
				}
			}
			byName[e.Name] = i
			continue
		}
		byName[e.Name] = i
		order = append(order, i)
	}

	nodes := make([]g.Node, 0, len(order))
	for _, idx := range order {
		nodes = append(nodes, attrEntry{flat[idx].Node})
	}
	return attrGroup(nodes)
}

// attrEntry forces merged nodes into the opening tag even when the underlying
// node does not describe itself.
type attrEntry struct{ n g.Node }

func (a attrEntry) Render(w io.Writer) error { return a.n.Render(w) }

func (attrEntry) Type() g.NodeType { return g.AttributeType }

type attrGroup []g.Node

func (a attrGroup) Render(w io.Writer) error {
	for _, n := range a {
		if err := n.Render(w); err != nil {
			return err
		}
	}
	return nil
}

func (attrGroup) Type() g.NodeType { return g.AttributeType }
