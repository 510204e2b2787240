package ast

import (
	"strconv"
	"strings"
)

const indentUnit = "    "

// Print renders the document back as canonical DSL text: one attribute
// spelling per form, four-space indents, children blocks always braced.
// Printing a parsed document and reparsing it yields the same tree, which is
// what the fmt command relies on.
func Print(doc *Document) string {
	var sb strings.Builder
	for _, d := range doc.Directives {
		sb.WriteString("//mv:")
		sb.WriteString(d.Name)
		if d.Payload != "" {
			sb.WriteString(" ")
			sb.WriteString(d.Payload)
		}
		sb.WriteString("\n")
	}
	if len(doc.Directives) > 0 && len(doc.Children) > 0 {
		sb.WriteString("\n")
	}
	printNodes(&sb, doc.Children, "")
	return sb.String()
}

func printNodes(sb *strings.Builder, ns []Node, indent string) {
	for _, n := range ns {
		sb.WriteString(indent)
		printNode(sb, n, indent)
		sb.WriteString("\n")
	}
}

func printNode(sb *strings.Builder, n Node, indent string) {
	switch n := n.(type) {
	case *Element:
		sb.WriteString(n.Tag)
		printSelectors(sb, n.Selectors)
		printAttrs(sb, n.Attrs)
		printTail(sb, n.Children, n.Childless, indent)

	case *Component:
		sb.WriteString(n.Name())
		printSelectors(sb, n.Selectors)
		printAttrs(sb, n.Attrs)
		printClosure(sb, n.Closure)
		printTail(sb, n.Children, n.Childless, indent)

	case *Slot:
		sb.WriteString("slot:")
		sb.WriteString(n.Name)
		printAttrs(sb, n.Attrs)
		printClosure(sb, n.Closure)
		printTail(sb, n.Children, len(n.Children) == 0, indent)

	case *TextLit:
		sb.WriteString(strconv.Quote(n.Value))

	case *ExprBlock:
		sb.WriteString("{")
		sb.WriteString(n.Expr.Raw)
		sb.WriteString("}")

	case *DeferredBlock:
		if n.Format {
			sb.WriteString("f")
		}
		sb.WriteString("[")
		sb.WriteString(n.Expr.Raw)
		sb.WriteString("]")

	case *Fragment:
		if len(n.Children) == 0 {
			sb.WriteString("()")
			return
		}
		sb.WriteString("(\n")
		printNodes(sb, n.Children, indent+indentUnit)
		sb.WriteString(indent)
		sb.WriteString(")")

	case *Doctype:
		sb.WriteString("!DOCTYPE ")
		sb.WriteString(n.Name)
		sb.WriteString(";")

	case *ControlBlock:
		printControl(sb, n, indent)
	}
}

func printSelectors(sb *strings.Builder, sels []Selector) {
	for _, s := range sels {
		if s.ID {
			sb.WriteString("#")
		} else {
			sb.WriteString(".")
		}
		sb.WriteString(s.Name)
	}
}

func printAttrs(sb *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		sb.WriteString(" ")
		printAttr(sb, a)
	}
}

func printAttr(sb *strings.Builder, a Attr) {
	if sp, ok := a.Value.(Spread); ok {
		sb.WriteString("{..")
		sb.WriteString(sp.Expr.Raw)
		sb.WriteString("}")
		return
	}

	name := a.Name
	if a.Dir != "" {
		name = a.Dir + ":" + subkey(a.Name)
	}

	switch v := a.Value.(type) {
	case Shorthand:
		if v.Flag {
			sb.WriteString(name)
			return
		}
		if a.Dir != "" {
			sb.WriteString(a.Dir)
			sb.WriteString(":{")
			sb.WriteString(a.Name)
			sb.WriteString("}")
			return
		}
		sb.WriteString("{")
		sb.WriteString(a.Name)
		sb.WriteString("}")

	case Literal:
		sb.WriteString(name)
		sb.WriteString("=")
		if v.Kind == LitString {
			sb.WriteString(strconv.Quote(v.Text))
			return
		}
		sb.WriteString(v.Text)

	case Expression:
		sb.WriteString(name)
		sb.WriteString("=")
		switch {
		case v.Format:
			sb.WriteString("f[")
			sb.WriteString(v.Expr.Raw)
			sb.WriteString("]")
		case v.Deferred:
			sb.WriteString("[")
			sb.WriteString(v.Expr.Raw)
			sb.WriteString("]")
		default:
			sb.WriteString("{")
			sb.WriteString(v.Expr.Raw)
			sb.WriteString("}")
		}

	case EventHandler:
		sb.WriteString(name)
		sb.WriteString("={")
		sb.WriteString(v.Expr.Raw)
		sb.WriteString("}")
	}
}

// subkey requotes directive subkeys that are not plain identifiers.
func subkey(name string) string {
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '-' || b == '_':
		default:
			return strconv.Quote(name)
		}
	}
	return name
}

func printClosure(sb *strings.Builder, cl *Closure) {
	if cl == nil {
		return
	}
	sb.WriteString(" |")
	for i, p := range cl.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if p.Type != "" {
			sb.WriteString(": ")
			sb.WriteString(p.Type)
		}
	}
	sb.WriteString("|")
}

func printTail(sb *strings.Builder, children []Node, childless bool, indent string) {
	if childless && len(children) == 0 {
		sb.WriteString(";")
		return
	}
	if len(children) == 0 {
		sb.WriteString(" {}")
		return
	}
	sb.WriteString(" {\n")
	printNodes(sb, children, indent+indentUnit)
	sb.WriteString(indent)
	sb.WriteString("}")
}

func printControl(sb *strings.Builder, blk *ControlBlock, indent string) {
	switch blk.Kind {
	case ControlIf:
		for i, br := range blk.Branches {
			switch {
			case i == 0:
				sb.WriteString("@if {")
				sb.WriteString(br.Cond.Raw)
				sb.WriteString("}")
			case br.Cond != nil:
				sb.WriteString(" @else if {")
				sb.WriteString(br.Cond.Raw)
				sb.WriteString("}")
			default:
				sb.WriteString(" @else")
			}
			printBody(sb, br.Body, indent)
		}

	case ControlFor:
		sb.WriteString("@for ")
		sb.WriteString(strings.Join(blk.LoopVars, ", "))
		sb.WriteString(" in {")
		sb.WriteString(blk.Branches[0].Cond.Raw)
		sb.WriteString("}")
		printBody(sb, blk.Branches[0].Body, indent)

	case ControlMatch:
		sb.WriteString("@match {")
		sb.WriteString(blk.Subject.Raw)
		sb.WriteString("} {\n")
		inner := indent + indentUnit
		for _, br := range blk.Branches {
			sb.WriteString(inner)
			if br.Cond != nil {
				sb.WriteString("@case {")
				sb.WriteString(br.Cond.Raw)
				sb.WriteString("}")
			} else {
				sb.WriteString("@default")
			}
			printBody(sb, br.Body, inner)
			sb.WriteString("\n")
		}
		sb.WriteString(indent)
		sb.WriteString("}")
	}
}

func printBody(sb *strings.Builder, body []Node, indent string) {
	if len(body) == 0 {
		sb.WriteString(" {}")
		return
	}
	sb.WriteString(" {\n")
	printNodes(sb, body, indent+indentUnit)
	sb.WriteString(indent)
	sb.WriteString("}")
}
