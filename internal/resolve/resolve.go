// Package resolve validates a parsed document before lowering: node
// placement, directive prefixes, attribute conflicts. It also decides which
// nodes need their attributes merged at render time because of spreads.
package resolve

import (
	"strconv"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/source"
)

// voidElements never take children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// knownDirectives maps prefix to whether it is element-only.
var knownDirectives = map[string]bool{
	ast.DirOn:    false,
	ast.DirClass: false,
	ast.DirStyle: false,
	ast.DirAttr:  false,
	ast.DirProp:  false,
	ast.DirUse:   true,
	ast.DirBind:  true,
}

// Options configures one resolve pass.
type Options struct {
	Reporter diag.Reporter
}

// Info carries resolver facts the code generator consumes.
type Info struct {
	// RuntimeMerge marks nodes whose attributes contain a spread and must be
	// merged at render time, spreads applying ahead of named attributes.
	RuntimeMerge map[ast.Node]bool
}

func (i *Info) NeedsRuntimeMerge(n ast.Node) bool {
	return i != nil && i.RuntimeMerge[n]
}

type resolver struct {
	opts Options
	info *Info
}

// Resolve validates doc and returns lowering annotations. Diagnostics go to
// opts.Reporter; the caller decides afterwards whether lowering may proceed.
func Resolve(doc *ast.Document, opts Options) *Info {
	r := &resolver{
		opts: opts,
		info: &Info{RuntimeMerge: map[ast.Node]bool{}},
	}
	r.nodes(doc.Children, nil, true)
	return r.info
}

func (r *resolver) err(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(r.opts.Reporter, code, sp, msg)
}

// nodes walks one sibling level. parent is the enclosing component when the
// level is a component's direct children, nil otherwise.
func (r *resolver) nodes(ns []ast.Node, parent *ast.Component, top bool) {
	slots := map[string]source.Span{}
	for _, n := range ns {
		switch n := n.(type) {
		case *ast.Element:
			r.element(n)
		case *ast.Component:
			r.component(n)
		case *ast.Slot:
			r.slot(n, parent, slots)
		case *ast.Fragment:
			r.nodes(n.Children, nil, false)
		case *ast.ControlBlock:
			for _, br := range n.Branches {
				r.nodes(br.Body, nil, false)
			}
		case *ast.Doctype:
			if !top {
				r.err(diag.ResolveIllegalChildren, n.Span(),
					"doctype must be at the top level").Emit()
			}
		}
	}
}

func (r *resolver) element(el *ast.Element) {
	if voidElements[el.Tag] && len(el.Children) > 0 {
		r.err(diag.ResolveIllegalChildren, el.TagSpan,
			"void element <"+el.Tag+"> cannot have children").
			WithNote(el.Children[0].Span(), "children start here").
			Emit()
	}
	r.attrs(el, el.Attrs, el.Selectors, false)
	r.nodes(el.Children, nil, false)
}

func (r *resolver) component(comp *ast.Component) {
	r.attrs(comp, comp.Attrs, comp.Selectors, true)
	r.nodes(comp.Children, comp, false)
}

func (r *resolver) slot(s *ast.Slot, parent *ast.Component, seen map[string]source.Span) {
	if parent == nil {
		r.err(diag.ResolveIllegalChildren, s.NameSpan,
			"slot:"+s.Name+" must be a direct child of a component").Emit()
	}
	if prev, dup := seen[s.Name]; dup {
		r.err(diag.ResolveConflictingAttribute, s.NameSpan,
			"duplicate slot:"+s.Name).
			WithNote(prev, "first slot:"+s.Name+" here").
			Emit()
	} else {
		seen[s.Name] = s.NameSpan
	}
	r.attrs(s, s.Attrs, nil, true)
	r.nodes(s.Children, nil, false)
}

// attrs checks one node's attribute list: directive prefixes, duplicate keys,
// and clashes with header selectors. Spread entries flip the runtime-merge
// flag for the node.
func (r *resolver) attrs(n ast.Node, attrs []ast.Attr, sels []ast.Selector, component bool) {
	var idSel *ast.Selector
	for i := range sels {
		if sels[i].ID {
			idSel = &sels[i]
			break
		}
	}

	seen := map[string]source.Span{}
	for _, a := range attrs {
		if a.IsSpread() {
			r.info.RuntimeMerge[n] = true
			continue
		}
		if a.Dir != "" {
			elementOnly, known := knownDirectives[a.Dir]
			if !known {
				r.err(diag.ResolveUnknownDirective, a.AttrSpan,
					"unknown directive "+strconv.Quote(a.Dir+":")).Emit()
				continue
			}
			if component && elementOnly {
				r.err(diag.ResolveUnknownDirective, a.AttrSpan,
					a.Dir+": is only valid on elements").Emit()
				continue
			}
		}

		key := a.Dir + ":" + a.Name
		if prev, dup := seen[key]; dup {
			r.err(diag.ResolveConflictingAttribute, a.NameSpan,
				"attribute "+displayName(a)+" given twice").
				WithNote(prev, "first "+displayName(a)+" here").
				Emit()
			continue
		}
		seen[key] = a.NameSpan

		if a.Dir == "" && a.Name == "id" && idSel != nil {
			r.err(diag.ResolveConflictingAttribute, a.NameSpan,
				"id attribute conflicts with #"+idSel.Name+" selector").
				WithNote(idSel.Span, "#"+idSel.Name+" here").
				Emit()
		}
	}
}

func displayName(a ast.Attr) string {
	if a.Dir != "" {
		return a.Dir + ":" + a.Name
	}
	return a.Name
}
