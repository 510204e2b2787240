package parser

import (
	"testing"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/lexer"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

func parseSrc(t *testing.T, src string) (*ast.Document, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mv", []byte(src))
	file := fs.Get(id)
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	stream := structure.Build(file, toks, rep)
	doc := Parse(stream, toks, Options{Reporter: rep})
	return doc, bag
}

func parseOK(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors for %q: %+v", src, bag.Items())
	}
	return doc
}

func child[T ast.Node](t *testing.T, nodes []ast.Node, i int) T {
	t.Helper()
	if i >= len(nodes) {
		t.Fatalf("want child %d, have %d children", i, len(nodes))
	}
	n, ok := nodes[i].(T)
	if !ok {
		t.Fatalf("child %d is %T", i, nodes[i])
	}
	return n
}

func wantCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("want diagnostic %s, got %+v", code, bag.Items())
}

func TestChildlessElement(t *testing.T) {
	doc := parseOK(t, "br;")
	el := child[*ast.Element](t, doc.Children, 0)
	if el.Tag != "br" || !el.Childless {
		t.Fatalf("got tag=%q childless=%v", el.Tag, el.Childless)
	}
}

func TestElementWithText(t *testing.T) {
	doc := parseOK(t, `div { "hi" }`)
	el := child[*ast.Element](t, doc.Children, 0)
	txt := child[*ast.TextLit](t, el.Children, 0)
	if txt.Value != "hi" {
		t.Fatalf("got text %q", txt.Value)
	}
}

func TestSelectors(t *testing.T) {
	doc := parseOK(t, `h1.title#header { "x" }`)
	el := child[*ast.Element](t, doc.Children, 0)
	if len(el.Selectors) != 2 {
		t.Fatalf("want 2 selectors, got %d", len(el.Selectors))
	}
	if el.Selectors[0].ID || el.Selectors[0].Name != "title" {
		t.Fatalf("selector 0: %+v", el.Selectors[0])
	}
	if !el.Selectors[1].ID || el.Selectors[1].Name != "header" {
		t.Fatalf("selector 1: %+v", el.Selectors[1])
	}
}

func TestElementClassChain(t *testing.T) {
	doc := parseOK(t, `div.primary { "x" }`)
	el := child[*ast.Element](t, doc.Children, 0)
	if el.Tag != "div" || len(el.Selectors) != 1 || el.Selectors[0].Name != "primary" {
		t.Fatalf("got tag=%q selectors=%+v", el.Tag, el.Selectors)
	}
}

func TestInlineAttrValues(t *testing.T) {
	doc := parseOK(t, `input type="text" disabled data-index=3 ratio=0.5 checked=true value={name};`)
	el := child[*ast.Element](t, doc.Children, 0)
	if len(el.Attrs) != 6 {
		t.Fatalf("want 6 attrs, got %d", len(el.Attrs))
	}

	cases := []struct {
		name string
		chk  func(a ast.Attr) bool
	}{
		{"type", func(a ast.Attr) bool {
			l, ok := a.Value.(ast.Literal)
			return ok && l.Kind == ast.LitString && l.Text == "text"
		}},
		{"disabled", func(a ast.Attr) bool {
			s, ok := a.Value.(ast.Shorthand)
			return ok && s.Flag
		}},
		{"data-index", func(a ast.Attr) bool {
			l, ok := a.Value.(ast.Literal)
			return ok && l.Kind == ast.LitInt && l.Text == "3"
		}},
		{"ratio", func(a ast.Attr) bool {
			l, ok := a.Value.(ast.Literal)
			return ok && l.Kind == ast.LitFloat && l.Text == "0.5"
		}},
		{"checked", func(a ast.Attr) bool {
			l, ok := a.Value.(ast.Literal)
			return ok && l.Kind == ast.LitBool && l.Text == "true"
		}},
		{"value", func(a ast.Attr) bool {
			e, ok := a.Value.(ast.Expression)
			return ok && !e.Deferred && e.Expr.Raw == "name"
		}},
	}
	for i, c := range cases {
		a := el.Attrs[i]
		if a.Name != c.name {
			t.Errorf("attr %d: want name %q, got %q", i, c.name, a.Name)
		}
		if !c.chk(a) {
			t.Errorf("attr %q: unexpected value %#v", c.name, a.Value)
		}
	}
}

func TestDirectiveAttrs(t *testing.T) {
	doc := parseOK(t, `input on:change={handle} class:is-red={bad} bind:value={v} use:focus;`)
	el := child[*ast.Element](t, doc.Children, 0)
	if len(el.Attrs) != 4 {
		t.Fatalf("want 4 attrs, got %d", len(el.Attrs))
	}

	if el.Attrs[0].Dir != ast.DirOn || el.Attrs[0].Name != "change" {
		t.Fatalf("attr 0: %+v", el.Attrs[0])
	}
	if h, ok := el.Attrs[0].Value.(ast.EventHandler); !ok || h.Expr.Raw != "handle" {
		t.Fatalf("on:change value: %#v", el.Attrs[0].Value)
	}
	if el.Attrs[1].Dir != ast.DirClass || el.Attrs[1].Name != "is-red" {
		t.Fatalf("attr 1: %+v", el.Attrs[1])
	}
	if el.Attrs[2].Dir != ast.DirBind || el.Attrs[2].Name != "value" {
		t.Fatalf("attr 2: %+v", el.Attrs[2])
	}
	if el.Attrs[3].Dir != ast.DirUse || el.Attrs[3].Name != "focus" {
		t.Fatalf("attr 3: %+v", el.Attrs[3])
	}
	if s, ok := el.Attrs[3].Value.(ast.Shorthand); !ok || !s.Flag {
		t.Fatalf("use:focus value: %#v", el.Attrs[3].Value)
	}
}

func TestQuotedDirectiveSubkey(t *testing.T) {
	doc := parseOK(t, `div class:"complex-[class]-name"={on};`)
	el := child[*ast.Element](t, doc.Children, 0)
	if el.Attrs[0].Dir != ast.DirClass || el.Attrs[0].Name != "complex-[class]-name" {
		t.Fatalf("got %+v", el.Attrs[0])
	}
}

func TestComponentParenAttrs(t *testing.T) {
	doc := parseOK(t, `MyComp(x=1) { span { "y" } }`)
	comp := child[*ast.Component](t, doc.Children, 0)
	if comp.Name() != "MyComp" {
		t.Fatalf("got name %q", comp.Name())
	}
	if len(comp.Attrs) != 1 || comp.Attrs[0].Name != "x" {
		t.Fatalf("got attrs %+v", comp.Attrs)
	}
	span := child[*ast.Element](t, comp.Children, 0)
	if span.Tag != "span" {
		t.Fatalf("got child tag %q", span.Tag)
	}
}

func TestComponentImplicitChildless(t *testing.T) {
	doc := parseOK(t, `MyComp(x=1)`)
	comp := child[*ast.Component](t, doc.Children, 0)
	if !comp.Childless || len(comp.Attrs) != 1 {
		t.Fatalf("got %+v", comp)
	}
}

func TestDottedComponentPath(t *testing.T) {
	doc := parseOK(t, `ui.Card { "body" }`)
	comp := child[*ast.Component](t, doc.Children, 0)
	if comp.Name() != "ui.Card" {
		t.Fatalf("got name %q", comp.Name())
	}
}

func TestShorthandAndSpread(t *testing.T) {
	doc := parseOK(t, `div {class} {..extra};`)
	el := child[*ast.Element](t, doc.Children, 0)
	if len(el.Attrs) != 2 {
		t.Fatalf("want 2 attrs, got %d", len(el.Attrs))
	}
	if s, ok := el.Attrs[0].Value.(ast.Shorthand); !ok || s.Flag || el.Attrs[0].Name != "class" {
		t.Fatalf("attr 0: %+v", el.Attrs[0])
	}
	if !el.Attrs[1].IsSpread() {
		t.Fatalf("attr 1 not a spread: %+v", el.Attrs[1])
	}
	if sp := el.Attrs[1].Value.(ast.Spread); sp.Expr.Raw != "extra" {
		t.Fatalf("spread raw: %q", sp.Expr.Raw)
	}
}

func TestDeferredAttrValues(t *testing.T) {
	doc := parseOK(t, `div data-count=[count()] title=f["%d items", n];`)
	el := child[*ast.Element](t, doc.Children, 0)
	e0 := el.Attrs[0].Value.(ast.Expression)
	if !e0.Deferred || e0.Format || e0.Expr.Raw != "count()" {
		t.Fatalf("attr 0: %#v", e0)
	}
	e1 := el.Attrs[1].Value.(ast.Expression)
	if !e1.Deferred || !e1.Format || e1.Expr.Raw != `"%d items", n` {
		t.Fatalf("attr 1: %#v", e1)
	}
}

func TestExpressionChildren(t *testing.T) {
	doc := parseOK(t, `div { {value} [count()] f["%d", n] }`)
	el := child[*ast.Element](t, doc.Children, 0)
	if len(el.Children) != 3 {
		t.Fatalf("want 3 children, got %d", len(el.Children))
	}
	eb := child[*ast.ExprBlock](t, el.Children, 0)
	if eb.Expr.Raw != "value" {
		t.Fatalf("expr block: %q", eb.Expr.Raw)
	}
	db := child[*ast.DeferredBlock](t, el.Children, 1)
	if db.Format || db.Expr.Raw != "count()" {
		t.Fatalf("deferred block: %+v", db)
	}
	fb := child[*ast.DeferredBlock](t, el.Children, 2)
	if !fb.Format || fb.Expr.Raw != `"%d", n` {
		t.Fatalf("format block: %+v", fb)
	}
}

func TestFragmentChildren(t *testing.T) {
	doc := parseOK(t, `div { ( "a" "b" ) }`)
	el := child[*ast.Element](t, doc.Children, 0)
	frag := child[*ast.Fragment](t, el.Children, 0)
	if len(frag.Children) != 2 {
		t.Fatalf("want 2 fragment children, got %d", len(frag.Children))
	}
}

func TestDoctype(t *testing.T) {
	doc := parseOK(t, "!DOCTYPE html;\nhtml { body { \"x\" } }")
	dt := child[*ast.Doctype](t, doc.Children, 0)
	if dt.Name != "html" {
		t.Fatalf("got doctype %q", dt.Name)
	}
	child[*ast.Element](t, doc.Children, 1)
}

func TestControlIfElse(t *testing.T) {
	doc := parseOK(t, `@if {loggedIn} { "hello" } @else if {pending} { "wait" } @else { "login" }`)
	blk := child[*ast.ControlBlock](t, doc.Children, 0)
	if blk.Kind != ast.ControlIf || len(blk.Branches) != 3 {
		t.Fatalf("got kind=%v branches=%d", blk.Kind, len(blk.Branches))
	}
	if blk.Branches[0].Cond == nil || blk.Branches[0].Cond.Raw != "loggedIn" {
		t.Fatalf("branch 0: %+v", blk.Branches[0])
	}
	if blk.Branches[2].Cond != nil {
		t.Fatalf("branch 2 should be else: %+v", blk.Branches[2])
	}
}

func TestControlFor(t *testing.T) {
	doc := parseOK(t, `@for i, item in {items} { li { [item] } }`)
	blk := child[*ast.ControlBlock](t, doc.Children, 0)
	if blk.Kind != ast.ControlFor {
		t.Fatalf("got kind %v", blk.Kind)
	}
	if len(blk.LoopVars) != 2 || blk.LoopVars[0] != "i" || blk.LoopVars[1] != "item" {
		t.Fatalf("got loop vars %v", blk.LoopVars)
	}
	if blk.Branches[0].Cond.Raw != "items" {
		t.Fatalf("got iterated %q", blk.Branches[0].Cond.Raw)
	}
}

func TestControlMatch(t *testing.T) {
	doc := parseOK(t, `@match {state} { @case {"on"} { "ON" } @case {"off"} { "OFF" } @default { "?" } }`)
	blk := child[*ast.ControlBlock](t, doc.Children, 0)
	if blk.Kind != ast.ControlMatch || blk.Subject == nil || blk.Subject.Raw != "state" {
		t.Fatalf("got %+v", blk)
	}
	if len(blk.Branches) != 3 || blk.Branches[2].Cond != nil {
		t.Fatalf("got branches %+v", blk.Branches)
	}
}

func TestSlotUnderComponent(t *testing.T) {
	doc := parseOK(t, `Tabs { slot:Tab label="first" { "content" } }`)
	comp := child[*ast.Component](t, doc.Children, 0)
	slot := child[*ast.Slot](t, comp.Children, 0)
	if slot.Name != "Tab" || len(slot.Attrs) != 1 || slot.Attrs[0].Name != "label" {
		t.Fatalf("got %+v", slot)
	}
}

func TestChildrenClosure(t *testing.T) {
	doc := parseOK(t, `List data={items} |item: string, i: int| { li { [item] } }`)
	comp := child[*ast.Component](t, doc.Children, 0)
	if comp.Closure == nil || len(comp.Closure.Params) != 2 {
		t.Fatalf("got closure %+v", comp.Closure)
	}
	p0 := comp.Closure.Params[0]
	if p0.Name != "item" || p0.Type != "string" {
		t.Fatalf("param 0: %+v", p0)
	}
	p1 := comp.Closure.Params[1]
	if p1.Name != "i" || p1.Type != "int" {
		t.Fatalf("param 1: %+v", p1)
	}
}

func TestGenDirectives(t *testing.T) {
	doc := parseOK(t, "//mv:package views\n//mv:func Profile(name string)\ndiv { \"x\" }")
	if len(doc.Directives) != 2 {
		t.Fatalf("want 2 directives, got %+v", doc.Directives)
	}
	if doc.Directives[0].Name != "package" || doc.Directives[0].Payload != "views" {
		t.Fatalf("directive 0: %+v", doc.Directives[0])
	}
	if doc.Directives[1].Name != "func" || doc.Directives[1].Payload != "Profile(name string)" {
		t.Fatalf("directive 1: %+v", doc.Directives[1])
	}
}

func TestInvalidNodeName(t *testing.T) {
	_, bag := parseSrc(t, "fooBar;")
	wantCode(t, bag, diag.ParseInvalidNodeName)
}

func TestMissingTail(t *testing.T) {
	_, bag := parseSrc(t, `div class="x"`)
	wantCode(t, bag, diag.ParseExpectChildrenOrSemi)
}

func TestDuplicateReservedAttr(t *testing.T) {
	_, bag := parseSrc(t, "div ref={a} ref={b};")
	wantCode(t, bag, diag.ParseDuplicateReservedAttribute)
}

func TestBareValueNeedsBraces(t *testing.T) {
	_, bag := parseSrc(t, "div class=name;")
	wantCode(t, bag, diag.ParseExpectAttrValue)
}

func TestStrayElse(t *testing.T) {
	_, bag := parseSrc(t, `@else { "x" }`)
	wantCode(t, bag, diag.ParseExpectControlHeader)
}

func TestRecoveryAtSiblingBoundary(t *testing.T) {
	doc, bag := parseSrc(t, "@wrong {x}\nspan;")
	wantCode(t, bag, diag.ParseExpectControlHeader)
	var spans int
	for _, n := range doc.Children {
		if el, ok := n.(*ast.Element); ok && el.Tag == "span" {
			spans++
		}
	}
	if spans != 1 {
		t.Fatalf("sibling after error not recovered: %+v", doc.Children)
	}
}

func TestMultipleErrorsAccumulate(t *testing.T) {
	_, bag := parseSrc(t, "fooBar;\nbazQux;")
	var count int
	for _, d := range bag.Items() {
		if d.Code == diag.ParseInvalidNodeName {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("want 2 invalid-name errors, got %d: %+v", count, bag.Items())
	}
}
