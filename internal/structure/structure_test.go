package structure

import (
	"testing"

	"mview/internal/diag"
	"mview/internal/lexer"
	"mview/internal/source"
	"mview/internal/token"
)

func build(t *testing.T, src string) (*Stream, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.mv", []byte(src)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return Build(file, tokens, rep), file, bag
}

func TestFlatLeafs(t *testing.T) {
	stream, _, bag := build(t, `br;`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(stream.Items) != 2 {
		t.Fatalf("want 2 items (ident, semicolon), got %d", len(stream.Items))
	}
	leaf, ok := stream.Items[0].(Leaf)
	if !ok || leaf.Tok.Kind != token.Ident {
		t.Fatalf("got %#v", stream.Items[0])
	}
}

func TestNestedGroups(t *testing.T) {
	stream, _, bag := build(t, `div { span { "x" } }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}

	outer := findGroup(t, stream.Items)
	if outer.Delim != token.LBrace {
		t.Fatalf("outer delim %v", outer.Delim)
	}
	inner := findGroup(t, outer.Items)
	if inner.Delim != token.LBrace {
		t.Fatalf("inner delim %v", inner.Delim)
	}
	if len(inner.Items) != 1 {
		t.Fatalf("inner items %d", len(inner.Items))
	}
	if leaf, ok := inner.Items[0].(Leaf); !ok || leaf.Tok.Kind != token.StringLit {
		t.Fatalf("got %#v", inner.Items[0])
	}
}

func findGroup(t *testing.T, items []Item) Group {
	t.Helper()
	for _, it := range items {
		if g, ok := it.(Group); ok {
			return g
		}
	}
	t.Fatal("no group found")
	return Group{}
}

func TestRawInterior(t *testing.T) {
	stream, file, bag := build(t, `p { user.Name(" a ") }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	g := findGroup(t, stream.Items)
	raw, sp := g.RawInterior(file)
	if raw != ` user.Name(" a ") ` {
		t.Errorf("got %q", raw)
	}
	if string(file.Content[sp.Start:sp.End]) != raw {
		t.Errorf("span does not slice back to raw text")
	}
}

func TestBracketsInsideStringsIgnored(t *testing.T) {
	stream, _, bag := build(t, `div { "{ not a group }" }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	g := findGroup(t, stream.Items)
	if len(g.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(g.Items))
	}
	if _, ok := g.Items[0].(Leaf); !ok {
		t.Fatalf("string interior became a group: %#v", g.Items[0])
	}
}

func TestUnclosedBraceSingleDiagnostic(t *testing.T) {
	stream, _, bag := build(t, "div {\n  span {\n    \"deep\"\n")
	if bag.Len() != 2 {
		t.Fatalf("want one diagnostic per unclosed opener, got %d: %+v", bag.Len(), bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.StructUnbalancedDelimiter {
			t.Errorf("got code %v", d.Code)
		}
	}
	// the partial tree is still usable
	g := findGroup(t, stream.Items)
	if g.Close.Kind != token.EOF {
		t.Errorf("unclosed group should carry an EOF close, got %v", g.Close.Kind)
	}
}

func TestStrayCloser(t *testing.T) {
	_, _, bag := build(t, `div; }`)
	if bag.Len() != 1 {
		t.Fatalf("want exactly one diagnostic, got %d: %+v", bag.Len(), bag.Items())
	}
	if bag.Items()[0].Code != diag.StructUnbalancedDelimiter {
		t.Errorf("got code %v", bag.Items()[0].Code)
	}
}

func TestMismatchedCloserReportsOnce(t *testing.T) {
	_, _, bag := build(t, `div ( ]`)
	if bag.Len() != 1 {
		t.Fatalf("want exactly one diagnostic, got %d: %+v", bag.Len(), bag.Items())
	}
	if bag.Items()[0].Code != diag.StructUnbalancedDelimiter {
		t.Errorf("got code %v", bag.Items()[0].Code)
	}
}

func TestMismatchedCloserThenRealCloser(t *testing.T) {
	stream, _, bag := build(t, `div ( ] ) ;`)
	if bag.Len() != 1 {
		t.Fatalf("want exactly one diagnostic, got %d: %+v", bag.Len(), bag.Items())
	}
	// the ')' still closes the group, so the trailing ';' is a sibling leaf
	g := findGroup(t, stream.Items)
	if g.Close.Kind != token.RParen {
		t.Fatalf("group not closed by ')': %+v", g.Close)
	}
	last := stream.Items[len(stream.Items)-1]
	if l, ok := last.(Leaf); !ok || l.Tok.Kind != token.Semicolon {
		t.Fatalf("trailing ';' lost: %+v", last)
	}
}

func TestCloserOfOuterGroupBubbles(t *testing.T) {
	stream, _, bag := build(t, `{ ( }`)
	if bag.Len() != 1 {
		t.Fatalf("want exactly one diagnostic, got %d: %+v", bag.Len(), bag.Items())
	}
	// '}' belongs to the outer brace group, not to the unclosed paren
	outer := findGroup(t, stream.Items)
	if outer.Delim != token.LBrace || outer.Close.Kind != token.RBrace {
		t.Fatalf("outer group not closed by '}': %+v", outer.Close)
	}
}

func TestMixedDelims(t *testing.T) {
	stream, _, bag := build(t, `f["%d", {count}]`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	g := findGroup(t, stream.Items)
	if g.Delim != token.LBracket {
		t.Fatalf("got delim %v", g.Delim)
	}
	inner := findGroup(t, g.Items)
	if inner.Delim != token.LBrace {
		t.Fatalf("got inner delim %v", inner.Delim)
	}
}
