package resolve

import (
	"testing"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/lexer"
	"mview/internal/parser"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

func resolveSrc(t *testing.T, src string) (*ast.Document, *Info, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.mv", []byte(src)))
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
	doc := parser.Parse(stream, toks, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors for %q: %+v", src, bag.Items())
	}
	info := Resolve(doc, Options{Reporter: rep})
	return doc, info, bag
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

func TestCleanDocument(t *testing.T) {
	_, _, bag := resolveSrc(t, `div.main { h1 { "title" } MyComp(x=1) { slot:Side { "s" } } }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestVoidElementChildren(t *testing.T) {
	_, _, bag := resolveSrc(t, `br { "x" }`)
	wantCode(t, bag, diag.ResolveIllegalChildren)
}

func TestVoidElementChildlessOK(t *testing.T) {
	_, _, bag := resolveSrc(t, `input type="text";`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestSlotOutsideComponent(t *testing.T) {
	_, _, bag := resolveSrc(t, `div { slot:Side { "x" } }`)
	wantCode(t, bag, diag.ResolveIllegalChildren)
}

func TestSlotInsideFragmentStillIllegal(t *testing.T) {
	_, _, bag := resolveSrc(t, `MyComp { ( slot:Side { "x" } ) }`)
	wantCode(t, bag, diag.ResolveIllegalChildren)
}

func TestDuplicateSlot(t *testing.T) {
	_, _, bag := resolveSrc(t, `Tabs { slot:Tab { "a" } slot:Tab { "b" } }`)
	wantCode(t, bag, diag.ResolveConflictingAttribute)
}

func TestUnknownDirective(t *testing.T) {
	_, _, bag := resolveSrc(t, `div foo:bar={x};`)
	wantCode(t, bag, diag.ResolveUnknownDirective)
}

func TestElementOnlyDirectiveOnComponent(t *testing.T) {
	_, _, bag := resolveSrc(t, `MyComp bind:value={v};`)
	wantCode(t, bag, diag.ResolveUnknownDirective)
}

func TestDuplicateAttribute(t *testing.T) {
	_, _, bag := resolveSrc(t, `div class="a" class="b";`)
	wantCode(t, bag, diag.ResolveConflictingAttribute)
}

func TestSameNameDifferentDirectiveOK(t *testing.T) {
	_, _, bag := resolveSrc(t, `input value="x" bind:value={v};`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestIDSelectorConflict(t *testing.T) {
	_, _, bag := resolveSrc(t, `div#main id="other";`)
	wantCode(t, bag, diag.ResolveConflictingAttribute)
}

func TestNestedDoctype(t *testing.T) {
	_, _, bag := resolveSrc(t, `div { !DOCTYPE html; }`)
	wantCode(t, bag, diag.ResolveIllegalChildren)
}

func TestRuntimeMergeMarking(t *testing.T) {
	doc, info, bag := resolveSrc(t, `div {..extra} class="x";`+"\nspan;")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if !info.NeedsRuntimeMerge(doc.Children[0]) {
		t.Fatal("spread node not marked for runtime merge")
	}
	if info.NeedsRuntimeMerge(doc.Children[1]) {
		t.Fatal("plain node marked for runtime merge")
	}
}
