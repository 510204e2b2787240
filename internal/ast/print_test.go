package ast_test

import (
	"strings"
	"testing"

	"mview/internal/ast"
	"mview/internal/diag"
	"mview/internal/lexer"
	"mview/internal/parser"
	"mview/internal/source"
	"mview/internal/structure"
	"mview/internal/token"
)

func parse(t *testing.T, src string) *ast.Document {
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
	return doc
}

func TestPrintCanonicalForms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"br;", "br;\n"},
		{`div{"hi"}`, "div {\n    \"hi\"\n}\n"},
		{`h1 . title # top { "x" }`, "h1.title#top {\n    \"x\"\n}\n"},
		{`input   type="text"   disabled;`, "input type=\"text\" disabled;\n"},
		{"div {class} {..extra};", "div {class} {..extra};\n"},
		{"div data-n=[count()];", "div data-n=[count()];\n"},
		{`MyComp(x=1) { span { "y" } }`, "MyComp x=1 {\n    span {\n        \"y\"\n    }\n}\n"},
	}
	for _, c := range cases {
		got := ast.Print(parse(t, c.src))
		if got != c.want {
			t.Errorf("Print(%q):\n got %q\nwant %q", c.src, got, c.want)
		}
	}
}

func TestPrintIdempotent(t *testing.T) {
	srcs := []string{
		"br;",
		`div.card#main { h1 { "title" } p { {body} } }`,
		`input type="text" bind:value={v} on:change={handler};`,
		`@if {ok} { "yes" } @else { "no" }`,
		`@for i, x in {items} { li { [x] } }`,
		`@match {s} { @case {"a"} { "A" } @default { "?" } }`,
		`Tabs { slot:Side label="l" { "content" } }`,
		`List |item: string| { li { [item] } }`,
		"//mv:package views\ndiv;",
	}
	for _, src := range srcs {
		once := ast.Print(parse(t, src))
		twice := ast.Print(parse(t, once))
		if once != twice {
			t.Errorf("not idempotent for %q:\n once %q\ntwice %q", src, once, twice)
		}
	}
}

func TestPrintDirectivesFirst(t *testing.T) {
	out := ast.Print(parse(t, "//mv:package views\ndiv;"))
	if !strings.HasPrefix(out, "//mv:package views\n\n") {
		t.Fatalf("got %q", out)
	}
}
