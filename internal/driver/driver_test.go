package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mview/internal/codegen"
	"mview/internal/source"
)

func expandVirtual(t *testing.T, src string, opts ExpandOptions) *ExpandResult {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("views/home.mv", []byte(src)))
	res, err := ExpandFile(fs, file, opts)
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	return res
}

func TestExpandGeneratesFile(t *testing.T) {
	res := expandVirtual(t, `div { "hi" }`, ExpandOptions{})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	code := string(res.Code)
	for _, want := range []string{
		"// Code generated by mview; DO NOT EDIT.",
		"package views",
		`g "maragu.dev/gomponents"`,
		"func Home() g.Node {",
		`html.Div(g.Text("hi"))`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
	if res.OutPath != "views/home.mv.go" {
		t.Errorf("got out path %q", res.OutPath)
	}
}

func TestExpandHonorsDirectives(t *testing.T) {
	src := "//mv:package pages\n//mv:import strconv\n//mv:func Profile(name string)\n" +
		`p { {name} }`
	res := expandVirtual(t, src, ExpandOptions{})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	code := string(res.Code)
	for _, want := range []string{
		"package pages",
		`"strconv"`,
		"func Profile(name string) g.Node {",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
}

func TestExpandErrorSuppressesOutput(t *testing.T) {
	res := expandVirtual(t, "div {\n  span {\n", ExpandOptions{})
	if !res.Bag.HasErrors() {
		t.Fatal("want errors for unbalanced input")
	}
	if res.Code != nil {
		t.Fatalf("errors must suppress output, got:\n%s", res.Code)
	}
}

func TestExpandGenericTarget(t *testing.T) {
	res := expandVirtual(t, `div { "x" }`, ExpandOptions{Target: codegen.TargetGeneric})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Bag.Items())
	}
	if !strings.Contains(string(res.Code), `g.El("div"`) {
		t.Fatalf("got:\n%s", res.Code)
	}
}

func TestFuncNameFor(t *testing.T) {
	cases := map[string]string{
		"views/home.mv":      "Home",
		"views/user-card.mv": "UserCard",
		"nav_bar.mv":         "NavBar",
		"a/b/index.mv":       "Index",
	}
	for path, want := range cases {
		if got := FuncNameFor(path); got != want {
			t.Errorf("FuncNameFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestExpandDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.mv", `div { "a" }`)
	write("b.mv", `span { "b" }`)
	write("bad.mv", "div {")

	_, results, err := ExpandDir(context.Background(), dir, ExpandOptions{}, 2)
	if err != nil {
		t.Fatalf("ExpandDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}

	byName := map[string]ExpandDirResult{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}
	if byName["a.mv"].Result == nil || byName["a.mv"].Result.Code == nil {
		t.Fatal("a.mv did not expand")
	}
	if byName["b.mv"].Result == nil || byName["b.mv"].Result.Code == nil {
		t.Fatal("b.mv did not expand")
	}
	bad := byName["bad.mv"].Result
	if bad == nil || !bad.Bag.HasErrors() || bad.Code != nil {
		t.Fatal("bad.mv should fail without output")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	m, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Views != "views" || m.Project.Target != "named" {
		t.Fatalf("got %+v", m.Project)
	}
	if target, err := m.TargetFor(); err != nil || target != codegen.TargetNamed {
		t.Fatalf("got target %v, err %v", target, err)
	}
}

func TestLoadManifestFile(t *testing.T) {
	dir := t.TempDir()
	manifest := "[project]\nname = \"site\"\nviews = \"ui\"\npackage = \"ui\"\ntarget = \"generic\"\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != "site" || m.Project.Views != "ui" || m.Project.Package != "ui" {
		t.Fatalf("got %+v", m.Project)
	}
	if target, err := m.TargetFor(); err != nil || target != codegen.TargetGeneric {
		t.Fatalf("got target %v, err %v", target, err)
	}
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messy.mv")
	if err := os.WriteFile(path, []byte(`div{"hi"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := Format(path, 100)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !res.Changed {
		t.Fatal("want change for messy input")
	}
	want := "div {\n    \"hi\"\n}\n"
	if string(res.Formatted) != want {
		t.Fatalf("got %q", res.Formatted)
	}
}
