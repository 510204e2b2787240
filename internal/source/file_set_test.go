package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.mv", []byte("div {\n  fooBar;\n}\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{5, LineCol{Line: 1, Col: 6}},  // the newline ends line 1
		{6, LineCol{Line: 2, Col: 1}},
		{8, LineCol{Line: 2, Col: 3}},
		{16, LineCol{Line: 3, Col: 1}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestResolveSingleLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.mv", []byte("span;"))
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 4})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 5}) {
		t.Errorf("got %+v, %+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("test.mv", []byte("one\ntwo\nthree")))

	cases := map[uint32]string{
		0: "",
		1: "one",
		2: "two",
		3: "three",
		4: "",
	}
	for num, want := range cases {
		if got := file.GetLine(num); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", num, got, want)
		}
	}
}

func TestAddVirtualSetsFlag(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("test.mv", []byte("div;")))
	if file.Flags&FileVirtual == 0 {
		t.Error("virtual flag not set")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.mv")
	content := []byte{0xEF, 0xBB, 0xBF}
	content = append(content, []byte("div;\r\nspan;\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "div;\nspan;\n" {
		t.Errorf("got %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 4, End: 8}
	b := Span{File: 0, Start: 6, End: 12}
	if got := a.Cover(b); got != (Span{File: 0, Start: 4, End: 12}) {
		t.Errorf("got %+v", got)
	}
	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file cover must keep the receiver, got %+v", got)
	}
}

func TestDisplayPath(t *testing.T) {
	short := &File{Path: "views/home.mv"}
	if short.DisplayPath() != "views/home.mv" {
		t.Errorf("got %q", short.DisplayPath())
	}
	long := &File{Path: "/very/long/absolute/path/that/keeps/going/on/views/home.mv"}
	if long.DisplayPath() != "home.mv" {
		t.Errorf("got %q", long.DisplayPath())
	}
}
