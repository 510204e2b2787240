package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc123"}
	var buf bytes.Buffer
	renderVersionPretty(&buf, info, versionOptions{showHash: true})
	out := buf.String()
	if !strings.Contains(out, "mview 1.2.3") {
		t.Errorf("missing version line: %q", out)
	}
	if !strings.Contains(out, "commit: abc123") {
		t.Errorf("missing commit line: %q", out)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := versionInfo{Version: "1.2.3"}
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, info, versionOptions{showDate: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "mview" || payload.Version != "1.2.3" {
		t.Errorf("got %+v", payload)
	}
	if payload.BuildDate != "unknown" {
		t.Errorf("want unknown build date, got %q", payload.BuildDate)
	}
	if payload.GitCommit != "" {
		t.Errorf("hash not requested, got %q", payload.GitCommit)
	}
}
