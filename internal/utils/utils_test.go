package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	content := "[match]\nthreshold = 0.8\n[cli]\nprompt = \"> \"\ncandidates = 3\nhighlight = false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	match, ok := ExtractSection(data, "match")
	if !ok {
		t.Fatal("missing match section")
	}
	if v, ok := ExtractFloat(match, "threshold"); !ok || v != 0.8 {
		t.Errorf("threshold: got %v, %v", v, ok)
	}

	cli, ok := ExtractSection(data, "cli")
	if !ok {
		t.Fatal("missing cli section")
	}
	if v, ok := ExtractString(cli, "prompt"); !ok || v != "> " {
		t.Errorf("prompt: got %q, %v", v, ok)
	}
	if v, ok := ExtractInt64(cli, "candidates"); !ok || v != 3 {
		t.Errorf("candidates: got %v, %v", v, ok)
	}
	if v, ok := ExtractBool(cli, "highlight"); !ok || v {
		t.Errorf("highlight: got %v, %v", v, ok)
	}
	if _, ok := ExtractSection(data, "missing"); ok {
		t.Error("unexpected section")
	}
}

func TestExtractFloatAcceptsIntegers(t *testing.T) {
	data := map[string]any{"a": int64(1), "b": "x"}
	if v, ok := ExtractFloat(data, "a"); !ok || v != 1 {
		t.Errorf("expected 1, got %v, %v", v, ok)
	}
	if _, ok := ExtractFloat(data, "b"); ok {
		t.Error("string should not extract as float")
	}
}

func TestSaveAndLoadTOMLFile(t *testing.T) {
	type sample struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}
	path := filepath.Join(t.TempDir(), "s.toml")
	if err := SaveTOMLFile(sample{Name: "nginx", Count: 2}, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !FileExists(path) {
		t.Fatal("file not written")
	}

	var got sample
	if err := LoadTOMLFile(path, &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "nginx" || got.Count != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFindFileInPaths(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(b, "f.toml"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := FindFileInPaths("f.toml", []string{a, b})
	if err != nil || got != filepath.Join(b, "f.toml") {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := FindFileInPaths("nope.toml", []string{a, b}); err == nil {
		t.Error("expected error for missing file")
	}
}
