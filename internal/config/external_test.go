package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveExternalPath_Relative(t *testing.T) {
	got := resolveExternalPath("/project", "suggestions/extra.yaml")
	want := filepath.Join("/project", "suggestions/extra.yaml")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveExternalPath_Absolute(t *testing.T) {
	got := resolveExternalPath("/project", "/abs/path.yaml")
	if got != "/abs/path.yaml" {
		t.Fatalf("got %q, want /abs/path.yaml", got)
	}
}

func TestSuggestionTable_Defaults(t *testing.T) {
	table, err := Config{}.SuggestionTable(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if table.Suggestion("blank-row") == "" {
		t.Fatal("expected built-in blank-row suggestion")
	}
}

func TestSuggestionTable_FilesAndInline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "suggestions", "a.yaml"), "custom-a: Ask team A.\n")
	writeFile(t, filepath.Join(dir, "suggestions", "b.yaml"), "blank-row: Remove them all.\n")

	cfg := Config{Suggestions: SuggestionsConfig{
		Header: "What to do",
		Files:  []string{"suggestions/a.yaml", "suggestions/b.yaml"},
		Errors: map[string]string{"type-error": "Use numbers.", "extra-cell": ""},
	}}

	table, err := cfg.SuggestionTable(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Suggestion("custom-a"); got != "\nWhat to do\n\nAsk team A." {
		t.Errorf("unexpected custom-a suggestion %q", got)
	}
	if body, _ := table.Body("blank-row"); body != "Remove them all." {
		t.Errorf("expected file override, got %q", body)
	}
	if body, _ := table.Body("type-error"); body != "Use numbers." {
		t.Errorf("expected inline override, got %q", body)
	}
	if table.Suggestion("extra-cell") != "" {
		t.Error("expected empty inline body to remove extra-cell")
	}
}

func TestSuggestionTable_DuplicateAcrossSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "blank-row: one\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "blank-row: two\n")

	cfg := Config{Suggestions: SuggestionsConfig{Files: []string{"a.yaml", "b.yaml"}}}
	_, err := cfg.SuggestionTable(dir)
	if err == nil || !strings.Contains(err.Error(), `defined in both "a.yaml" and "b.yaml"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	cfg = Config{Suggestions: SuggestionsConfig{
		Files:  []string{"a.yaml"},
		Errors: map[string]string{"blank-row": "inline"},
	}}
	_, err = cfg.SuggestionTable(dir)
	if err == nil || !strings.Contains(err.Error(), "inline config") {
		t.Fatalf("expected inline duplicate error, got %v", err)
	}
}

func TestSuggestionTable_MissingFile(t *testing.T) {
	cfg := Config{Suggestions: SuggestionsConfig{Files: []string{"nope.yaml"}}}
	if _, err := cfg.SuggestionTable(t.TempDir()); err == nil {
		t.Fatal("expected error for missing suggestion file")
	}
}
