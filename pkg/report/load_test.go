package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestLoadJSONReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	writeFile(t, path, `{
  "valid": false,
  "stats": {"errors": 2},
  "tasks": [{
    "valid": false,
    "stats": {"errors": 2},
    "resource": {"path": "data/invalid.csv", "schema": {"fields": [{"name": "id", "type": "integer"}, {"name": "name"}]}},
    "errors": [
      {"code": "blank-label", "name": "Blank Label", "tags": ["#table", "#header"], "message": "label 2 is blank", "fieldPosition": 2, "labels": ["id", ""]},
      {"code": "type-error", "name": "Type Error", "message": "cell 1 is not an integer", "rowPosition": 3, "fieldPosition": 1, "cells": ["x", 42, null, true]}
    ]
  }]
}`)

	rep, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if rep.Valid {
		t.Error("expected invalid report")
	}
	if rep.Stats.Tasks != 1 {
		t.Errorf("expected stats.tasks defaulted to 1, got %d", rep.Stats.Tasks)
	}

	task := rep.Tasks[0]
	if diff := cmp.Diff([]string{"id", "name"}, task.Header()); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if task.Label() != "data/invalid.csv" {
		t.Errorf("unexpected label %q", task.Label())
	}
	if diff := cmp.Diff([]string{"x", "42", "", "true"}, task.Errors[1].Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if task.Errors[0].Labels[1] != "" || task.Errors[0].Cells != nil {
		t.Errorf("unexpected labels/cells: %+v", task.Errors[0])
	}
}

func TestDecodeNewerDialect(t *testing.T) {
	doc := `{"valid": false, "stats": {"errors": 1}, "tasks": [{"valid": false, "stats": {"errors": 1},
  "resource": {"name": "people", "schema": {"fields": [{"name": "a"}]}},
  "errors": [{"type": "missing-cell", "title": "Missing Cell", "message": "m", "rowPosition": 2, "fieldPosition": 1, "cells": ["1"]}]}]}`

	rep, err := Decode(strings.NewReader(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	raw := rep.Tasks[0].Errors[0]
	if raw.Code != "missing-cell" || raw.Name != "Missing Cell" {
		t.Errorf("expected type/title mapped to code/name, got %+v", raw)
	}
	if rep.Tasks[0].Label() != "people" {
		t.Errorf("unexpected label %q", rep.Tasks[0].Label())
	}
}

func TestDecodeBareTask(t *testing.T) {
	doc := `{"valid": true, "stats": {"errors": 0}, "resource": {"schema": {"fields": []}}, "errors": []}`

	rep, err := Decode(strings.NewReader(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(rep.Tasks) != 1 || !rep.Valid {
		t.Fatalf("expected a single valid task, got %+v", rep)
	}
}

func TestLoadYAMLReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yml")
	writeFile(t, path, `
valid: false
stats:
  errors: 1
tasks:
  - valid: false
    stats:
      errors: 1
    resource:
      schema:
        fields:
          - name: a
          - name: b
    errors:
      - code: extra-cell
        message: extra
        rowPosition: 4
        fieldPosition: 3
        cells: [1, two, 3.5]
`)

	rep, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	raw := rep.Tasks[0].Errors[0]
	if diff := cmp.Diff([]string{"1", "two", "3.5"}, raw.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if raw.RowPosition != 4 || raw.FieldPosition != 3 {
		t.Errorf("unexpected positions: %+v", raw)
	}
}

func TestDecodeRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "   ", "report is empty"},
		{"not json", "{", "parse report"},
		{"no tasks", `{"valid": true}`, "report has no tasks"},
		{"object cell", `{"tasks": [{"errors": [{"code": "x", "cells": [{"a": 1}]}]}]}`, "unsupported value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc), FormatJSON)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	if FormatForPath("a/report.YAML") != FormatYAML {
		t.Error("expected yaml for .YAML")
	}
	if FormatForPath("report.json") != FormatJSON {
		t.Error("expected json for .json")
	}
	if FormatForPath("-") != FormatJSON {
		t.Error("expected json for stdin")
	}
}
