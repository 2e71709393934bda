package cli

import (
	"bytes"
	"strings"
	"testing"
)

func runCheckCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newCheckCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckCommandDefaults(t *testing.T) {
	dir := withCLIState(t, false)

	got, _, err := runCheckCmd(t)
	if err != nil {
		t.Fatalf("check command returned error: %v", err)
	}
	if !strings.Contains(got, "Project: "+dir) {
		t.Errorf("expected project path in output, got %q", got)
	}
	if !strings.Contains(got, "using defaults") {
		t.Errorf("expected defaults note, got %q", got)
	}
}

func TestCheckCommandMissingSuggestionFile(t *testing.T) {
	dir := withCLIState(t, false)
	writeProjectFile(t, dir, "tablereport.yaml", `suggestions:
  files:
    - missing.yaml
`)

	_, _, err := runCheckCmd(t)
	if err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCheckCommandStrictWarnings(t *testing.T) {
	dir := withCLIState(t, false)
	writeProjectFile(t, dir, "tablereport.yaml", `suggestions:
  errors:
    not-a-known-code: "Custom text."
`)

	if _, _, err := runCheckCmd(t); err != nil {
		t.Fatalf("warnings should not fail without --strict: %v", err)
	}
	_, _, err := runCheckCmd(t, "--strict")
	if err == nil || !strings.Contains(err.Error(), "not-a-known-code") {
		t.Fatalf("expected strict failure naming the code, got %v", err)
	}
}

func TestCheckCommandJSONOutput(t *testing.T) {
	withCLIState(t, true)

	got, _, err := runCheckCmd(t)
	if err != nil {
		t.Fatalf("check command returned error: %v", err)
	}
	if !strings.Contains(got, `"suggestions":`) || !strings.Contains(got, `"project":`) {
		t.Errorf("unexpected json output: %s", got)
	}
}
