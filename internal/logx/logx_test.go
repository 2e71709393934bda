package logx

import (
	"os"
	"strings"
	"testing"

	"tablereport/internal/paths"
)

func TestNewWritesIntoLogsDir(t *testing.T) {
	pp, err := paths.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	logger, closer, err := New(pp)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Printf("skipped error %d", 3)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(pp.LogsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".log") {
		t.Fatalf("expected one log file, got %v", entries)
	}
	data, err := os.ReadFile(pp.LogsDir + string(os.PathSeparator) + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "skipped error 3") {
		t.Errorf("unexpected log content %q", data)
	}
}
