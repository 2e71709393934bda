package watch

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected last callback to win, got %d", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no calls after Stop, got %d", got)
	}
}

func TestDebouncerSerializesCallbacks(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var active, overlaps, calls atomic.Int32
	slow := func() {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(60 * time.Millisecond)
		active.Add(-1)
		calls.Add(1)
	}

	// The second trigger fires while the first callback is still sleeping.
	d.Trigger(slow)
	time.Sleep(30 * time.Millisecond)
	d.Trigger(slow)

	time.Sleep(250 * time.Millisecond)
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := overlaps.Load(); got != 0 {
		t.Errorf("expected callbacks to run one at a time, saw %d overlaps", got)
	}
}

func TestDebouncerStopWaitsForRunningCallback(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)

	var finished atomic.Bool
	d.Trigger(func() {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	time.Sleep(20 * time.Millisecond)
	d.Stop()
	if !finished.Load() {
		t.Fatal("expected Stop to wait for the running callback")
	}
}

func TestFileWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	other := filepath.Join(dir, "other.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := New(path, 20*time.Millisecond, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func() error {
			reloaded <- struct{}{}
			return nil
		})
	}()

	// Give the watch loop a moment to start.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"tasks": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload after writing the report")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
