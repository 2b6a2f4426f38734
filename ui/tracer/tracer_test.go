package tracer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/clchiou/interrogator/ui/logger"
)

func readTrace(t *testing.T, path string) []viewerEvent {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var events []viewerEvent
	if err := json.Unmarshal(data, &events); err != nil {
		t.Fatalf("trace is not a JSON array: %v\n%s", err, data)
	}
	return events
}

func TestTracerBuffersUntilSetOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interrogate.trace")
	trace := New(logger.New(&bytes.Buffer{}))

	thread := trace.NewThread("main")
	trace.Begin("interrogate", thread)
	trace.End(thread)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected no trace file before SetOutput")
	}

	trace.SetOutput(path)
	trace.Complete("make", thread, 1000000, 3000000)
	trace.Close()

	events := readTrace(t, path)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %v", len(events), events)
	}

	if events[0].Phase != "M" || events[0].Name != "thread_name" {
		t.Errorf("expected thread metadata first, got %+v", events[0])
	}
	if events[1].Phase != "B" || events[1].Name != "interrogate" {
		t.Errorf("expected begin event, got %+v", events[1])
	}
	if events[2].Phase != "E" {
		t.Errorf("expected end event, got %+v", events[2])
	}
	if events[3].Phase != "X" || events[3].Time != 1000 || events[3].Dur != 2000 {
		t.Errorf("expected complete event with microsecond times, got %+v", events[3])
	}
}

func TestTracerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interrogate.trace")
	trace := New(logger.New(&bytes.Buffer{}))

	trace.SetOutput(path)
	trace.Begin("interrogate", MainThread)
	trace.End(MainThread)
	trace.Close()
	trace.Close()

	events := readTrace(t, path)
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestTracerWithoutOutput(t *testing.T) {
	trace := New(logger.New(&bytes.Buffer{}))
	trace.Begin("interrogate", MainThread)
	trace.End(MainThread)
	// No SetOutput; Close must not write anywhere or crash.
	trace.Close()
}
