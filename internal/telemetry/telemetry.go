// Package telemetry writes run events as JSON lines.
//
// Emission is off until Configure enables it. Each event is one object with
// "event" and "time" keys plus the caller's fields.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultDir is where events.jsonl lands when no directory is configured.
const DefaultDir = ".agent"

var (
	mu      sync.Mutex
	enabled bool
	dir     = DefaultDir
)

// Configure enables or disables emission and sets the output directory.
// An empty eventsDir keeps DefaultDir.
func Configure(on bool, eventsDir string) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
	if eventsDir == "" {
		eventsDir = DefaultDir
	}
	dir = eventsDir
}

// Enabled reports whether events are currently written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Path returns the events file location.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return filepath.Join(dir, "events.jsonl")
}

// Emit appends a single JSON line to events.jsonl when emission is enabled.
// It augments fields with RFC3339Nano time and the event name.
func Emit(name string, fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
