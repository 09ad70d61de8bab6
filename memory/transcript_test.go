package memory_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/repostats-agent/memory"
)

func TestTranscript_SaveAndLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "transcript.json")

	var tr memory.Transcript
	tr.Append(memory.Entry{Role: memory.RoleUser, Text: "hi"})
	tr.Append(memory.Entry{Role: memory.RoleToolCall, Tool: "search_baidu", Arguments: `{"query":"camel"}`})
	tr.Append(memory.Entry{Role: memory.RoleAssistant, Text: "hello"})
	if err := tr.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out []memory.Entry
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	in := tr.Entries()
	if len(out) != len(in) {
		t.Fatalf("length mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("mismatch at %d: got %+v want %+v", i, out[i], in[i])
		}
	}
}

func TestTranscript_EntriesIsACopy(t *testing.T) {
	var tr memory.Transcript
	tr.Append(memory.Entry{Role: memory.RoleUser, Text: "a"})
	got := tr.Entries()
	got[0].Text = "mutated"
	if tr.Entries()[0].Text != "a" {
		t.Fatal("Entries exposed internal storage")
	}
}

func TestTranscript_NilIsNoop(t *testing.T) {
	var tr *memory.Transcript
	tr.Append(memory.Entry{Role: memory.RoleUser})
	if tr.Entries() != nil {
		t.Fatal("expected nil entries from nil transcript")
	}
}

func TestTranscript_SaveEmptyWritesJSONArray(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.json")
	var tr memory.Transcript
	if err := tr.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("unexpected content %q", b)
	}
}
