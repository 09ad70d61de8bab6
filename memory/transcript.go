package memory

import (
	"encoding/json"
	"os"
	"sync"
)

// Roles used in a Transcript.
const (
	RoleUser       = "user"
	RoleAssistant  = "assistant"
	RoleToolCall   = "tool_call"
	RoleToolResult = "tool_result"
)

// Entry is one exchange in a run.
type Entry struct {
	Role      string `json:"role"`
	Text      string `json:"text,omitempty"`
	Tool      string `json:"tool,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// Transcript is an append-only log of entries. The zero value is ready to use,
// and a nil *Transcript silently drops appends.
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
}

func (t *Transcript) Append(e Entry) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Entries returns a copy of the recorded entries.
func (t *Transcript) Entries() []Entry {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

// Save writes the entries to path, replacing any previous file. An empty
// transcript is written as [].
func (t *Transcript) Save(path string) error {
	entries := t.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.MarshalIndent(entries, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
