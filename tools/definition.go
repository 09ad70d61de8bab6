package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	sjs "github.com/santhosh-tekuri/jsonschema/v6"
)

// Name identifies a tool. Only the constants below are valid.
type Name string

const (
	NameSearch      Name = "search_baidu"
	NameGitHubStats Name = "get_github_stats"
)

// knownNames is the closed set of tool identifiers.
var knownNames = map[Name]struct{}{
	NameSearch:      {},
	NameGitHubStats: {},
}

// Known reports whether n is one of the declared tool names.
func (n Name) Known() bool {
	_, ok := knownNames[n]
	return ok
}

// Handler executes a tool with already-validated JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (Result, error)

// Definition describes one tool.
type Definition struct {
	Name        Name
	Description string
	InputSchema *jsonschema.Schema
	Function    Handler
}

// Result is the typed output of a tool; exactly one payload is set, matching Tool.
type Result struct {
	Tool   Name
	Search *SearchOutput
	Stats  *Stats
}

// String renders the payload as compact JSON for logs and transcripts.
func (r Result) String() string {
	var v any
	switch {
	case r.Search != nil:
		v = r.Search
	case r.Stats != nil:
		v = r.Stats.Map()
	default:
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// GenerateSchema derives a closed object schema from T's exported fields.
// Fields tagged omitempty are optional; descriptions come from jsonschema_description.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	var v T
	s := reflector.Reflect(v)
	// Chat endpoints expect a bare object schema without $schema or $id markers.
	s.Version = ""
	return s
}

// compileSchema turns a generated schema into a validator.
func compileSchema(name Name, s *jsonschema.Schema) (*sjs.Schema, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", name, err)
	}
	doc, err := sjs.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("reparse %s schema: %w", name, err)
	}
	url := "mem://tools/" + string(name) + ".json"
	c := sjs.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return compiled, nil
}
