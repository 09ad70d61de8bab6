package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/petasbytes/repostats-agent/internal/provider"
)

type entry struct {
	def       Definition
	validator *sjs.Schema
}

// Registry is the static table of callable tools.
type Registry struct {
	byName map[Name]*entry
	order  []Name
}

// NewRegistry compiles each definition's schema. Names must be Known and unique.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{byName: make(map[Name]*entry, len(defs))}
	for _, d := range defs {
		if !d.Name.Known() {
			return nil, fmt.Errorf("register %q: %w", d.Name, ErrUnsupportedTool)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("register %q: duplicate tool", d.Name)
		}
		if d.Function == nil || d.InputSchema == nil {
			return nil, fmt.Errorf("register %q: missing handler or schema", d.Name)
		}
		v, err := compileSchema(d.Name, d.InputSchema)
		if err != nil {
			return nil, err
		}
		r.byName[d.Name] = &entry{def: d, validator: v}
		r.order = append(r.order, d.Name)
	}
	return r, nil
}

// Default returns the search and GitHub stats tools wired to chat.
func Default(chat provider.Provider, log *slog.Logger) (*Registry, error) {
	return NewRegistry(SearchDefinition(log), GitHubStatsDefinition(chat, log))
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []Name {
	return append([]Name(nil), r.order...)
}

// Specs returns the tool declarations sent to the chat endpoint.
func (r *Registry) Specs() []provider.ToolSpec {
	out := make([]provider.ToolSpec, 0, len(r.order))
	for _, n := range r.order {
		d := r.byName[n].def
		out = append(out, provider.ToolSpec{Name: string(d.Name), Description: d.Description, Parameters: d.InputSchema})
	}
	return out
}

// Lookup returns the definition for name or an *UnsupportedError.
func (r *Registry) Lookup(name string) (Definition, error) {
	e, ok := r.byName[Name(name)]
	if !ok {
		return Definition{}, &UnsupportedError{Name: name}
	}
	return e.def, nil
}

// Call validates args against the tool's schema and runs its handler.
// Empty args are treated as an empty object.
func (r *Registry) Call(ctx context.Context, name, args string) (Result, error) {
	e, ok := r.byName[Name(name)]
	if !ok {
		return Result{}, &UnsupportedError{Name: name}
	}
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	inst, err := sjs.UnmarshalJSON(strings.NewReader(args))
	if err != nil {
		return Result{}, &ArgumentError{Tool: e.def.Name, Reason: "arguments are not valid JSON", Err: err}
	}
	if err := e.validator.Validate(inst); err != nil {
		return Result{}, &ArgumentError{Tool: e.def.Name, Reason: "arguments violate schema", Err: err}
	}
	return e.def.Function(ctx, json.RawMessage(args))
}
