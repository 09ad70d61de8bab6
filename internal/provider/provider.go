// Package provider talks to chat-completion endpoints and turns each response
// into a Reply: either plain text or a list of tool calls.
//
// Classification happens once, here. Callers branch on Reply.Kind and never
// probe the wire format.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Failure classes reported by Complete. Use errors.Is.
var (
	// ErrTransport covers network failures and cancelled requests.
	ErrTransport = errors.New("chat transport failure")
	// ErrStatus covers non-2xx responses.
	ErrStatus = errors.New("chat endpoint returned an error status")
	// ErrMalformedResponse covers undecodable bodies and bodies without a reply.
	ErrMalformedResponse = errors.New("malformed chat response")
	// ErrCanceled means the caller's context ended. It also matches ctx.Err().
	ErrCanceled = errors.New("chat request canceled")
)

// canceled reports a request cut short by ctx, or nil when ctx is still live.
// Client timeouts leave ctx live and stay transport failures.
func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return nil
}

// Kind tags the shape of a Reply.
type Kind int

const (
	KindText Kind = iota
	KindToolCalls
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindToolCalls:
		return "tool_calls"
	default:
		return "unknown"
	}
}

// ToolCall is the model asking for a named function with JSON-encoded arguments.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Reply is a classified model answer.
type Reply struct {
	Kind      Kind
	Text      string
	ToolCalls []ToolCall
	// Degraded marks a substituted reply standing in for a failed request.
	Degraded bool
}

// NewReply classifies content and calls: any call makes it a tool-call reply.
func NewReply(text string, calls []ToolCall) Reply {
	if len(calls) > 0 {
		return Reply{Kind: KindToolCalls, Text: text, ToolCalls: calls}
	}
	return Reply{Kind: KindText, Text: text}
}

// ToolSpec declares a callable tool to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// Request is one single-turn chat request.
type Request struct {
	System string
	User   string
	Tools  []ToolSpec
}

// Provider sends a Request and returns the classified Reply.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (Reply, error)
}
