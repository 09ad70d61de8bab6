package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
)

const anthropicMaxTokens = 1024

// Anthropic speaks the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic builds a provider; an empty baseURL keeps the SDK default.
func NewAnthropic(apiKey, baseURL, model string, hc *http.Client) *Anthropic {
	// Requests are never retried.
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if hc != nil {
		opts = append(opts, option.WithHTTPClient(hc))
	}
	return &Anthropic{client: anthropic.NewClient(opts...), model: model}
}

func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) Complete(ctx context.Context, req Request) (Reply, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(anthropicMaxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.User))},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	for _, t := range req.Tools {
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: inputSchema(t.Parameters),
		}})
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		if cerr := canceled(ctx); cerr != nil {
			return Reply{}, cerr
		}
		return Reply{}, classifyAnthropicError(err)
	}

	var (
		texts []string
		calls []ToolCall
	)
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			texts = append(texts, v.Text)
		case anthropic.ToolUseBlock:
			// Raw JSON input is already the argument object.
			calls = append(calls, ToolCall{ID: v.ID, Name: v.Name, Arguments: v.JSON.Input.Raw()})
		}
	}
	if len(texts) == 0 && len(calls) == 0 {
		return Reply{}, fmt.Errorf("%w: response has no content blocks", ErrMalformedResponse)
	}
	return NewReply(strings.Join(texts, "\n"), calls), nil
}

func inputSchema(s *jsonschema.Schema) anthropic.ToolInputSchemaParam {
	if s == nil {
		return anthropic.ToolInputSchemaParam{}
	}
	in := anthropic.ToolInputSchemaParam{Properties: s.Properties, Required: s.Required}
	if s.AdditionalProperties != nil {
		in.ExtraFields = map[string]any{"additionalProperties": s.AdditionalProperties}
	}
	return in
}

func classifyAnthropicError(err error) error {
	var (
		apiErr    *anthropic.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &apiErr):
		return fmt.Errorf("%w: status %d: %v", ErrStatus, apiErr.StatusCode, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}
