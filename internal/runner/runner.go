package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/petasbytes/repostats-agent/internal/plot"
	"github.com/petasbytes/repostats-agent/internal/provider"
	"github.com/petasbytes/repostats-agent/internal/telemetry"
	"github.com/petasbytes/repostats-agent/memory"
	"github.com/petasbytes/repostats-agent/tools"
)

const systemPrompt = "You are a helpful assistant."

// Apology texts substituted when the chat request fails.
const (
	ApologyRequestFailed = "Sorry, the API request failed, please try again later."
	ApologyMalformed     = "Sorry, the API response was malformed, please try again later."
)

// NoReply is printed when the model answered with empty text.
const NoReply = "no valid reply."

// FollowUpQuery asks for the statistics of one repository.
func FollowUpQuery(repoURL string) string {
	return "Get the star and fork data of " + repoURL
}

type Runner struct {
	Provider   provider.Provider
	Tools      *tools.Registry
	Plotter    plot.Plotter
	Log        *slog.Logger
	Out        io.Writer
	Transcript *memory.Transcript
}

func New(p provider.Provider, reg *tools.Registry, plotter plot.Plotter, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{Provider: p, Tools: reg, Plotter: plotter, Log: log, Out: os.Stdout}
}

// Outcome summarises a run.
type Outcome struct {
	// Reply is the last text the model answered with, if any.
	Reply string
	// Stats is the record that was plotted, nil when none was obtained.
	Stats      *tools.Stats
	ScriptPath string
	ImagePath  string
	// Degraded is set when any chat reply was a substituted apology.
	Degraded bool
}

// Ask sends query with every registered tool and returns the classified reply.
// Provider failures come back as a degraded text reply. The only error is a
// canceled ctx.
func (r *Runner) Ask(ctx context.Context, query string) (provider.Reply, error) {
	r.Transcript.Append(memory.Entry{Role: memory.RoleUser, Text: query})
	specs := r.Tools.Specs()

	runID, _ := telemetry.RunIDFromContext(ctx)
	telemetry.Emit("chat_request", map[string]any{
		"run_id":   runID,
		"provider": r.Provider.Name(),
		"tools":    r.Tools.Names(),
	})
	telemetry.EmitText(ctx, "prompt", "runner", query)

	start := time.Now()
	reply, err := r.Provider.Complete(ctx, provider.Request{System: systemPrompt, User: query, Tools: specs})
	fields := map[string]any{
		"run_id":      runID,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if errors.Is(err, provider.ErrCanceled) {
		fields["error"] = "canceled"
		telemetry.Emit("chat_response", fields)
		return provider.Reply{}, err
	}
	if err != nil {
		r.Log.Error("chat request failed", "err", err)
		reply = provider.Reply{Kind: provider.KindText, Text: apology(err), Degraded: true}
		fields["error"] = classOf(err)
	} else {
		fields["error"] = nil
	}
	fields["kind"] = reply.Kind.String()
	fields["tool_calls"] = len(reply.ToolCalls)
	telemetry.Emit("chat_response", fields)
	telemetry.EmitText(ctx, "reply", "runner", reply.Text)
	return reply, nil
}

func apology(err error) string {
	if errors.Is(err, provider.ErrMalformedResponse) {
		return ApologyMalformed
	}
	return ApologyRequestFailed
}

// classOf names the failure class without leaking the payload into telemetry.
func classOf(err error) string {
	switch {
	case errors.Is(err, provider.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, provider.ErrStatus):
		return "status"
	default:
		return "transport"
	}
}

// Dispatch runs one tool call through the registry. Unknown names and invalid
// arguments are returned as errors.
func (r *Runner) Dispatch(ctx context.Context, call provider.ToolCall) (tools.Result, error) {
	runID, _ := telemetry.RunIDFromContext(ctx)
	r.Log.Info("dispatching tool call", "tool", call.Name, "arguments", call.Arguments)
	r.Transcript.Append(memory.Entry{Role: memory.RoleToolCall, Tool: call.Name, Arguments: call.Arguments})

	start := time.Now()
	fields := map[string]any{
		"run_id":     runID,
		"tool_name":  call.Name,
		"input_size": len(call.Arguments),
	}
	def, err := r.Tools.Lookup(call.Name)
	if err != nil {
		fields["duration_ms"] = time.Since(start).Milliseconds()
		fields["error"] = "tool not found"
		fields["output_size"] = 0
		telemetry.Emit("tool_exec", fields)
		return tools.Result{}, fmt.Errorf("dispatch %s: %w", call.Name, err)
	}

	res, err := r.Tools.Call(ctx, string(def.Name), call.Arguments)
	fields["duration_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		fields["error"] = "tool error"
		fields["output_size"] = 0
		telemetry.Emit("tool_exec", fields)
		return tools.Result{}, fmt.Errorf("dispatch %s: %w", call.Name, err)
	}

	out := res.String()
	fields["error"] = nil
	fields["output_size"] = len(out)
	telemetry.Emit("tool_exec", fields)
	r.Log.Info("tool result", "tool", call.Name, "result", out)
	r.Transcript.Append(memory.Entry{Role: memory.RoleToolResult, Tool: call.Name, Text: out})
	return res, nil
}

// Run executes the whole flow for query. The returned Outcome is filled in as
// far as the run got, even when err is non-nil.
func (r *Runner) Run(ctx context.Context, query string) (Outcome, error) {
	var out Outcome

	reply, err := r.Ask(ctx, query)
	if err != nil {
		return out, err
	}
	out.Degraded = reply.Degraded
	if reply.Kind == provider.KindText {
		r.say(&out, reply.Text)
		return out, nil
	}

	for _, call := range reply.ToolCalls {
		res, err := r.Dispatch(ctx, call)
		if err != nil {
			return out, err
		}

		stats := res.Stats
		if res.Search != nil {
			stats, err = r.followSearch(ctx, &out, *res.Search)
			if err != nil {
				return out, err
			}
		}
		if stats == nil {
			continue
		}
		if err := r.plot(ctx, &out, stats); err != nil {
			return out, err
		}
	}
	return out, nil
}

// followSearch asks about the first GitHub result. It returns nil stats when
// there is nothing to plot.
func (r *Runner) followSearch(ctx context.Context, out *Outcome, res tools.SearchOutput) (*tools.Stats, error) {
	repoURL, ok := res.FirstURLContaining("github.com")
	if !ok {
		r.Log.Info("no GitHub repository in search results")
		return nil, nil
	}
	r.Log.Info("found GitHub repository", "url", repoURL)

	reply, err := r.Ask(ctx, FollowUpQuery(repoURL))
	if err != nil {
		return nil, err
	}
	out.Degraded = out.Degraded || reply.Degraded
	if reply.Kind == provider.KindText {
		r.say(out, reply.Text)
		return nil, nil
	}

	res2, err := r.Dispatch(ctx, reply.ToolCalls[0])
	if err != nil {
		return nil, err
	}
	if res2.Stats == nil {
		r.Log.Warn("follow-up tool returned no statistics", "tool", string(res2.Tool))
		return nil, nil
	}
	return res2.Stats, nil
}

func (r *Runner) plot(ctx context.Context, out *Outcome, s *tools.Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.Known {
		r.Log.Warn("plotting default statistics", "repo", s.Repo)
	}
	out.Stats = s
	art, err := r.Plotter.Plot(ctx, *s)
	out.ScriptPath = art.Script
	out.ImagePath = art.Image
	if err != nil {
		return fmt.Errorf("plot stats: %w", err)
	}
	r.Log.Info("chart generated", "stars", s.Stars, "forks", s.Forks, "image", art.Image)
	return nil
}

func (r *Runner) say(out *Outcome, text string) {
	out.Reply = text
	r.Transcript.Append(memory.Entry{Role: memory.RoleAssistant, Text: text})
	w := r.Out
	if w == nil {
		w = os.Stdout
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(w, NoReply)
		return
	}
	fmt.Fprintf(w, "assistant: %s\n", text)
}
