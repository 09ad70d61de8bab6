package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/petasbytes/repostats-agent/internal/provider"
	"github.com/petasbytes/repostats-agent/internal/telemetry"
)

type GitHubStatsInput struct {
	RepoURL string `json:"repo_url" jsonschema_description:"GitHub repository URL."`
}

var GitHubStatsInputSchema = GenerateSchema[GitHubStatsInput]()

const statsSystemPrompt = "You are a helpful assistant. Please help me get the statistics of a GitHub repository."

func statsUserPrompt(repoURL string) string {
	return fmt.Sprintf(`Please visit %s and return the star and fork counts of the repository as JSON in the format: {"stars": number, "forks": number}`, repoURL)
}

// GitHubStatsDefinition declares get_github_stats, answered by asking chat.
func GitHubStatsDefinition(chat provider.Provider, log *slog.Logger) Definition {
	if log == nil {
		log = slog.Default()
	}
	g := &githubStats{chat: chat, log: log}
	return Definition{
		Name:        NameGitHubStats,
		Description: "Get the star and fork counts of a GitHub repository.",
		InputSchema: GitHubStatsInputSchema,
		Function: func(ctx context.Context, args json.RawMessage) (Result, error) {
			var in GitHubStatsInput
			if err := json.Unmarshal(args, &in); err != nil {
				return Result{}, err
			}
			s, err := g.Fetch(ctx, in.RepoURL)
			if err != nil {
				return Result{}, err
			}
			return Result{Tool: NameGitHubStats, Stats: &s}, nil
		},
	}
}

type githubStats struct {
	chat provider.Provider
	log  *slog.Logger
}

// Fetch fails only when ctx is canceled. Any other request or parse problem
// yields the zero default with Known=false.
func (g *githubStats) Fetch(ctx context.Context, repoURL string) (Stats, error) {
	g.log.Info("fetching GitHub stats", "repo_url", repoURL)

	reply, err := g.chat.Complete(ctx, provider.Request{
		System: statsSystemPrompt,
		User:   statsUserPrompt(repoURL),
	})
	if errors.Is(err, provider.ErrCanceled) {
		return Stats{}, err
	}
	if err != nil {
		return g.fallback(ctx, repoURL, "request", err), nil
	}
	if reply.Kind != provider.KindText || strings.TrimSpace(reply.Text) == "" {
		return g.fallback(ctx, repoURL, "no_text_reply", fmt.Errorf("reply kind %s has no text", reply.Kind)), nil
	}
	g.log.Debug("stats reply", "content", reply.Text)

	s, err := ParseStats(reply.Text)
	if err != nil {
		return g.fallback(ctx, repoURL, "parse", err), nil
	}
	s.Repo = repoURL
	g.log.Info("parsed GitHub stats", "stars", s.Stars, "forks", s.Forks)
	return s, nil
}

func (g *githubStats) fallback(ctx context.Context, repoURL, reason string, err error) Stats {
	g.log.Warn("could not obtain GitHub stats, using zero default", "repo_url", repoURL, "reason", reason, "err", err)
	runID, _ := telemetry.RunIDFromContext(ctx)
	telemetry.Emit("stats_fallback", map[string]any{
		"run_id": runID,
		"reason": reason,
	})
	return Stats{Repo: repoURL}
}
