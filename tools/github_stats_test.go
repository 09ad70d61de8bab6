package tools_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/repostats-agent/internal/provider"
	"github.com/petasbytes/repostats-agent/tools"
)

const repoURL = "https://github.com/camel-ai/camel"

func fetchStats(t *testing.T, chat provider.Provider) tools.Stats {
	t.Helper()
	def := tools.GitHubStatsDefinition(chat, quietLogger())
	res, err := def.Function(context.Background(), []byte(fmt.Sprintf(`{"repo_url":%q}`, repoURL)))
	require.NoError(t, err, "stats stub fails only on cancellation")
	require.Equal(t, tools.NameGitHubStats, res.Tool)
	require.NotNil(t, res.Stats)
	return *res.Stats
}

func TestGitHubStats_ParsesFencedReply(t *testing.T) {
	chat := &stubProvider{reply: provider.NewReply("```json\n{\"stars\": 3900, \"forks\": 452}\n```", nil)}

	s := fetchStats(t, chat)
	assert.True(t, s.Known)
	assert.Equal(t, int64(3900), s.Stars)
	assert.Equal(t, int64(452), s.Forks)
	assert.Equal(t, repoURL, s.Repo)

	require.Len(t, chat.got, 1)
	assert.Contains(t, chat.got[0].User, repoURL)
	assert.NotEmpty(t, chat.got[0].System)
	assert.Empty(t, chat.got[0].Tools, "stats lookup sends no tool declarations")
}

func TestGitHubStats_FallsBackToZero(t *testing.T) {
	cases := []struct {
		name string
		chat *stubProvider
	}{
		{"status error", &stubProvider{err: fmt.Errorf("%w: status 500", provider.ErrStatus)}},
		{"transport error", &stubProvider{err: fmt.Errorf("%w: dial", provider.ErrTransport)}},
		{"malformed body", &stubProvider{err: fmt.Errorf("%w: no choices", provider.ErrMalformedResponse)}},
		{"non json text", &stubProvider{reply: provider.NewReply("about four thousand", nil)}},
		{"empty text", &stubProvider{reply: provider.NewReply("  ", nil)}},
		{"tool call instead of text", &stubProvider{reply: provider.NewReply("", []provider.ToolCall{{Name: "search_baidu"}})}},
		{"other error", &stubProvider{err: errors.New("boom")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := fetchStats(t, tc.chat)
			assert.False(t, s.Known)
			assert.Equal(t, map[string]any{"stars": int64(0), "forks": int64(0)}, s.Map())
		})
	}
}

func TestGitHubStats_Non2xxFromEndpoint(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"error":{"message":"nope"}}`)
			}))
			defer srv.Close()

			hc := provider.NewHTTPClient(srv.Client().Transport, 0, quietLogger())
			s := fetchStats(t, provider.NewOpenAI("sk-test", srv.URL, "deepseek-chat", hc))
			assert.False(t, s.Known)
			assert.Zero(t, s.Stars)
			assert.Zero(t, s.Forks)
		})
	}
}

func TestGitHubStats_CancellationIsNotDegraded(t *testing.T) {
	chat := &stubProvider{err: fmt.Errorf("%w: %w", provider.ErrCanceled, context.Canceled)}
	def := tools.GitHubStatsDefinition(chat, quietLogger())

	res, err := def.Function(context.Background(), []byte(fmt.Sprintf(`{"repo_url":%q}`, repoURL)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res.Stats, "no zero default after the user aborted")
}
