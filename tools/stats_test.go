package tools_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/repostats-agent/tools"
)

func TestParseStats_WellFormed(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"plain", `{"stars": 3900, "forks": 452}`},
		{"json fence", "```json\n{\"stars\": 3900, \"forks\": 452}\n```"},
		{"bare fence", "```\n{\"stars\": 3900, \"forks\": 452}\n```"},
		{"padded", "  \n{\"stars\": 3900, \"forks\": 452}\n\n"},
		{"numeric strings", `{"stars": "3900", "forks": "452"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := tools.ParseStats(tc.reply)
			require.NoError(t, err)
			assert.True(t, s.Known)
			assert.Equal(t, map[string]any{"stars": int64(3900), "forks": int64(452)}, s.Map())
		})
	}
}

func TestParseStats_KeepsExtraKeys(t *testing.T) {
	s, err := tools.ParseStats(`{"stars": 1, "forks": 2, "watchers": 3}`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Stars)
	assert.Equal(t, int64(2), s.Forks)
	assert.Equal(t, map[string]any{"watchers": float64(3)}, s.Extra)
}

func TestParseStats_IntegralFloatsAndNull(t *testing.T) {
	s, err := tools.ParseStats(`{"stars": 3900.0, "forks": null}`)
	require.NoError(t, err)
	assert.Equal(t, int64(3900), s.Stars)
	assert.Zero(t, s.Forks)
	assert.True(t, s.Known)
}

func TestParseStats_MissingCountsAreZero(t *testing.T) {
	s, err := tools.ParseStats(`{"stars": 7}`)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Stars)
	assert.Zero(t, s.Forks)
	assert.True(t, s.Known)
}

func TestParseStats_Malformed(t *testing.T) {
	for _, reply := range []string{
		"",
		"the repository has many stars",
		"{'stars': 1, 'forks': 2}",
		"[1, 2]",
		"null",
		`{"stars": "lots"}`,
		`{"stars": 1e30, "forks": 1}`,
		`{"stars": 1, "forks": -5}`,
		`{"stars": "-3", "forks": 1}`,
		`{"stars": 3.5, "forks": 1}`,
		`{"stars": 9223372036854775808, "forks": 1}`,
		`{"stars": null, "forks": true}`,
		`{"stars": false}`,
	} {
		_, err := tools.ParseStats(reply)
		assert.Error(t, err, "reply %q", reply)
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, tools.StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "x", tools.StripCodeFence("  x  "))
}
