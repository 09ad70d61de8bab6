package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petasbytes/repostats-agent/internal/metrics"
)

func TestMeasure_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.TextSize
	}{
		{"Empty", "", metrics.TextSize{}},
		{"ASCII", "hello world", metrics.TextSize{Bytes: 11, Runes: 11, Words: 2, Lines: 1, Tokens: 15}},
		{"Multibyte", "héllö 世界", metrics.TextSize{Bytes: 14, Runes: 8, Words: 2, Lines: 1, Tokens: 12}},
		{"Multiline", "a\nb\ncd", metrics.TextSize{Bytes: 6, Runes: 6, Words: 3, Lines: 3, Tokens: 10}},
		{"TrailingNewline", "a\n", metrics.TextSize{Bytes: 2, Runes: 2, Words: 1, Lines: 2, Tokens: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.Measure(tc.in))
		})
	}
}

func TestEstimateTokens_AddsOverheadPerMessage(t *testing.T) {
	assert.Equal(t, 0, metrics.EstimateTokens(""))
	assert.Equal(t, 5, metrics.EstimateTokens("a"))
	assert.Equal(t, 6, metrics.EstimateTokens("世界"))
}
