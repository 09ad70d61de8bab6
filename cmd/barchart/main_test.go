package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	o, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{
		Stars: 3900,
		Forks: 452,
		Out:   "github_stats.png",
		Title: "GitHub Stats of camel-ai/camel",
		Show:  true,
	}, o)
}

func TestParseFlags_Overrides(t *testing.T) {
	o, err := parseFlags([]string{"-stars", "7", "-forks", "1", "-out", "x.svg", "-show=false"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, int64(7), o.Stars)
	assert.Equal(t, int64(1), o.Forks)
	assert.Equal(t, "x.svg", o.Out)
	assert.False(t, o.Show)
}

func TestParseFlags_RejectsBadNumber(t *testing.T) {
	_, err := parseFlags([]string{"-stars", "many"}, io.Discard)
	assert.Error(t, err)
}
