package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// DefaultMaxResults applies when the caller omits max_results.
const DefaultMaxResults = 5

type SearchInput struct {
	Query      string `json:"query" jsonschema_description:"Search keywords."`
	MaxResults *int   `json:"max_results,omitempty" jsonschema_description:"Number of results to return (default 5)."`
}

type SearchResult struct {
	ResultID int    `json:"result_id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

type SearchOutput struct {
	Results []SearchResult `json:"results"`
}

// searchFixture stands in for a real search backend.
var searchFixture = []SearchResult{
	{ResultID: 1, Title: "CAMEL framework official documentation", URL: "https://camel-ai.org"},
	{ResultID: 2, Title: "GitHub - camel-ai/camel: CAMEL: multi-agent framework", URL: "https://github.com/camel-ai/camel"},
}

var SearchInputSchema = GenerateSchema[SearchInput]()

// SearchDefinition declares search_baidu.
func SearchDefinition(log *slog.Logger) Definition {
	if log == nil {
		log = slog.Default()
	}
	return Definition{
		Name:        NameSearch,
		Description: "Search Baidu for the keywords and return the results.",
		InputSchema: SearchInputSchema,
		Function: func(_ context.Context, args json.RawMessage) (Result, error) {
			var in SearchInput
			if err := json.Unmarshal(args, &in); err != nil {
				return Result{}, err
			}
			log.Info("searching (stub results)", "query", in.Query)
			out := Search(in.Query, in.MaxResults)
			return Result{Tool: NameSearch, Search: &out}, nil
		},
	}
}

// Search returns the fixed results truncated to maxResults.
// nil means DefaultMaxResults; zero or negative yields no results.
func Search(_ string, maxResults *int) SearchOutput {
	n := DefaultMaxResults
	if maxResults != nil {
		n = *maxResults
	}
	if n < 0 {
		n = 0
	}
	if n > len(searchFixture) {
		n = len(searchFixture)
	}
	out := make([]SearchResult, n)
	copy(out, searchFixture[:n])
	return SearchOutput{Results: out}
}

// FirstURLContaining returns the first result URL containing substr.
func (o SearchOutput) FirstURLContaining(substr string) (string, bool) {
	for _, r := range o.Results {
		if strings.Contains(r.URL, substr) {
			return r.URL, true
		}
	}
	return "", false
}
