package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Stats is a repository's star and fork counts.
//
// Known is false when the counts are the zero default substituted for a
// failed lookup, so callers can tell "unknown" from a real zero.
type Stats struct {
	Stars int64          `mapstructure:"stars"`
	Forks int64          `mapstructure:"forks"`
	Extra map[string]any `mapstructure:",remain"`
	Known bool           `mapstructure:"-"`
	Repo  string         `mapstructure:"-"`
}

var (
	errNotObject = errors.New("stats reply is not a JSON object")
	errBadCount  = errors.New("count is not a non-negative integer")
)

// countHook converts JSON numbers and numeric strings into int64 counts,
// rejecting fractions, negatives, values past int64 and booleans.
func countHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int64 {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		if v != math.Trunc(v) || v < 0 || v >= math.MaxInt64 {
			return nil, fmt.Errorf("%w: %v", errBadCount, v)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", errBadCount, v)
		}
		return n, nil
	case bool:
		return nil, fmt.Errorf("%w: %v", errBadCount, v)
	}
	return data, nil
}

// Map returns the counts as the model reported them, extra keys included.
func (s Stats) Map() map[string]any {
	m := make(map[string]any, len(s.Extra)+2)
	for k, v := range s.Extra {
		m[k] = v
	}
	m["stars"] = s.Stars
	m["forks"] = s.Forks
	return m
}

// StripCodeFence removes Markdown code-fence markers and surrounding space.
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseStats decodes a model reply such as ```json {"stars": 1, "forks": 2} ```.
// Numbers may arrive as JSON numbers or numeric strings. Missing or null counts
// are zero.
func ParseStats(reply string) (Stats, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(StripCodeFence(reply)), &m); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	if m == nil {
		return Stats{}, errNotObject
	}

	var s Stats
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		DecodeHook:       countHook,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Stats{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	if len(s.Extra) == 0 {
		s.Extra = nil
	}
	s.Known = true
	return s, nil
}
