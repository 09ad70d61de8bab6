// Package config loads the run configuration once at startup.
//
// Layers, lowest precedence first: built-in defaults, an optional TOML file,
// a .env file in the working directory, then process environment. Callers
// apply CLI flags on top and call Validate before any network call.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Renderer names.
const (
	RendererScript = "script"
	RendererNative = "native"
)

const (
	DefaultModel          = "deepseek-chat"
	DefaultAnthropicModel = "claude-3-7-sonnet-latest"
	DefaultScriptPath     = "plot_github_stats.py"
	DefaultImagePath      = "github_stats.png"
	DefaultQuery          = "Open Baidu search, summarize the GitHub star and fork counts of the camel-ai camel framework, " +
		"write the numbers into a Python plotting file saved locally, and run the generated file."
)

// Environment variable names.
const (
	EnvAPIKey          = "DEEPSEEK_API_KEY"
	EnvBaseURL         = "DEEPSEEK_API_BASE_URL"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvProvider        = "REPOSTATS_PROVIDER"
	EnvModel           = "REPOSTATS_MODEL"
	EnvQuery           = "REPOSTATS_QUERY"
	EnvWriteRoot       = "REPOSTATS_WRITE_ROOT"
	EnvInterpreter     = "REPOSTATS_INTERPRETER"
	EnvRenderer        = "REPOSTATS_RENDERER"
	EnvRequestTimeout  = "REPOSTATS_REQUEST_TIMEOUT"
	EnvLogLevel        = "REPOSTATS_LOG_LEVEL"
	EnvObserveJSON     = "REPOSTATS_OBSERVE_JSON"
	EnvTranscriptPath  = "REPOSTATS_TRANSCRIPT"
)

// ErrMissingSetting is wrapped by Validate when a required value is empty.
var ErrMissingSetting = errors.New("missing required setting")

// ErrInvalidSetting is wrapped by Validate when a value is out of range.
var ErrInvalidSetting = errors.New("invalid setting")

// Duration is a time.Duration that decodes from strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the full run configuration.
type Config struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	Query    string `toml:"query"`

	WriteRoot   string `toml:"write_root"`
	ScriptPath  string `toml:"script_path"`
	ImagePath   string `toml:"image_path"`
	Interpreter string `toml:"interpreter"`
	Renderer    string `toml:"renderer"`

	// RequestTimeout bounds each HTTP request; zero keeps the client default.
	RequestTimeout Duration `toml:"request_timeout"`

	LogLevel       string `toml:"log_level"`
	ObserveJSON    bool   `toml:"observe_json"`
	EventsDir      string `toml:"events_dir"`
	TranscriptPath string `toml:"transcript_path"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Provider:   ProviderOpenAI,
		Query:      DefaultQuery,
		ScriptPath: DefaultScriptPath,
		ImagePath:  DefaultImagePath,
		Renderer:   RendererScript,
		LogLevel:   "info",
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when empty),
// ./.env and the environment. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.fillModel()
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvProvider, &c.Provider)
	str(EnvAPIKey, &c.APIKey)
	str(EnvBaseURL, &c.BaseURL)
	str(EnvModel, &c.Model)
	str(EnvQuery, &c.Query)
	str(EnvWriteRoot, &c.WriteRoot)
	str(EnvInterpreter, &c.Interpreter)
	str(EnvRenderer, &c.Renderer)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvTranscriptPath, &c.TranscriptPath)

	if c.Provider == ProviderAnthropic && c.APIKey == "" {
		str(EnvAnthropicAPIKey, &c.APIKey)
	}
	if v, ok := lookup(EnvObserveJSON); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvObserveJSON, v, ErrInvalidSetting)
		}
		c.ObserveJSON = b
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		if err := c.RequestTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s=%q: %w", EnvRequestTimeout, v, ErrInvalidSetting)
		}
	}
	return nil
}

// fillModel picks the provider's default model when none was configured.
func (c *Config) fillModel() {
	if c.Model != "" {
		return
	}
	if c.Provider == ProviderAnthropic {
		c.Model = DefaultAnthropicModel
		return
	}
	c.Model = DefaultModel
}

// Validate reports the first missing or malformed setting.
func (c *Config) Validate() error {
	c.fillModel()
	switch c.Provider {
	case ProviderOpenAI:
		if c.BaseURL == "" {
			return fmt.Errorf("%s (base_url): %w", EnvBaseURL, ErrMissingSetting)
		}
	case ProviderAnthropic:
	default:
		return fmt.Errorf("provider %q: %w", c.Provider, ErrInvalidSetting)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s (api_key): %w", c.apiKeyEnv(), ErrMissingSetting)
	}
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("query: %w", ErrMissingSetting)
	}
	if c.ScriptPath == "" {
		return fmt.Errorf("script_path: %w", ErrMissingSetting)
	}
	if c.Renderer != RendererScript && c.Renderer != RendererNative {
		return fmt.Errorf("renderer %q: %w", c.Renderer, ErrInvalidSetting)
	}
	if c.Renderer == RendererNative && c.ImagePath == "" {
		return fmt.Errorf("image_path: %w", ErrMissingSetting)
	}
	if c.RequestTimeout.Duration < 0 {
		return fmt.Errorf("request_timeout %s: %w", c.RequestTimeout.Duration, ErrInvalidSetting)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// apiKeyEnv names the environment variable that supplies the selected provider's key.
func (c *Config) apiKeyEnv() string {
	if c.Provider == ProviderAnthropic {
		return EnvAnthropicAPIKey
	}
	return EnvAPIKey
}

// Level parses LogLevel into a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidSetting)
	}
	return lvl, nil
}
