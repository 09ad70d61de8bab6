// Command repostats asks a chat model to find a GitHub repository, fetches its
// star and fork counts through a stub tool, and plots them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/petasbytes/repostats-agent/internal/config"
	"github.com/petasbytes/repostats-agent/internal/fsops"
	"github.com/petasbytes/repostats-agent/internal/plot"
	"github.com/petasbytes/repostats-agent/internal/provider"
	"github.com/petasbytes/repostats-agent/internal/runner"
	"github.com/petasbytes/repostats-agent/internal/telemetry"
	"github.com/petasbytes/repostats-agent/memory"
	"github.com/petasbytes/repostats-agent/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		query      = flag.String("query", "", "user query (overrides config)")
		prov       = flag.String("provider", "", "chat provider: openai or anthropic")
		renderer   = flag.String("renderer", "", "chart renderer: script or native")
		verbose    = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *query != "" {
		cfg.Query = *query
	}
	if *prov != "" && *prov != cfg.Provider {
		if cfg.Model == config.DefaultModel || cfg.Model == config.DefaultAnthropicModel {
			cfg.Model = ""
		}
		cfg.Provider = *prov
	}
	if *renderer != "" {
		cfg.Renderer = *renderer
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
	telemetry.Configure(cfg.ObserveJSON, cfg.EventsDir)

	// Cancel the in-flight request or child process on Ctrl-C (SIGINT) / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runID := telemetry.NewRunID()
	ctx = telemetry.WithRunID(ctx, runID)

	chat, err := provider.New(cfg, nil, log)
	if err != nil {
		return err
	}
	reg, err := tools.Default(chat, log)
	if err != nil {
		return err
	}
	root, err := fsops.NewRoot(cfg.WriteRoot)
	if err != nil {
		return err
	}

	r := runner.New(chat, reg, newPlotter(cfg, root, log), log)
	if cfg.TranscriptPath != "" {
		r.Transcript = &memory.Transcript{}
	}

	log.Info("starting run", "run_id", runID, "provider", chat.Name(), "model", cfg.Model, "renderer", cfg.Renderer)
	out, runErr := r.Run(ctx, cfg.Query)

	if r.Transcript != nil {
		if err := saveTranscript(root, cfg.TranscriptPath, r.Transcript); err != nil {
			log.Warn("failed to save transcript", "path", cfg.TranscriptPath, "err", err)
		}
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || ctx.Err() != nil {
			fmt.Println("\nExiting...")
		}
		return runErr
	}
	if out.Stats != nil {
		log.Info("run finished", "stars", out.Stats.Stars, "forks", out.Stats.Forks, "known", out.Stats.Known,
			"script", out.ScriptPath, "image", out.ImagePath)
	}
	if out.Degraded {
		log.Warn("run used a substituted reply after a failed request")
	}
	return nil
}

func newPlotter(cfg config.Config, root *fsops.Root, log *slog.Logger) plot.Plotter {
	if cfg.Renderer == config.RendererNative {
		return &plot.NativePlotter{Root: root, Image: cfg.ImagePath, Log: log}
	}
	return &plot.ScriptPlotter{
		Writer: &plot.ScriptWriter{Root: root, Path: cfg.ScriptPath, Image: cfg.ImagePath},
		Exec:   &plot.ScriptRunner{Interpreter: cfg.Interpreter, Stdout: os.Stdout, Stderr: os.Stderr},
		Log:    log,
	}
}

// saveTranscript keeps the transcript inside the write root like every other artefact.
func saveTranscript(root *fsops.Root, rel string, t *memory.Transcript) error {
	abs, err := root.Resolve(rel)
	if err != nil {
		return err
	}
	return t.Save(abs)
}
