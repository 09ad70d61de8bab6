package plot

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/petasbytes/repostats-agent/internal/fsops"
	"github.com/petasbytes/repostats-agent/tools"
)

// Artifact names what a Plotter produced. Empty fields were not produced.
type Artifact struct {
	Script string
	Image  string
}

// Plotter turns stats into a chart.
type Plotter interface {
	Plot(ctx context.Context, s tools.Stats) (Artifact, error)
}

// ScriptPlotter writes the matplotlib script and executes it.
type ScriptPlotter struct {
	Writer *ScriptWriter
	Exec   Executor
	Log    *slog.Logger
}

func (p *ScriptPlotter) Plot(ctx context.Context, s tools.Stats) (Artifact, error) {
	abs, err := p.Writer.Write(s)
	if err != nil {
		return Artifact{}, err
	}
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("generated script", "path", abs)

	art := Artifact{Script: abs}
	log.Info("running generated script", "script", p.Writer.Path)
	if err := p.Exec.Run(ctx, p.Writer.Root.Dir(), p.Writer.Path); err != nil {
		return art, err
	}
	art.Image = filepath.Join(p.Writer.Root.Dir(), p.Writer.Image)
	return art, nil
}

// NativePlotter renders the chart in-process.
type NativePlotter struct {
	Root  *fsops.Root
	Image string
	Log   *slog.Logger
}

func (p *NativePlotter) Plot(_ context.Context, s tools.Stats) (Artifact, error) {
	abs, err := p.Root.Resolve(p.Image)
	if err != nil {
		return Artifact{}, err
	}
	if err := RenderPNG(abs, Title(s), s.Stars, s.Forks); err != nil {
		return Artifact{}, err
	}
	if p.Log != nil {
		p.Log.Info("rendered chart", "path", abs)
	}
	return Artifact{Image: abs}, nil
}
