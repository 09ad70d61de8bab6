// Command barchart renders the fixed Stars/Forks bar chart without any network
// access or Python, then opens it in the system image viewer.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/petasbytes/repostats-agent/internal/plot"
)

type options struct {
	Stars int64
	Forks int64
	Out   string
	Title string
	Show  bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("barchart", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Int64Var(&o.Stars, "stars", 3900, "star count")
	fs.Int64Var(&o.Forks, "forks", 452, "fork count")
	fs.StringVar(&o.Out, "out", "github_stats.png", "output image (.png, .svg or .pdf)")
	fs.StringVar(&o.Title, "title", "GitHub Stats of "+plot.DefaultRepo, "chart title")
	fs.BoolVar(&o.Show, "show", true, "open the image with the system viewer (-show=false to skip)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := plot.RenderPNG(o.Out, o.Title, o.Stars, o.Forks); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Info("chart written", "path", o.Out, "stars", o.Stars, "forks", o.Forks)

	if o.Show {
		if err := plot.Open(o.Out); err != nil {
			log.Warn("could not open viewer", "path", o.Out, "err", err)
		}
	}
}
