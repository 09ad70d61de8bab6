package plot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	skyBlue    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	lightGreen = color.RGBA{R: 144, G: 238, B: 144, A: 255}
)

// RenderPNG draws the Stars/Forks bar chart to path. The format follows the
// file extension, so .svg and .pdf work too.
func RenderPNG(path, title string, stars, forks int64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	width := vg.Points(60)
	starBar, err := plotter.NewBarChart(plotter.Values{float64(stars)}, width)
	if err != nil {
		return err
	}
	starBar.Color = skyBlue
	starBar.LineStyle.Width = 0

	forkBar, err := plotter.NewBarChart(plotter.Values{float64(forks)}, width)
	if err != nil {
		return err
	}
	forkBar.Color = lightGreen
	forkBar.LineStyle.Width = 0
	forkBar.XMin = 1

	p.Add(starBar, forkBar)
	p.NominalX("Stars", "Forks")

	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}
