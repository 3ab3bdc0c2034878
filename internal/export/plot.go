package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/ccm/internal/edm"
)

// SavePlot renders convergence curves against library length on a log2 axis.
// The image format follows the file extension (png, svg, pdf).
func SavePlot(path, title string, curves ...edm.Labeled) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "library length L"
	p.Y.Label.Text = "rho"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		if len(c.Curve) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(c.Curve))
		for j, pt := range c.Curve {
			pts[j].X = float64(pt.L)
			pts[j].Y = pt.Rho
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("plot %s: %w", c.Name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(c.Name, line, points)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
