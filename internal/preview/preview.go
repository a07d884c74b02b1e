// Package preview renders component fields as PNG quicklooks so a run can
// be eyeballed without loading the output rasters into a GIS tool.
package preview

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/terrain-data/losdecomp/internal/decompose"
)

// fieldGrid adapts a ComponentField to plotter.GridXYZ. Heatmap rows grow
// upward (south to north) while the raster is stored north-down, so Z flips
// the row index. NaN no-data pixels render as zero.
type fieldGrid struct {
	f *decompose.ComponentField
}

func (g fieldGrid) Dims() (c, r int) {
	return g.f.Attrs.Width, g.f.Attrs.Length
}

func (g fieldGrid) Z(c, r int) float64 {
	v := g.f.At(g.f.Attrs.Length-1-r, c)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g fieldGrid) X(c int) float64 {
	return g.f.Attrs.West + (float64(c)+0.5)*g.f.Attrs.LonStep
}

func (g fieldGrid) Y(r int) float64 {
	return g.f.Attrs.South + (float64(r)+0.5)*math.Abs(g.f.Attrs.LatStep)
}

// WritePNG renders the field as a heatmap PNG at path.
func WritePNG(f *decompose.ComponentField, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "longitude (deg)"
	p.Y.Label.Text = "latitude (deg)"

	hm := plotter.NewHeatMap(fieldGrid{f}, palette.Heat(255, 1))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save quicklook %s: %w", path, err)
	}
	return nil
}
