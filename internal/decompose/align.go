package decompose

import (
	"fmt"

	"github.com/terrain-data/losdecomp/internal/georaster"
)

// WindowFor converts the common footprint into the pixel sub-window of one
// raster. The window edges come from rounding the footprint corners against
// the raster's own origin and step, so all inputs sharing step sizes produce
// windows of identical shape.
//
// A window that falls outside the raster means the footprint and the window
// conversion disagree; that is an upstream defect, not a user error, and is
// reported as such.
func WindowFor(attrs *georaster.Attrs, fp Footprint) (georaster.Window, error) {
	x0, x1, err := attrs.GeoToPixels(fp.West, fp.East, georaster.AxisLon)
	if err != nil {
		return georaster.Window{}, err
	}
	y0, y1, err := attrs.GeoToPixels(fp.North, fp.South, georaster.AxisLat)
	if err != nil {
		return georaster.Window{}, err
	}
	w := georaster.Window{X0: x0, Y0: y0, X1: x1, Y1: y1}
	if !w.Contains(attrs.Width, attrs.Length) {
		return georaster.Window{}, fmt.Errorf(
			"internal: footprint window [%d:%d,%d:%d] outside %dx%d raster",
			x0, x1, y0, y1, attrs.Width, attrs.Length)
	}
	return w, nil
}

// Align extracts the LOS sample of one raster over the common footprint as a
// row-major flat slice. Every input aligned against the same footprint
// yields a slice of the same length, ready for stacking in the solver.
func Align(r *georaster.Raster, fp Footprint) ([]float64, error) {
	w, err := WindowFor(&r.Attrs, fp)
	if err != nil {
		return nil, err
	}
	return r.Extract(w)
}
