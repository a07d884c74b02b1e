// Package georaster defines the geocoded raster data model shared by the
// decomposition pipeline: per-file attributes (bounding box, pixel step,
// viewing geometry) and the row-major displacement grid, plus conversion
// between geographic coordinates and pixel indices.
//
// Grids are stored north-up: row 0 is the northernmost row, values within a
// row run west to east. LatStep is negative for north-up grids and LonStep
// positive; both are degrees per pixel. NaN marks no-data pixels.
package georaster

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for configuration problems detected before any array work.
var (
	ErrNotGeocoded  = errors.New("raster is not geocoded")
	ErrStepMismatch = errors.New("pixel step sizes do not match")
)

// Attrs describes one geocoded LOS displacement raster. It is the metadata
// half of a raster file and is treated as immutable once read.
type Attrs struct {
	// Geographic bounding box in degrees. West/North is the grid origin.
	West  float64
	East  float64
	South float64
	North float64

	// Pixel step in degrees per pixel. LatStep is negative for north-up
	// grids, matching the row-major top-down layout.
	LonStep float64
	LatStep float64

	// Grid dimensions in pixels.
	Width  int
	Length int

	// Viewing geometry. Heading is the satellite ground-track direction in
	// degrees clockwise from north; Incidence is the look angle from local
	// vertical at a representative pixel. Both single scalars per
	// acquisition: incidence in reality varies across the swath, but the
	// decomposition deliberately treats it as constant.
	Heading   float64
	Incidence float64

	// Geocoded is true when the grid carries an explicit geographic origin.
	// Non-geocoded rasters cannot participate in a decomposition.
	Geocoded bool

	// Unit of the displacement values, e.g. "m" or "m/yr".
	Unit string

	// Extra holds free-form provenance attributes (platform, track, dates).
	Extra map[string]string
}

// Axis selects which geographic axis a coordinate conversion applies to.
type Axis string

const (
	AxisLon Axis = "lon"
	AxisLat Axis = "lat"
)

// Validate checks the attribute set for internal consistency.
func (a *Attrs) Validate() error {
	if a.Width <= 0 || a.Length <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", a.Width, a.Length)
	}
	if a.LonStep == 0 || a.LatStep == 0 {
		return fmt.Errorf("zero pixel step (lon=%g lat=%g)", a.LonStep, a.LatStep)
	}
	if a.West >= a.East || a.South >= a.North {
		return fmt.Errorf("invalid bounding box W=%g E=%g S=%g N=%g", a.West, a.East, a.South, a.North)
	}
	return nil
}

// SameStep reports whether two rasters share pixel step sizes exactly.
// The pipeline performs no resampling, so this must hold for every pair
// entering a decomposition.
func (a *Attrs) SameStep(b *Attrs) bool {
	return a.LonStep == b.LonStep && a.LatStep == b.LatStep
}

// GeoToPixel converts a geographic coordinate on the given axis into the
// nearest pixel index relative to this raster's origin and step. Longitude
// maps to a column index from West; latitude maps to a row index from North.
func (a *Attrs) GeoToPixel(coord float64, axis Axis) (int, error) {
	switch axis {
	case AxisLon:
		return int(math.Round((coord - a.West) / a.LonStep)), nil
	case AxisLat:
		return int(math.Round((coord - a.North) / a.LatStep)), nil
	default:
		return 0, fmt.Errorf("unknown axis %q", axis)
	}
}

// GeoToPixels converts a pair of coordinates on one axis, mirroring the
// two-ended window conversions the aligner performs.
func (a *Attrs) GeoToPixels(c0, c1 float64, axis Axis) (int, int, error) {
	p0, err := a.GeoToPixel(c0, axis)
	if err != nil {
		return 0, 0, err
	}
	p1, err := a.GeoToPixel(c1, axis)
	if err != nil {
		return 0, 0, err
	}
	return p0, p1, nil
}

// Raster pairs an attribute set with its row-major data grid.
// Data has Length rows of Width values; Data[r*Width+c] is row r, column c.
type Raster struct {
	Attrs Attrs
	Data  []float64
}

// NewRaster allocates a raster with a zeroed grid sized from attrs.
func NewRaster(attrs Attrs) *Raster {
	return &Raster{
		Attrs: attrs,
		Data:  make([]float64, attrs.Width*attrs.Length),
	}
}

// At returns the value at row r, column c.
func (r *Raster) At(row, col int) float64 {
	return r.Data[row*r.Attrs.Width+col]
}

// Set assigns the value at row r, column c.
func (r *Raster) Set(row, col int, v float64) {
	r.Data[row*r.Attrs.Width+col] = v
}

// Window is a half-open pixel sub-rectangle [X0,X1) x [Y0,Y1) within a grid.
type Window struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the window's column count.
func (w Window) Width() int { return w.X1 - w.X0 }

// Length returns the window's row count.
func (w Window) Length() int { return w.Y1 - w.Y0 }

// Contains reports whether the window lies fully inside a grid of the given
// dimensions.
func (w Window) Contains(width, length int) bool {
	return w.X0 >= 0 && w.Y0 >= 0 && w.X1 <= width && w.Y1 <= length && w.X0 < w.X1 && w.Y0 < w.Y1
}

// Extract copies the window's values out of the raster as a new row-major
// grid of w.Length() rows by w.Width() columns.
func (r *Raster) Extract(w Window) ([]float64, error) {
	if !w.Contains(r.Attrs.Width, r.Attrs.Length) {
		return nil, fmt.Errorf("window [%d:%d,%d:%d] outside %dx%d grid",
			w.X0, w.X1, w.Y0, w.Y1, r.Attrs.Width, r.Attrs.Length)
	}
	out := make([]float64, w.Width()*w.Length())
	for row := w.Y0; row < w.Y1; row++ {
		src := r.Data[row*r.Attrs.Width+w.X0 : row*r.Attrs.Width+w.X1]
		copy(out[(row-w.Y0)*w.Width():], src)
	}
	return out, nil
}
