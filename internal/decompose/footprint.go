package decompose

import (
	"errors"
	"fmt"
	"math"

	"github.com/terrain-data/losdecomp/internal/georaster"
)

// ErrNoOverlap reports that two rasters share no geographic area. A
// degenerate footprint cannot be clamped into a usable one, so the run must
// stop before any array work.
var ErrNoOverlap = errors.New("input rasters do not overlap")

// Footprint is the geographic rectangle common to all inputs, in degrees.
type Footprint struct {
	West  float64
	East  float64
	South float64
	North float64
}

// Overlap computes the footprint shared by two geocoded rasters: the
// east/north minima and west/south maxima of their bounding boxes.
// Returns ErrNoOverlap when the boxes are disjoint or touch only at an edge.
func Overlap(a, b *georaster.Attrs) (Footprint, error) {
	fp := Footprint{
		West:  math.Max(a.West, b.West),
		East:  math.Min(a.East, b.East),
		South: math.Max(a.South, b.South),
		North: math.Min(a.North, b.North),
	}
	if fp.West >= fp.East || fp.South >= fp.North {
		return Footprint{}, fmt.Errorf("%w: W=%g E=%g S=%g N=%g",
			ErrNoOverlap, fp.West, fp.East, fp.South, fp.North)
	}
	return fp, nil
}

// GridSize returns the footprint's pixel dimensions for the given step
// sizes. latStep is negative for north-up grids, so length counts rows from
// north down to south.
func (fp Footprint) GridSize(lonStep, latStep float64) (width, length int) {
	width = int(math.Round((fp.East - fp.West) / lonStep))
	length = int(math.Round((fp.South - fp.North) / latStep))
	return width, length
}
