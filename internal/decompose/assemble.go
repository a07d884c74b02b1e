package decompose

import (
	"fmt"

	"github.com/terrain-data/losdecomp/internal/georaster"
)

// ComponentField is one solved output: a row-major grid over the footprint
// plus the geospatial attributes derived for it. The assembler performs no
// numerical work; it only reshapes and rewrites metadata.
type ComponentField struct {
	Attrs georaster.Attrs
	Data  []float64
}

// At returns the value at row r, column c of the assembled grid.
func (f *ComponentField) At(row, col int) float64 {
	return f.Data[row*f.Attrs.Width+col]
}

// Assemble wraps a solved flat vector as an output raster over the
// footprint. Attributes are copied from the reference input (the first
// file), with the bounding box, origin and dimensions rewritten to the
// footprint grid; step sizes carry over unchanged. Viewing-geometry
// attributes are cleared since a component field no longer has a single
// acquisition geometry.
func Assemble(flat []float64, fp Footprint, ref *georaster.Attrs) (ComponentField, error) {
	width, length := fp.GridSize(ref.LonStep, ref.LatStep)
	if len(flat) != width*length {
		return ComponentField{}, fmt.Errorf("internal: solved vector length %d does not match %dx%d footprint grid",
			len(flat), width, length)
	}

	attrs := *ref
	attrs.West = fp.West
	attrs.East = fp.East
	attrs.South = fp.South
	attrs.North = fp.North
	attrs.Width = width
	attrs.Length = length
	attrs.Heading = 0
	attrs.Incidence = 0
	if ref.Extra != nil {
		attrs.Extra = make(map[string]string, len(ref.Extra))
		for k, v := range ref.Extra {
			attrs.Extra[k] = v
		}
	}
	return ComponentField{Attrs: attrs, Data: flat}, nil
}
