package preview

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/terrain-data/losdecomp/internal/decompose"
	"github.com/terrain-data/losdecomp/internal/georaster"
)

func testField() *decompose.ComponentField {
	attrs := georaster.Attrs{
		West: 10.0, East: 10.004, South: 20.0, North: 20.004,
		LonStep: 0.001, LatStep: -0.001,
		Width: 4, Length: 4,
		Geocoded: true,
	}
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i) * 0.01
	}
	data[5] = math.NaN()
	return &decompose.ComponentField{Attrs: attrs, Data: data}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "up.dgr.png")
	if err := WritePNG(testField(), "vertical displacement", path); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("quicklook not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("quicklook file is empty")
	}
}

func TestFieldGridOrientation(t *testing.T) {
	g := fieldGrid{testField()}

	c, r := g.Dims()
	if c != 4 || r != 4 {
		t.Fatalf("Dims = (%d, %d), want (4, 4)", c, r)
	}

	// Heatmap row 0 is the southernmost, i.e. the raster's last row.
	if got := g.Z(0, 0); got != 0.12 {
		t.Errorf("Z(0,0) = %g, want 0.12 (south-west corner)", got)
	}
	if got := g.Z(0, 3); got != 0.00 {
		t.Errorf("Z(0,3) = %g, want 0 (north-west corner)", got)
	}

	// NaN no-data renders as zero. Raster (1,1) is heatmap (1, 2).
	if got := g.Z(1, 2); got != 0 {
		t.Errorf("Z over a no-data pixel = %g, want 0", got)
	}

	// Axis coordinates are pixel centers.
	if got := g.X(0); math.Abs(got-10.0005) > 1e-12 {
		t.Errorf("X(0) = %g, want 10.0005", got)
	}
	if got := g.Y(0); math.Abs(got-20.0005) > 1e-12 {
		t.Errorf("Y(0) = %g, want 20.0005", got)
	}
}
