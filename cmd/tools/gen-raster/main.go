// Command gen-raster generates synthetic geocoded .dgr rasters for testing
// the decomposition pipeline without real interferometry products.
package main

import (
	"flag"
	"log"
	"math"

	"github.com/terrain-data/losdecomp/internal/georaster"
)

func main() {
	output := flag.String("o", "sample.dgr", "output path")
	west := flag.Float64("west", 10.0, "west edge (deg)")
	north := flag.Float64("north", 20.002, "north edge (deg)")
	step := flag.Float64("step", 0.001, "pixel step (deg)")
	width := flag.Int("width", 2, "grid width (pixels)")
	length := flag.Int("length", 2, "grid length (pixels)")
	heading := flag.Float64("heading", 190.0, "satellite heading angle (deg)")
	incidence := flag.Float64("incidence", 35.0, "incidence angle (deg)")
	amplitude := flag.Float64("amp", 0.0, "LOS ramp amplitude; 0 gives an all-zero field")
	flag.Parse()

	attrs := georaster.Attrs{
		West:      *west,
		East:      *west + float64(*width)**step,
		South:     *north - float64(*length)**step,
		North:     *north,
		LonStep:   *step,
		LatStep:   -*step,
		Width:     *width,
		Length:    *length,
		Heading:   *heading,
		Incidence: *incidence,
		Geocoded:  true,
		Unit:      "m/yr",
		Extra:     map[string]string{"source": "gen-raster"},
	}

	// Smooth diagonal ramp so aligned sub-windows stay recognisable.
	data := make([]float64, *width**length)
	for row := 0; row < *length; row++ {
		for col := 0; col < *width; col++ {
			frac := float64(row+col) / math.Max(float64(*width+*length-2), 1)
			data[row**width+col] = *amplitude * frac
		}
	}

	if err := georaster.Write(data, attrs, *output); err != nil {
		log.Fatalf("failed to write raster: %v", err)
	}
	log.Printf("✓ Created: %s (%dx%d, heading=%g, incidence=%g)",
		*output, *width, *length, *heading, *incidence)
}
