// Command losdecomp projects ascending and descending line-of-sight
// displacement rasters onto vertical and horizontal components.
//
// Usage:
//
//	losdecomp [flags] <ascending.dgr> <descending.dgr>
//
// Both inputs must be geocoded and share pixel step sizes; the outputs cover
// the geographic footprint common to both.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/terrain-data/losdecomp/internal/config"
	"github.com/terrain-data/losdecomp/internal/decompose"
	"github.com/terrain-data/losdecomp/internal/georaster"
	"github.com/terrain-data/losdecomp/internal/monitoring"
	"github.com/terrain-data/losdecomp/internal/preview"
	"github.com/terrain-data/losdecomp/internal/rundb"
	"github.com/terrain-data/losdecomp/internal/version"
)

var (
	azimuth       = flag.Float64("az", 90.0, "azimuth angle (deg, clockwise) of the assumed horizontal motion; 90 = pure east-west")
	verticalOut   = flag.String("out-vertical", "up.dgr", "output path for the vertical component")
	horizontalOut = flag.String("out-horizontal", "hz.dgr", "output path for the horizontal component")
	configPath    = flag.String("config", "", "optional JSON defaults file")
	doPreview     = flag.Bool("preview", false, "also write a PNG quicklook next to each output")
	historyDB     = flag.String("history-db", "", "optional sqlite database recording each run")
	quiet         = flag.Bool("quiet", false, "suppress progress logging")
	showVersion   = flag.Bool("version", false, "print build information and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] <ascending.dgr> <descending.dgr>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := resolveOptions()
	if err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	if opts.quiet {
		monitoring.SetLogger(nil)
	}

	if err := run(flag.Arg(0), flag.Arg(1), opts); err != nil {
		log.Fatalf("decomposition failed: %v", err)
	}
}

type options struct {
	azimuth       float64
	verticalOut   string
	horizontalOut string
	preview       bool
	historyDB     string
	quiet         bool
}

// resolveOptions merges the config file (if any) with command-line flags.
// Flags explicitly set on the command line win over config values; config
// values win over built-in defaults.
func resolveOptions() (options, error) {
	cfg := config.EmptyRunConfig()
	if *configPath != "" {
		loaded, err := config.LoadRunConfig(*configPath)
		if err != nil {
			return options{}, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := options{
		azimuth:       cfg.GetAzimuth(),
		verticalOut:   cfg.GetVerticalOut(),
		horizontalOut: cfg.GetHorizontalOut(),
		preview:       cfg.GetPreview(),
		historyDB:     cfg.GetHistoryDB(),
		quiet:         cfg.GetQuiet(),
	}
	if set["az"] {
		opts.azimuth = *azimuth
	}
	if set["out-vertical"] {
		opts.verticalOut = *verticalOut
	}
	if set["out-horizontal"] {
		opts.horizontalOut = *horizontalOut
	}
	if set["preview"] {
		opts.preview = *doPreview
	}
	if set["history-db"] {
		opts.historyDB = *historyDB
	}
	if set["quiet"] {
		opts.quiet = *quiet
	}
	return opts, nil
}

func run(ascPath, descPath string, opts options) error {
	start := time.Now()
	paths := [2]string{ascPath, descPath}

	// Configuration checks happen before any array work.
	var attrs [2]*georaster.Attrs
	for i, path := range paths {
		a, err := georaster.ReadAttrs(path)
		if err != nil {
			return err
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !a.Geocoded {
			return fmt.Errorf("%s: %w", path, georaster.ErrNotGeocoded)
		}
		attrs[i] = a
	}
	if !attrs[0].SameStep(attrs[1]) {
		return fmt.Errorf("%w: (%g, %g) vs (%g, %g)", georaster.ErrStepMismatch,
			attrs[0].LonStep, attrs[0].LatStep, attrs[1].LonStep, attrs[1].LatStep)
	}

	fp, err := decompose.Overlap(attrs[0], attrs[1])
	if err != nil {
		return err
	}
	width, length := fp.GridSize(attrs[0].LonStep, attrs[0].LatStep)
	monitoring.Logf("common footprint W=%g E=%g S=%g N=%g (%dx%d pixels)",
		fp.West, fp.East, fp.South, fp.North, width, length)

	var los [2][]float64
	var geom [2]decompose.Geometry
	for i, path := range paths {
		monitoring.Logf("reading %s", path)
		win, err := decompose.WindowFor(attrs[i], fp)
		if err != nil {
			return err
		}
		vals, err := georaster.ReadWindow(path, win)
		if err != nil {
			return err
		}
		los[i] = vals
		geom[i] = decompose.Geometry{
			Heading:   attrs[i].Heading,
			Incidence: attrs[i].Incidence,
		}
		monitoring.Logf("heading angle: %g, incidence angle: %g",
			decompose.NormalizeAngle(geom[i].Heading), geom[i].Incidence)
	}

	vFlat, hFlat, err := decompose.Solve(geom, opts.azimuth, los)
	if err != nil {
		return err
	}

	outputs := []struct {
		name string
		flat []float64
		path string
	}{
		{"vertical", vFlat, opts.verticalOut},
		{"horizontal", hFlat, opts.horizontalOut},
	}
	for _, out := range outputs {
		field, err := decompose.Assemble(out.flat, fp, attrs[0])
		if err != nil {
			return err
		}
		monitoring.Logf("writing %s component to %s", out.name, out.path)
		if err := georaster.Write(field.Data, field.Attrs, out.path); err != nil {
			return err
		}
		if opts.preview {
			pngPath := out.path + ".png"
			if err := preview.WritePNG(&field, out.name+" displacement", pngPath); err != nil {
				return err
			}
			monitoring.Logf("wrote quicklook %s", pngPath)
		}
	}

	if opts.historyDB != "" {
		if err := recordRun(opts, paths, fp, width, length, start); err != nil {
			// History is an audit convenience; a failed insert should not
			// fail a run whose outputs are already on disk.
			monitoring.Logf("warning: failed to record run history: %v", err)
		}
	}

	monitoring.Logf("done in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func recordRun(opts options, paths [2]string, fp decompose.Footprint, width, length int, start time.Time) error {
	db, err := rundb.Open(opts.historyDB)
	if err != nil {
		return err
	}
	defer db.Close()

	r := rundb.NewRun(paths[0], paths[1], decompose.NormalizeAngle(opts.azimuth))
	r.StartedAt = start.UTC()
	r.West, r.East, r.South, r.North = fp.West, fp.East, fp.South, fp.North
	r.Width, r.Length = width, length
	r.VerticalOut = opts.verticalOut
	r.HorizontalOut = opts.horizontalOut
	r.WallMillis = time.Since(start).Milliseconds()
	return db.RecordRun(r)
}
