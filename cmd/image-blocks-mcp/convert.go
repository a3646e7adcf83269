package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/image-blocks-mcp/internal/blocks"
	"github.com/ironsheep/image-blocks-mcp/internal/config"
	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
	"github.com/ironsheep/image-blocks-mcp/internal/importer"
	"github.com/ironsheep/image-blocks-mcp/internal/objstring"
)

// runConvert implements the convert subcommand and returns the exit code.
// The object string (or level string) goes to stdout, everything else to
// stderr.
func runConvert(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.Default()
	step := fs.String("step", strconv.Itoa(def.Step), "pixels between samples when -auto=false")
	scale := fs.String("scale", strconv.FormatFloat(def.VisualScale, 'f', -1, 64), "object size relative to one editor tile")
	tolerance := fs.String("tolerance", strconv.Itoa(def.Tolerance), "per-channel color difference merged into one object")
	auto := fs.Bool("auto", def.AutoSafety, "pick the step automatically")
	merge := fs.Bool("merge", def.Merge, "merge similar neighbouring pixels")
	originX := fs.Float64("x", 0, "scene X of the image center")
	originY := fs.Float64("y", 0, "scene Y of the image center")
	objectID := fs.Int("id", objstring.DefaultObjectID, "editor object type")
	region := fs.String("region", "", "import only x1,y1,x2,y2 (x2,y2 exclusive)")
	compress := fs.Bool("compress", false, "print a gzip+base64 level string instead of the raw object string")
	estimate := fs.Bool("estimate", false, "print the predicted step and object count and exit")
	cfgPath := fs.String("config", "", "JSON settings file; flags given explicitly override it")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: image-blocks-mcp convert [flags] <image>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	base := def
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		base = loaded
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	settings := config.Parse(*step, *scale, *tolerance, *auto, *merge)
	if !set["step"] {
		settings.Step = base.Step
	}
	if !set["scale"] {
		settings.VisualScale = base.VisualScale
	}
	if !set["tolerance"] {
		settings.Tolerance = base.Tolerance
	}
	if !set["auto"] {
		settings.AutoSafety = base.AutoSafety
	}
	if !set["merge"] {
		settings.Merge = base.Merge
	}
	settings = settings.Validate()

	var crop *imaging.Region
	if *region != "" {
		r, err := parseRegion(*region)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
		crop = &r
	}

	if *estimate {
		info, err := imaging.Probe(path)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		width, height := info.Width, info.Height
		if crop != nil && crop.Validate(width, height) == nil {
			width, height = crop.Size()
		}
		est := blocks.EstimateObjects(width, height, settings.Step, settings.AutoSafety)
		fmt.Fprintf(stdout, "~%d Objects (step %d, %dx%d)\n", est.Objects, est.Step, est.Width, est.Height)
		return 0
	}

	req := importer.Request{
		Path:     path,
		Settings: settings,
		Origin:   blocks.Point{X: *originX, Y: *originY},
		ObjectID: *objectID,
	}
	req.Region = crop

	result := importer.Process(req, nil)
	fmt.Fprintln(stderr, result.Message())
	if !result.OK() {
		return 1
	}

	out := result.Objects
	if *compress {
		level, err := objstring.CompressLevelString(out)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		out = level
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func parseRegion(s string) (imaging.Region, error) {
	var r imaging.Region
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X1, &r.Y1, &r.X2, &r.Y2); err != nil {
		return r, fmt.Errorf("invalid region %q: want x1,y1,x2,y2", s)
	}
	return r, nil
}
