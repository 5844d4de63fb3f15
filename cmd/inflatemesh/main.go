// Command inflatemesh inflates the closed polygons of a GeoJSON or DXF file
// into a raised surface and writes it as STL, OpenSCAD, 3MF or JSON.
//
// Usage:
//
//	inflatemesh [options] drawing.geojson
//	inflatemesh -serve :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/chazu/inflate/pkg/inflate"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/chazu/inflate/pkg/server"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "inflatemesh:", err)
		}
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inflatemesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	def := inflate.DefaultParams()
	var (
		thickness     = fs.Float64("height", def.Thickness, "height (thickness) of the inflated surface in millimetres")
		flatness      = fs.Float64("flatness", def.Flatness, "make the top flatter; reasonable range 0-10")
		exponent      = fs.Float64("exponent", def.Exponent, "controls how rounded the surface is; must be > 0")
		resolution    = fs.Int("resolution", def.Resolution, "approximate lattice resolution along the larger dimension")
		spacing       = fs.Float64("spacing", def.Spacing, "lattice spacing in millimetres; overrides -resolution")
		iterations    = fs.Int("iterations", def.Iterations, "relaxation iterations (0: 25 per cell along the larger dimension)")
		rectangular   = fs.Bool("rectangular", !def.Hex, "use a rectangular lattice instead of a hexagonal one")
		twoSided      = fs.Bool("two-sided", def.TwoSided, "inflate both up and down")
		flatBase      = fs.Bool("flat-base", def.FlatBase, "close single-sided surfaces with a flat bottom")
		noTrim        = fs.Bool("no-trim", !def.Trim, "leave the lattice-aligned boundary untrimmed")
		noise         = fs.Float64("noise", def.Noise, "amplitude of fractal surface texture")
		noiseExponent = fs.Float64("noise-exponent", def.NoiseExponent, "roughness of the surface texture")
		noiseSeed     = fs.Uint64("noise-seed", def.NoiseSeed, "seed for the surface texture")
		workers       = fs.Int("workers", def.Workers, "goroutines per phase (0: GOMAXPROCS)")

		config     = fs.String("config", "", "YAML parameter file; flags given explicitly override it")
		format     = fs.String("format", "scad", "output format: stl, scad, 3mf or json")
		output     = fs.String("output", "", "output file (default: stdout)")
		name       = fs.String("name", "svg", "base name of the OpenSCAD modules and variables")
		noColors   = fs.Bool("no-colors", false, "ignore the colours of the input paths")
		centerPage = fs.Bool("center-page", false, "put the centre of the drawing at the origin")
		serve      = fs.String("serve", "", "serve the HTTP API on this address instead of converting a file")
		verbose    = fs.Bool("verbose", false, "log progress")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: inflatemesh [options] file.geojson|file.dxf")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	params := def
	if *config != "" {
		p, err := inflate.LoadParams(*config)
		if err != nil {
			return err
		}
		params = p
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "height":
			params.Thickness = *thickness
		case "flatness":
			params.Flatness = *flatness
		case "exponent":
			params.Exponent = *exponent
		case "resolution":
			params.Resolution = *resolution
		case "spacing":
			params.Spacing = *spacing
		case "iterations":
			params.Iterations = *iterations
		case "rectangular":
			params.Hex = !*rectangular
		case "two-sided":
			params.TwoSided = *twoSided
		case "flat-base":
			params.FlatBase = *flatBase
		case "no-trim":
			params.Trim = !*noTrim
		case "noise":
			params.Noise = *noise
		case "noise-exponent":
			params.NoiseExponent = *noiseExponent
		case "noise-seed":
			params.NoiseSeed = *noiseSeed
		case "workers":
			params.Workers = *workers
		}
	})
	if err := params.Validate(); err != nil {
		return err
	}

	if *serve != "" {
		gin.SetMode(gin.ReleaseMode)
		srv := &http.Server{Addr: *serve, Handler: server.New(server.Options{Logger: logger, Defaults: &params})}
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		logger.Warn("serving", "addr", *serve)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input file")
	}
	*format = strings.ToLower(*format)
	if *format != mesh.JSONFormat && !lo.Contains(mesh.Formats, *format) {
		return fmt.Errorf("unknown format %q", *format)
	}

	app := &App{
		params:     params.PerSide(),
		logger:     logger,
		baseName:   *name,
		colors:     !*noColors,
		centerPage: *centerPage,
	}
	parts, err := app.Convert(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := app.Write(w, *format, parts); err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok && *output != "" {
		return f.Close()
	}
	return nil
}
