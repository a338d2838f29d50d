// Command geomsvg evaluates a scene script and writes the rendered SVG.
//
//	geomsvg [flags] scene.lisp
//
// Settings come from GEOMSVG_* environment variables; flags override them.
// A script path of "-" reads standard input and an output of "-" writes
// standard output. With -watch the script is rendered again on every save
// until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/wykwit-tylko/common-core-geometry/pkg/config"
)

func main() {
	var flags config.Flags
	watchMode := flag.Bool("watch", false, "re-render whenever the script changes")
	flag.StringVar(&flags.Output, "o", "", "output SVG path, - for stdout (env GEOMSVG_OUTPUT)")
	flag.IntVar(&flags.Width, "width", 0, "default canvas width in pixels (env GEOMSVG_WIDTH)")
	flag.IntVar(&flags.Height, "height", 0, "default canvas height in pixels (env GEOMSVG_HEIGHT)")
	flag.StringVar(&flags.Background, "background", "", "default background color (env GEOMSVG_BACKGROUND)")
	flag.DurationVar(&flags.Timeout, "timeout", 0, "evaluation time limit (env GEOMSVG_TIMEOUT)")
	flag.IntVar(&flags.MeshCells, "mesh-cells", 0, "marching cubes cells along the longest axis (env GEOMSVG_MESH_CELLS)")
	flag.StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error (env GEOMSVG_LOG_LEVEL)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scene.lisp\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.Apply(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app := NewApp(cfg)
	path := flag.Arg(0)
	if *watchMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = watch(ctx, app, cfg, path)
	} else {
		err = renderFile(app, cfg, path)
	}
	if err != nil {
		slog.Error("geomsvg failed", "error", err)
		os.Exit(1)
	}
}

// errEvaluation marks a script that produced errors; they have already
// been logged.
var errEvaluation = errors.New("scene has errors")

// renderFile evaluates the script at path and writes the SVG to
// cfg.Output.
func renderFile(app *App, cfg *config.Config, path string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	result, err := app.Render(source, cfg.Output, os.Stdout)
	for _, w := range result.Warnings {
		slog.Warn(w.Message, "line", w.Line, "item", w.Item)
	}
	for _, e := range result.Errors {
		slog.Error(e.Message, "line", e.Line, "col", e.Col)
	}
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return errEvaluation
	}
	if cfg.Output == "-" {
		return nil
	}
	slog.Info("scene rendered",
		"source", path,
		"output", cfg.Output,
		"items", result.Items,
		"rays", result.Rays,
		"meshes", result.Meshes,
	)
	return nil
}

func readSource(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(b), nil
}
