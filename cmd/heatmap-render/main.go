// Command heatmap-render loads the global temperature dataset once and writes
// the heatmap as a standalone SVG image or HTML page.
//
// Usage:
//
//	go run ./cmd/heatmap-render -source global-temperature.json -format html -out heatmap.html
//	go run ./cmd/heatmap-render -format svg -out - > heatmap.svg
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/i474232898/temperature-heatmap/internal/chart"
	"github.com/i474232898/temperature-heatmap/internal/observability"
	"github.com/i474232898/temperature-heatmap/internal/temperature"
	"github.com/i474232898/temperature-heatmap/internal/temperature/sources"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("heatmap-render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	source := fs.String("source", sources.DefaultDatasetURL, "dataset URL or local file path")
	format := fs.String("format", "html", "output format: svg or html")
	out := fs.String("out", "-", "output file, - for stdout")
	timeout := fs.Duration("timeout", 15*time.Second, "dataset load timeout")
	level := fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	lvl, err := observability.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := observability.NewLogger(stderr, lvl, "text")

	write, err := writerFor(*format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	src := sourceFor(*source, *timeout)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ds, err := src.Load(ctx)
	if err != nil {
		logger.Error("dataset load failed", "source", src.Name(), "error", err)
		return 1
	}
	logger.Info("dataset loaded", "source", src.Name(), "points", len(ds.MonthlyVariance))

	w := stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("create output", "error", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	c := chart.Build(ds, chart.DefaultLayout)
	if err := write(w, c); err != nil {
		logger.Error("render failed", "format", *format, "error", err)
		return 1
	}
	logger.Debug("chart written", "cells", len(c.Cells), "out", *out)
	return 0
}

func writerFor(format string) (func(io.Writer, *chart.Chart) error, error) {
	switch strings.ToLower(format) {
	case "svg":
		return chart.WriteSVG, nil
	case "html":
		return chart.WritePage, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func sourceFor(location string, timeout time.Duration) temperature.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return sources.NewHTTPSource(&http.Client{Timeout: timeout}, location)
	}
	return sources.NewFileSource(strings.TrimPrefix(location, "file://"))
}
