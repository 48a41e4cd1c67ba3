// Command pbir normalizes a PBIR report definition directory and
// prints a summary of the canonical model.
//
// Usage:
//
//	pbir -dir Sales.Report [-format text|html] [-config pbir.yaml] [-v]
//
// Exit codes: 0 on success, 1 when the report root document is
// missing (the recovered parts are still printed), 2 on unusable
// input.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tsawler/pbir"
	"github.com/tsawler/pbir/render"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dir        = flag.String("dir", "", "report definition directory")
		format     = flag.String("format", "", "output format: text or html")
		configPath = flag.String("config", "", "optional YAML config file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pbir:", err)
			return 2
		}
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *verbose {
		cfg.Verbose = true
	}

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "pbir: -dir is required")
		flag.Usage()
		return 2
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !cfg.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	res, err := pbir.Open(*dir).WithLogger(logger).Result()
	if err != nil {
		logger.Error().Err(err).Msg("cannot read report")
		return 2
	}

	for _, e := range res.Errors {
		logger.Warn().Str("path", e.Path).Msg(e.Message)
	}
	for _, w := range res.Warnings {
		logger.Warn().Str("path", w.Path).Msg(w.Message)
	}

	switch cfg.Format {
	case "html":
		if err := render.HTML(os.Stdout, res.Report); err != nil {
			logger.Error().Err(err).Msg("rendering failed")
			return 2
		}
	case "text", "":
		opts := render.TextOptions{ShowBindings: cfg.ShowBindings, ShowFilters: cfg.ShowFilters}
		if err := render.Text(os.Stdout, res.Report, opts); err != nil {
			logger.Error().Err(err).Msg("rendering failed")
			return 2
		}
	default:
		fmt.Fprintf(os.Stderr, "pbir: unknown format %q\n", cfg.Format)
		return 2
	}

	if res.MissingRoot {
		logger.Error().Err(pbir.ErrMissingRoot).Msg("report root document missing")
		return 1
	}
	return 0
}
