// Command eqrender filters a WAV file through the equalizer.
//
// Settings come from an optional preset file (YAML, TOML or JSON), then
// ALGOEQ_* environment variables, then -set flags naming parameters the way
// a host does:
//
//	eqrender -in mix.wav -out mix-eq.wav -config vocal.yaml
//	eqrender -in a.wav -out b.wav -set "Peak Gain=6" -set "LoCut Slope=2"
//	ALGOEQ_LOG_LEVEL=debug eqrender -in a.wav -out b.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-eq/control"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/render"
)

type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ", ") }

func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("eqrender", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfgPath := fs.String("config", "", "preset/config file")
	inPath := fs.String("in", "", "input WAV file")
	outPath := fs.String("out", "", "output WAV file")
	savePreset := fs.String("save-preset", "", "write the final parameters to this preset file")

	var sets setFlags
	fs.Var(&sets, "set", `parameter override "Name=value" (repeatable)`)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(stderr, "error: -in and -out are required")
		fs.Usage()

		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	log, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		Out:        stderr,
		File:       cfg.Log.File,
		MaxSizeMB:  logging.DefaultConfig().MaxSizeMB,
		MaxBackups: logging.DefaultConfig().MaxBackups,
		MaxAgeDays: logging.DefaultConfig().MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer log.Close()

	if err := renderFile(ctx, cfg, sets, *inPath, *outPath, *savePreset, log); err != nil {
		log.Error().Err(err).Msg("render failed")
		return 1
	}

	return 0
}

func renderFile(ctx context.Context, cfg *config.Config, sets []string, inPath, outPath, presetPath string, log *logging.Logger) error {
	params, err := cfg.EQ.Params()
	if err != nil {
		return err
	}

	proc, err := eq.NewProcessor(params, core.WithBlockSize(cfg.Render.BlockSize))
	if err != nil {
		return err
	}

	reg := control.NewRegistry()
	if err := reg.Restore(params); err != nil {
		return err
	}

	for _, s := range sets {
		if err := applySet(reg, s); err != nil {
			return err
		}
	}

	ctl := control.NewController(reg, proc, control.WithLogger(log.Logger))
	if _, err := ctl.Poll(); err != nil {
		return err
	}

	for _, p := range reg.Parameters() {
		log.Debug().Str("param", p.ID).Str("value", p.DisplayLabel()).Msg("parameter")
	}

	if presetPath != "" {
		if err := config.SavePreset(presetPath, proc.Params()); err != nil {
			return err
		}

		log.Info().Str("path", presetPath).Msg("preset saved")
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	stats, err := render.File(ctx, in, out, proc, log.Logger)
	if cerr := out.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	log.Info().Str("out", outPath).Int("frames", stats.Frames).Msg("done")

	return nil
}

var errSetSyntax = errors.New(`expected "Name=value"`)

func applySet(reg *control.Registry, s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("-set %q: %w", s, errSetSyntax)
	}

	name = strings.TrimSpace(name)

	p, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)

	if p.IsChoice() {
		if slope, err := eq.ParseSlope(value); err == nil {
			return reg.Set(name, float64(slope))
		}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("-set %q: %w", s, err)
	}

	return reg.Set(name, v)
}
